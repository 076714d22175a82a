package repository

import (
	"context"

	"bookit-api/internal/domain/user"
	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

const createUserSQL = `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

const updateUserProfileSQL = `
UPDATE users
SET name = $2, email = $3, updated_at = now()
WHERE id = $1
`

const updateUserLastLoginSQL = `
UPDATE users
SET last_login_at = now()
WHERE id = $1
`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Name().Value(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, tx db.DBTX, id uuid.UUID, name, email string) error {
	tag, err := tx.Exec(ctx, updateUserProfileSQL, id, name, email)
	if err != nil {
		return infra.WrapRepoErr("failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateUserLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
