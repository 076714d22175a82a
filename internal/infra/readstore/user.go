package readstore

import (
	"context"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"
	"bookit-api/internal/pkg/pgconv"
	"bookit-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const findUserByIDSQL = `
SELECT id, name, email, role, created_at, updated_at
FROM users
WHERE id = $1
`

const findUserByEmailSQL = `
SELECT id, name, email, role, password_hash, created_at, updated_at
FROM users
WHERE email = $1
`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID,
		&view.Name,
		&view.Email,
		&view.Role,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return &view, nil
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var view queries.AuthorizedUserView
	var passwordHash string
	err := s.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&view.ID,
		&view.Name,
		&view.Email,
		&view.Role,
		&passwordHash,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, passwordHash, nil
}
