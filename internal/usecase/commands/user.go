package commands

import (
	"context"

	"github.com/google/uuid"

	"bookit-api/internal/domain/user"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/patch"
	"bookit-api/internal/usecase/shared"
)

type UserCommands interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) error
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (u *userCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().UserByID(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		name, err := user.NewName(patch.Coalesce(req.Name, snap.Name))
		if err != nil {
			return err
		}
		email, err := user.NewEmail(patch.Coalesce(req.Email, snap.Email))
		if err != nil {
			return err
		}

		if err := tx.Users().UpdateProfile(ctx, tx.DB(), userID, name.Value(), email.Value()); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyUsed
			}
			return err
		}
		return nil
	})
}
