package commands

import (
	"context"

	"github.com/google/uuid"

	domservice "bookit-api/internal/domain/service"
	"bookit-api/internal/domain/user"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/errs"
	"bookit-api/internal/pkg/patch"
	"bookit-api/internal/usecase/shared"
)

var (
	ErrServiceNotFoundWrite = errs.New("service not found")
	ErrAdminOnly            = errs.New("admin role required")
)

type CreateServiceResult struct {
	ServiceID uuid.UUID
}

type ServiceCommands interface {
	CreateService(ctx context.Context, actor user.Actor, req reqdto.CreateServiceRequest) (*CreateServiceResult, error)
	UpdateService(ctx context.Context, actor user.Actor, serviceID uuid.UUID, req reqdto.UpdateServiceRequest) error
	DeleteService(ctx context.Context, actor user.Actor, serviceID uuid.UUID) error
}

type serviceCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewServiceCommands(uow shared.UnitOfWork) ServiceCommands {
	return &serviceCommandsImpl{uow: uow}
}

func (s *serviceCommandsImpl) CreateService(ctx context.Context, actor user.Actor, req reqdto.CreateServiceRequest) (*CreateServiceResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	entity, err := buildService(req.Title, req.Description, req.PriceCents, req.DurationMinutes, req.Active())
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, txErr := tx.Services().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateServiceResult{ServiceID: createdID}, nil
}

func (s *serviceCommandsImpl) UpdateService(ctx context.Context, actor user.Actor, serviceID uuid.UUID, req reqdto.UpdateServiceRequest) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ServiceByID(ctx, serviceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrServiceNotFoundWrite
			}
			return err
		}

		entity, err := buildService(
			patch.Coalesce(req.Title, snap.Title),
			patch.Coalesce(req.Description, snap.Description),
			patch.Coalesce(req.PriceCents, snap.PriceCents),
			patch.Coalesce(req.DurationMinutes, snap.DurationMinutes),
			patch.Coalesce(req.IsActive, snap.IsActive),
		)
		if err != nil {
			return err
		}

		updated := domservice.ReconstructService(
			serviceID,
			entity.Title(),
			entity.Description(),
			entity.Price(),
			entity.DurationMinutes(),
			entity.IsActive(),
			entity.CreatedAt(),
			entity.UpdatedAt(),
		)
		return tx.Services().Update(ctx, tx.DB(), updated)
	})
}

// DeleteService removes a service together with its bookings and reviews.
// Deactivation is the soft path.
func (s *serviceCommandsImpl) DeleteService(ctx context.Context, actor user.Actor, serviceID uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Services().Delete(ctx, tx.DB(), serviceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrServiceNotFoundWrite
			}
			return err
		}
		return nil
	})
}

func buildService(title, description string, priceCents int64, durationMinutes int, isActive bool) (*domservice.Service, error) {
	titleVO, err := domservice.NewTitle(title)
	if err != nil {
		return nil, err
	}
	descVO, err := domservice.NewDescription(description)
	if err != nil {
		return nil, err
	}
	priceVO, err := domservice.NewMoney(priceCents)
	if err != nil {
		return nil, err
	}
	return domservice.NewService(titleVO, descVO, priceVO, durationMinutes, isActive)
}
