package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type GetContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error)
}
