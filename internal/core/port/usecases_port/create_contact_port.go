package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type CreateContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error)
}
