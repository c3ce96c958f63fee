package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type UpdateContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contact domain.Contact) error
}
