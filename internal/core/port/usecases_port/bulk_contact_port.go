package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type BulkContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, input domain.BulkContactInput) (*domain.BulkContactResult, error)
}
