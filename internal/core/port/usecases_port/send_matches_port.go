package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type SendMatchesUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, req domain.MatchRequest) (*domain.BulkContactResult, error)
}
