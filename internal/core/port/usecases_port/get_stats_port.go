package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type GetStatsUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, windows domain.StatsWindows) (*domain.ContactStats, error)
}
