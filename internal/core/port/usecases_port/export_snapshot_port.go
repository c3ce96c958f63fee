package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type ExportSnapshotUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, format string) (*domain.Snapshot, error)
}
