package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type UpdateHistoryEntryUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error)
}
