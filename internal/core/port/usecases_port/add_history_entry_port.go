package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type AddHistoryEntryUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error)
}
