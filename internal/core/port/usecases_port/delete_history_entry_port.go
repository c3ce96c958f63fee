package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type DeleteHistoryEntryUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contactID, historyID string) error
}
