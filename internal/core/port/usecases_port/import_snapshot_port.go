package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type ImportSnapshotUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, data []byte, confirmed bool) (int, error)
}
