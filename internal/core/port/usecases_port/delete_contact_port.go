package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type DeleteContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, id string) error
}
