package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type SendToContactUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, contactID string, req domain.MatchRequest) (*domain.OutreachLink, error)
}
