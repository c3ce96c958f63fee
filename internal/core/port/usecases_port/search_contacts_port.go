package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type SearchContactsUseCase interface {
	Execute(ctx context.Context, owner uuid.UUID, criteria domain.FilterCriteria) ([]domain.Contact, error)
}
