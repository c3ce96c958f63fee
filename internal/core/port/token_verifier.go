package port

import (
	"context"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type TokenVerifierPort interface {
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}
