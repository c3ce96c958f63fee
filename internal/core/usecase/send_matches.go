package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/engine"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

// SendMatchesUseCase - массовая рассылка всем подобранным покупателям.
// Сообщение одно на всю подборку, поэтому вместо имени подставляется обращение "cliente".
type SendMatchesUseCase struct {
	store port.ContactStorePort
	bulk  usecases_port.BulkContactUseCase
}

func NewSendMatchesUseCase(store port.ContactStorePort, bulk usecases_port.BulkContactUseCase) *SendMatchesUseCase {
	return &SendMatchesUseCase{store: store, bulk: bulk}
}

func (uc *SendMatchesUseCase) Execute(ctx context.Context, owner uuid.UUID, req domain.MatchRequest) (*domain.BulkContactResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "SendMatches",
		"property_type": req.Property.Type,
		"channel":       req.Channel,
	})
	ucLogger.Info("Use case started", nil)

	if err := req.Property.Validate(); err != nil {
		return nil, err
	}

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	matched := engine.MatchBuyers(contacts, req.Property)
	if len(matched) == 0 {
		ucLogger.Info("No buyers matched", nil)
		return nil, domain.ErrNoRecipients
	}

	ids := make([]string, 0, len(matched))
	for _, c := range matched {
		ids = append(ids, c.ID)
	}

	result, err := uc.bulk.Execute(ctx, owner, domain.BulkContactInput{
		ContactIDs:      ids,
		Message:         engine.RenderGenericMessage(req.Template, req.Property),
		Channel:         req.Channel,
		SimulateLatency: true,
	})
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"contacted": result.Contacted})
	return result, nil
}
