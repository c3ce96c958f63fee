package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/engine"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// SearchContactsUseCase - список контактов с поиском, фильтрами и сортировкой.
type SearchContactsUseCase struct {
	store port.ContactStorePort
	clock port.Clock
}

func NewSearchContactsUseCase(store port.ContactStorePort, clock port.Clock) *SearchContactsUseCase {
	return &SearchContactsUseCase{store: store, clock: clock}
}

func (uc *SearchContactsUseCase) Execute(ctx context.Context, owner uuid.UUID, criteria domain.FilterCriteria) ([]domain.Contact, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":        "SearchContacts",
		"management_type": criteria.ManagementType,
		"last_contact":    criteria.LastContact,
		"urgency":         criteria.Urgency,
		"sort":            criteria.Sort,
	})
	ucLogger.Info("Use case started", nil)

	criteria.Windows = criteria.Windows.OrDefault()
	if err := criteria.Validate(); err != nil {
		ucLogger.Warn("Invalid filter criteria", port.Fields{"error": err.Error()})
		return nil, err
	}

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	result := engine.FilterContacts(contacts, criteria, uc.clock())

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":    len(contacts),
		"filtered": len(result),
	})
	return result, nil
}
