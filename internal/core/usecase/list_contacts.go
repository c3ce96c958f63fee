package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type ListContactsUseCase struct {
	store port.ContactStorePort
}

func NewListContactsUseCase(store port.ContactStorePort) *ListContactsUseCase {
	return &ListContactsUseCase{store: store}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context, owner uuid.UUID) ([]domain.Contact, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListContacts",
		"owner_id": owner.String(),
	})
	ucLogger.Info("Use case started", nil)

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(contacts)})
	return contacts, nil
}
