package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type GetContactUseCase struct {
	store port.ContactStorePort
}

func NewGetContactUseCase(store port.ContactStorePort) *GetContactUseCase {
	return &GetContactUseCase{store: store}
}

func (uc *GetContactUseCase) Execute(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetContact",
		"contact_id": id,
	})
	ucLogger.Debug("Use case started", nil)

	contact, err := uc.store.GetContact(ctx, owner, id)
	if err != nil {
		ucLogger.Warn("Contact lookup failed", port.Fields{"error": err.Error()})
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return contact, nil
}
