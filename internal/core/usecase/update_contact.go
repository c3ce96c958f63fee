package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type UpdateContactUseCase struct {
	store port.ContactStorePort
}

func NewUpdateContactUseCase(store port.ContactStorePort) *UpdateContactUseCase {
	return &UpdateContactUseCase{store: store}
}

func (uc *UpdateContactUseCase) Execute(ctx context.Context, owner uuid.UUID, contact domain.Contact) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UpdateContact",
		"contact_id": contact.ID,
	})
	ucLogger.Info("Use case started", nil)

	contact.ApplyEditDefaults()
	if err := contact.Validate(); err != nil {
		ucLogger.Warn("Contact validation failed", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.store.UpdateContact(ctx, owner, contact); err != nil {
		ucLogger.Error("Failed to update contact", err, nil)
		return fmt.Errorf("failed to update contact: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
