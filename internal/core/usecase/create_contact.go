package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type CreateContactUseCase struct {
	store port.ContactStorePort
	clock port.Clock
}

func NewCreateContactUseCase(store port.ContactStorePort, clock port.Clock) *CreateContactUseCase {
	return &CreateContactUseCase{store: store, clock: clock}
}

// Execute заполняет значения по умолчанию и проверяет контакт до обращения к хранилищу.
// Временный id клиента отбрасывается, id назначает хранилище.
func (uc *CreateContactUseCase) Execute(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":       "CreateContact",
		"provisional_id": contact.ID,
	})
	ucLogger.Info("Use case started", nil)

	contact.ID = ""
	contact.ApplyCreateDefaults(uc.clock())
	if err := contact.Validate(); err != nil {
		ucLogger.Warn("Contact validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	created, err := uc.store.CreateContact(ctx, owner, contact)
	if err != nil {
		ucLogger.Error("Failed to create contact", err, nil)
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"contact_id": created.ID})
	return created, nil
}
