package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type DeleteContactUseCase struct {
	store port.ContactStorePort
}

func NewDeleteContactUseCase(store port.ContactStorePort) *DeleteContactUseCase {
	return &DeleteContactUseCase{store: store}
}

func (uc *DeleteContactUseCase) Execute(ctx context.Context, owner uuid.UUID, id string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "DeleteContact",
		"contact_id": id,
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.store.DeleteContact(ctx, owner, id); err != nil {
		ucLogger.Error("Failed to delete contact", err, nil)
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
