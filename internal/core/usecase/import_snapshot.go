package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// ImportSnapshotUseCase заменяет всю коллекцию содержимым файла.
// Частичного импорта нет: при любой ошибке коллекция остается прежней.
type ImportSnapshotUseCase struct {
	store   port.ContactStorePort
	decoder port.SnapshotDecoderPort
}

func NewImportSnapshotUseCase(store port.ContactStorePort, decoder port.SnapshotDecoderPort) *ImportSnapshotUseCase {
	return &ImportSnapshotUseCase{store: store, decoder: decoder}
}

func (uc *ImportSnapshotUseCase) Execute(ctx context.Context, owner uuid.UUID, data []byte, confirmed bool) (int, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "ImportSnapshot",
		"bytes":     len(data),
		"confirmed": confirmed,
	})
	ucLogger.Info("Use case started", nil)

	contacts, err := uc.decoder.Decode(data)
	if err != nil {
		ucLogger.Warn("Snapshot rejected", port.Fields{"error": err.Error()})
		return 0, err
	}

	if !confirmed {
		ucLogger.Info("Import not confirmed", port.Fields{"contacts": len(contacts)})
		return 0, domain.ErrImportNotConfirmed
	}

	for i := range contacts {
		c := &contacts[i]
		if c.Zones == nil {
			c.Zones = []string{}
		}
		if c.ContactHistory == nil {
			c.ContactHistory = []domain.HistoryEntry{}
		}
		c.SyncLegacyZone()
		if err := c.Validate(); err != nil {
			ucLogger.Warn("Snapshot contact is invalid", port.Fields{"index": i, "error": err.Error()})
			return 0, fmt.Errorf("%w: contact %d: %v", domain.ErrInvalidSnapshot, i, err)
		}
	}

	if err := uc.store.ReplaceAll(ctx, owner, contacts); err != nil {
		ucLogger.Error("Failed to replace contacts", err, nil)
		return 0, fmt.Errorf("failed to replace contacts: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"imported": len(contacts)})
	return len(contacts), nil
}
