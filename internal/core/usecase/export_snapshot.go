package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type ExportSnapshotUseCase struct {
	store    port.ContactStorePort
	encoders map[string]port.SnapshotEncoderPort
	clock    port.Clock
}

func NewExportSnapshotUseCase(store port.ContactStorePort, clock port.Clock, encoders ...port.SnapshotEncoderPort) *ExportSnapshotUseCase {
	byFormat := make(map[string]port.SnapshotEncoderPort, len(encoders))
	for _, e := range encoders {
		byFormat[e.Format()] = e
	}
	return &ExportSnapshotUseCase{store: store, encoders: byFormat, clock: clock}
}

func (uc *ExportSnapshotUseCase) Execute(ctx context.Context, owner uuid.UUID, format string) (*domain.Snapshot, error) {
	if format == "" {
		format = domain.SnapshotFormatJSON
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ExportSnapshot",
		"format":   format,
	})
	ucLogger.Info("Use case started", nil)

	encoder, ok := uc.encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: export format %q", domain.ErrInvalidField, format)
	}

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	data, err := encoder.Encode(contacts)
	if err != nil {
		ucLogger.Error("Failed to encode snapshot", err, nil)
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	snapshot := &domain.Snapshot{
		Filename:    domain.SnapshotFilename(uc.clock(), format),
		ContentType: encoder.ContentType(),
		Data:        data,
	}
	ucLogger.Info("Use case finished successfully", port.Fields{
		"contacts": len(contacts),
		"bytes":    len(data),
	})
	return snapshot, nil
}
