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

type GetStatsUseCase struct {
	store port.ContactStorePort
	clock port.Clock
}

func NewGetStatsUseCase(store port.ContactStorePort, clock port.Clock) *GetStatsUseCase {
	return &GetStatsUseCase{store: store, clock: clock}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, owner uuid.UUID, windows domain.StatsWindows) (*domain.ContactStats, error) {
	windows = windows.OrDefault()
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":       "GetStats",
		"recent_days":    windows.RecentDays,
		"attention_days": windows.AttentionDays,
	})
	ucLogger.Info("Use case started", nil)

	if err := windows.Validate(); err != nil {
		ucLogger.Warn("Invalid statistics window", port.Fields{"error": err.Error()})
		return nil, err
	}

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	stats := engine.Stats(contacts, windows, uc.clock())

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":           stats.Total,
		"recent":          stats.RecentContacts,
		"needs_attention": stats.NeedsAttention,
	})
	return &stats, nil
}
