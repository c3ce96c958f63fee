package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// BulkContactUseCase записывает одно действие сразу для группы контактов.
// Все записи сохраняются одним вызовом хранилища с общей датой.
type BulkContactUseCase struct {
	store     port.ContactStorePort
	publisher port.OutreachEventPublisherPort
	clock     port.Clock
	delay     time.Duration
}

func NewBulkContactUseCase(store port.ContactStorePort, publisher port.OutreachEventPublisherPort, clock port.Clock, delay time.Duration) *BulkContactUseCase {
	return &BulkContactUseCase{
		store:     store,
		publisher: publisher,
		clock:     clock,
		delay:     delay,
	}
}

func (uc *BulkContactUseCase) Execute(ctx context.Context, owner uuid.UUID, input domain.BulkContactInput) (*domain.BulkContactResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "BulkContact",
		"channel":  input.Channel,
	})
	ucLogger.Info("Use case started", port.Fields{"requested": len(input.ContactIDs)})

	ids := dedupeIDs(input.ContactIDs)
	if len(ids) == 0 {
		return nil, domain.ErrNoRecipients
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrInvalidField)
	}
	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelWhatsApp
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: channel %q", domain.ErrInvalidField, channel)
	}

	if input.SimulateLatency && uc.delay > 0 {
		ucLogger.Debug("Simulating send latency", port.Fields{"delay_ms": uc.delay.Milliseconds()})
		timer := time.NewTimer(uc.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			ucLogger.Warn("Bulk contact cancelled before recording", nil)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	now := uc.clock()
	entry := domain.HistoryEntry{
		Date:    now,
		Channel: channel,
		Note:    input.Message,
		Type:    domain.HistorySimulation,
	}

	recorded, err := uc.store.RecordHistory(ctx, owner, ids, entry)
	if err != nil {
		ucLogger.Error("Failed to record history", err, nil)
		return nil, fmt.Errorf("failed to record history: %w", err)
	}

	if uc.publisher != nil {
		event := domain.OutreachRecordedEvent{
			OwnerID:    owner,
			ContactIDs: ids,
			Channel:    channel,
			Message:    input.Message,
			Type:       domain.HistorySimulation,
			RecordedAt: now,
		}
		if err := uc.publisher.PublishOutreachRecorded(ctx, event); err != nil {
			ucLogger.Warn("Failed to publish outreach event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"contacted": recorded})
	return &domain.BulkContactResult{Success: true, Contacted: recorded, Date: now}, nil
}

// dedupeIDs убирает пустые и повторные id, сохраняя порядок.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
