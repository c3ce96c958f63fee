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

// MatchBuyersUseCase подбирает покупателей и готовит персональные сообщения.
type MatchBuyersUseCase struct {
	store port.ContactStorePort
	links port.OutreachLinkPort
}

func NewMatchBuyersUseCase(store port.ContactStorePort, links port.OutreachLinkPort) *MatchBuyersUseCase {
	return &MatchBuyersUseCase{store: store, links: links}
}

func (uc *MatchBuyersUseCase) Execute(ctx context.Context, owner uuid.UUID, req domain.MatchRequest) ([]domain.MatchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "MatchBuyers",
		"property_type": req.Property.Type,
		"zone":          req.Property.Zone,
	})
	ucLogger.Info("Use case started", nil)

	if err := req.Property.Validate(); err != nil {
		return nil, err
	}

	contacts, err := uc.store.ListContacts(ctx, owner)
	if err != nil {
		ucLogger.Error("Failed to list contacts", err, nil)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	matched := engine.MatchBuyers(contacts, req.Property)
	results := make([]domain.MatchResult, 0, len(matched))
	for _, c := range matched {
		message := engine.RenderMessage(req.Template, c.Name, req.Property)
		res := domain.MatchResult{Contact: c, Message: message}
		if c.Phone != "" {
			res.WhatsAppURL = uc.links.WhatsAppURL(c.Phone, message)
		}
		if mailto, err := uc.links.MailtoURL(c.Email, message); err == nil {
			res.MailtoURL = mailto
		}
		results = append(results, res)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"candidates": len(contacts),
		"matched":    len(results),
	})
	return results, nil
}
