package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/engine"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

// SendToContactUseCase - персональная отправка одному покупателю из подборки.
// Записывает действие в историю и возвращает ссылку WhatsApp или mailto.
type SendToContactUseCase struct {
	store port.ContactStorePort
	links port.OutreachLinkPort
	bulk  usecases_port.BulkContactUseCase
}

func NewSendToContactUseCase(store port.ContactStorePort, links port.OutreachLinkPort, bulk usecases_port.BulkContactUseCase) *SendToContactUseCase {
	return &SendToContactUseCase{store: store, links: links, bulk: bulk}
}

func (uc *SendToContactUseCase) Execute(ctx context.Context, owner uuid.UUID, contactID string, req domain.MatchRequest) (*domain.OutreachLink, error) {
	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelWhatsApp
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SendToContact",
		"contact_id": contactID,
		"channel":    channel,
	})
	ucLogger.Info("Use case started", nil)

	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: channel %q", domain.ErrInvalidField, channel)
	}

	contact, err := uc.store.GetContact(ctx, owner, contactID)
	if err != nil {
		ucLogger.Warn("Contact lookup failed", port.Fields{"error": err.Error()})
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	message := engine.RenderMessage(req.Template, contact.Name, req.Property)
	link := &domain.OutreachLink{ContactID: contact.ID, Channel: channel, Message: message}

	switch channel {
	case domain.ChannelWhatsApp:
		link.URL = uc.links.WhatsAppURL(contact.Phone, message)
	case domain.ChannelEmail:
		mailto, err := uc.links.MailtoURL(contact.Email, message)
		if err != nil {
			ucLogger.Warn("Contact has no email", nil)
			return nil, err
		}
		link.URL = mailto
	}

	if _, err := uc.bulk.Execute(ctx, owner, domain.BulkContactInput{
		ContactIDs: []string{contact.ID},
		Message:    message,
		Channel:    channel,
	}); err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return link, nil
}
