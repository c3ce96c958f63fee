package engine

import (
	"strconv"
	"strings"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

const (
	TokenName  = "{nombre}"
	TokenType  = "{tipo}"
	TokenZone  = "{zona}"
	TokenPrice = "{precio}"

	DefaultTemplate = "Hola {nombre}, he visto un {tipo} en {zona} por {precio}€ que podría encajarte. ¿Te interesa verlo?"

	ZoneFallback     = "tu zona de interés"
	PriceFallback    = "consultar"
	GenericRecipient = "cliente"
)

// RenderMessage подставляет значения во все вхождения токенов.
// Неизвестные токены остаются как есть.
func RenderMessage(template, recipientName string, draft domain.PropertyDraft) string {
	if template == "" {
		template = DefaultTemplate
	}

	zone := draft.Zone
	if zone == "" {
		zone = ZoneFallback
	}
	price := PriceFallback
	if draft.Price > 0 {
		price = FormatPrice(draft.Price)
	}

	r := strings.NewReplacer(
		TokenName, recipientName,
		TokenType, string(draft.Type),
		TokenZone, zone,
		TokenPrice, price,
	)
	return r.Replace(template)
}

// RenderGenericMessage - одно сообщение на всю подборку, без имени получателя.
func RenderGenericMessage(template string, draft domain.PropertyDraft) string {
	return RenderMessage(template, GenericRecipient, draft)
}

// FormatPrice печатает цену без лишних нулей: 280000, 1250.5.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
