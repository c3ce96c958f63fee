package outreach_adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

const (
	whatsAppBaseURL = "https://api.whatsapp.com/send/"
	// Национальный номер без кода страны считается испанским.
	nationalNumberLength = 9
	defaultCountryCode   = "34"

	MailSubject = "Oportunidad Inmobiliaria"

	DefaultQRSize = 256
)

// LinkBuilder строит ссылки wa.me/mailto и QR-коды для ручной отправки.
type LinkBuilder struct {
	countryCode string
}

func NewLinkBuilder() *LinkBuilder {
	return &LinkBuilder{countryCode: defaultCountryCode}
}

var _ port.OutreachLinkPort = (*LinkBuilder)(nil)

// NormalizePhone оставляет только цифры и добавляет код страны к 9-значным номерам.
func (b *LinkBuilder) NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if len(digits) == nationalNumberLength {
		return b.countryCode + digits
	}
	return digits
}

func (b *LinkBuilder) WhatsAppURL(phone, message string) string {
	return whatsAppBaseURL + "?phone=" + b.NormalizePhone(phone) + "&text=" + encodeComponent(message)
}

func (b *LinkBuilder) MailtoURL(email, body string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.ErrMissingEmail
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", email, encodeComponent(MailSubject), encodeComponent(body)), nil
}

// QRCodePNG кодирует текст в PNG. size <= 0 означает размер по умолчанию.
func (b *LinkBuilder) QRCodePNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// encodeComponent кодирует пробел как %20, а не "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
