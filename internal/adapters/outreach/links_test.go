package outreach_adapter

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func TestNormalizePhone(t *testing.T) {
	b := NewLinkBuilder()
	cases := map[string]string{
		"600 111 222":      "34600111222",
		"+34 600-111-222":  "34600111222",
		"(0044) 7700 9001": "004477009001",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, b.NormalizePhone(in), in)
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := NewLinkBuilder().WhatsAppURL("600111222", "Hola Ana, piso por 280000€ & más")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", u.Host)
	assert.Equal(t, "/send/", u.Path)
	assert.Equal(t, "34600111222", u.Query().Get("phone"))
	assert.Equal(t, "Hola Ana, piso por 280000€ & más", u.Query().Get("text"))
	assert.NotContains(t, got, "+")
}

func TestMailtoURL(t *testing.T) {
	b := NewLinkBuilder()

	got, err := b.MailtoURL(" ana@example.com ", "Hola Ana")
	require.NoError(t, err)
	assert.Equal(t, "mailto:ana@example.com?subject=Oportunidad%20Inmobiliaria&body=Hola%20Ana", got)

	_, err = b.MailtoURL("  ", "x")
	assert.ErrorIs(t, err, domain.ErrMissingEmail)
}

func TestQRCodePNG(t *testing.T) {
	png, err := NewLinkBuilder().QRCodePNG("https://api.whatsapp.com/send/?phone=34600111222", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
