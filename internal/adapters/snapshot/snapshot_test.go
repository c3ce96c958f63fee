package snapshot_adapter

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func sampleContacts() []domain.Contact {
	last := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Contact{
		{
			ID: "a1", Name: "Ana", Phone: "600111222", Email: "ana@example.com",
			ManagementType: domain.ManagementBuyer, Type: domain.PropertyFlat,
			Zones: []string{"Eixample", "Gràcia"}, Zone: "Eixample, Gràcia",
			MaxBudget: 300000, MinRooms: 2,
			NeedParking: domain.PreferenceYes, NeedTerrace: domain.PreferenceNo,
			NeedGarden: domain.PreferenceIndifferent, NeedPool: domain.PreferenceNo,
			Urgency: domain.UrgencyHigh, Intent: domain.IntentLive, Usage: domain.UsageOwn, Language: "es",
			LastContact: &last, RegistrationDate: "2024-01-15",
			Contact2: domain.SecondaryContact{Name: "Jordi", Relation: "pareja"},
			ContactHistory: []domain.HistoryEntry{
				{ID: "h1", Date: last, Channel: domain.ChannelPhone, Note: "Llamada", Type: domain.HistoryManual},
				{ID: "h2", Date: last, Channel: domain.ChannelWhatsApp, Note: "Oferta", Type: domain.HistorySimulation},
			},
		},
		{ID: "b2", Name: "Luis", Zones: []string{}, ContactHistory: []domain.HistoryEntry{}},
	}
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	codec := NewJSONCodec()
	in := sampleContacts()

	data, err := codec.Encode(in)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("[\n  {")))

	out, err := codec.Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONCodec_EmptyCollection(t *testing.T) {
	data, err := NewJSONCodec().Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestJSONCodec_DecodeRejectsNonArray(t *testing.T) {
	codec := NewJSONCodec()
	for _, body := range []string{`{"contacts":[]}`, `"text"`, `[{"phone":"1"}]`, `not json`} {
		_, err := codec.Decode([]byte(body))
		assert.ErrorIs(t, err, domain.ErrInvalidSnapshot, body)
	}
}

func TestJSONCodec_DecodeErrorNamesTheProblem(t *testing.T) {
	codec := NewJSONCodec()

	_, err := codec.Decode([]byte(`{"contacts":[]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.ErrorContains(t, err, "top level must be a JSON array")

	_, err = codec.Decode([]byte(`[{"name":"Ana","needGarden":"maybe"}]`))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.ErrorContains(t, err, "needGarden")
	assert.NotContains(t, err.Error(), "top level")
}

func TestJSONCodec_DecodeAcceptsFormNumbers(t *testing.T) {
	data := []byte(`[
		{"id":"1717","name":"Ana","managementType":"comprador","type":"piso","zones":["Gràcia"],"zone":"Gràcia",
		 "minBudget":150000,"maxBudget":300000,"minRooms":2,"minBathrooms":"","needParking":"si",
		 "lastContact":null,"registrationDate":"2024-01-15","contactHistory":[]},
		{"id":"1718","name":"Luis","minBudget":"","maxBudget":"250000","minRooms":"3","minBathrooms":"2"}
	]`)

	contacts, err := NewJSONCodec().Decode(data)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, 0, contacts[0].MinBathrooms)
	assert.Equal(t, 2, contacts[0].MinRooms)
	assert.Equal(t, 300000.0, contacts[0].MaxBudget)

	assert.Zero(t, contacts[1].MinBudget)
	assert.Equal(t, 250000.0, contacts[1].MaxBudget)
	assert.Equal(t, 3, contacts[1].MinRooms)
	assert.Equal(t, 2, contacts[1].MinBathrooms)
}

func TestXLSXEncoder(t *testing.T) {
	enc := NewXLSXEncoder()
	assert.Equal(t, domain.SnapshotFormatXLSX, enc.Format())

	data, err := enc.Encode(sampleContacts())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ContactsSheet, HistorySheet}, f.GetSheetList())

	rows, err := f.GetRows(ContactsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "Eixample, Gràcia", rows[1][7])
	assert.Equal(t, "Luis", rows[2][1])

	history, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "a1", history[1][0])
	assert.Equal(t, "Oferta", history[2][6])
}
