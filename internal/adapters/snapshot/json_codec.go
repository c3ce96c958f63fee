package snapshot_adapter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/albertoDabu/crm-immobiliaria/internal/contracts"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// JSONCodec пишет и читает резервную копию в виде JSON-массива контактов.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

var (
	_ port.SnapshotEncoderPort = (*JSONCodec)(nil)
	_ port.SnapshotDecoderPort = (*JSONCodec)(nil)
)

func (c *JSONCodec) Format() string      { return domain.SnapshotFormatJSON }
func (c *JSONCodec) ContentType() string { return "application/json" }

func (c *JSONCodec) Encode(contacts []domain.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode сначала проверяет документ по схеме Snapshot, затем разбирает его.
func (c *JSONCodec) Decode(data []byte) ([]domain.Contact, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top level must be a JSON array of contacts", domain.ErrInvalidSnapshot)
	}
	if err := contracts.Validate(contracts.SnapshotV1, data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}

	var contacts []domain.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	return contacts, nil
}
