package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Offered - наличие удобства у объекта. В JSON принимает true/false и "si"/"no"/"".
type Offered bool

func (o *Offered) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"si"`:
		*o = true
		return nil
	case "false", "null", `""`, `"no"`, `"indiferente"`:
		*o = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return fmt.Errorf("%w: extra %q", ErrInvalidField, s)
	}
	return fmt.Errorf("%w: extra %s", ErrInvalidField, string(data))
}

// PropertyDraft - описание гипотетического объекта для подбора покупателей.
// Нулевые поля не накладывают ограничений.
type PropertyDraft struct {
	Type      PropertyType `json:"type"`
	Zone      string       `json:"zone"`
	Price     float64      `json:"price"`
	Rooms     int          `json:"rooms"`
	Bathrooms int          `json:"bathrooms"`
	Parking   Offered      `json:"parking"`
	Terrace   Offered      `json:"terrace"`
	Garden    Offered      `json:"garden"`
	Pool      Offered      `json:"pool"`
}

func (p PropertyDraft) Validate() error {
	if p.Type != "" && !p.Type.IsValid() {
		return fmt.Errorf("%w: type %q", ErrInvalidField, p.Type)
	}
	if p.Price < 0 || p.Rooms < 0 || p.Bathrooms < 0 {
		return fmt.Errorf("%w: property numbers must be non-negative", ErrInvalidField)
	}
	return nil
}
