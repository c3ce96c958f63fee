package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LenientNumber - число из формы. В JSON принимает число, null, "" и числовую строку ("2", "250000.5").
type LenientNumber float64

func (n *LenientNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: number %s", ErrInvalidField, string(data))
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: number %q", ErrInvalidField, s)
		}
		*n = LenientNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: number %s", ErrInvalidField, string(data))
	}
	*n = LenientNumber(f)
	return nil
}

func (n LenientNumber) wholeNumber(field string) (int, error) {
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidField, field, f)
	}
	return int(f), nil
}

// UnmarshalJSON принимает бюджеты и минимумы комнат в виде строк: так их хранят старые копии.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	aux := struct {
		*plain
		MinBudget    LenientNumber `json:"minBudget"`
		MaxBudget    LenientNumber `json:"maxBudget"`
		MinRooms     LenientNumber `json:"minRooms"`
		MinBathrooms LenientNumber `json:"minBathrooms"`
	}{
		plain:        (*plain)(c),
		MinBudget:    LenientNumber(c.MinBudget),
		MaxBudget:    LenientNumber(c.MaxBudget),
		MinRooms:     LenientNumber(c.MinRooms),
		MinBathrooms: LenientNumber(c.MinBathrooms),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	rooms, err := aux.MinRooms.wholeNumber("minRooms")
	if err != nil {
		return err
	}
	bathrooms, err := aux.MinBathrooms.wholeNumber("minBathrooms")
	if err != nil {
		return err
	}
	c.MinBudget = float64(aux.MinBudget)
	c.MaxBudget = float64(aux.MaxBudget)
	c.MinRooms = rooms
	c.MinBathrooms = bathrooms
	return nil
}
