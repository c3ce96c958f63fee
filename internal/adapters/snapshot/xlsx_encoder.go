package snapshot_adapter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

const (
	ContactsSheet = "Contacts"
	HistorySheet  = "History"
)

var contactsHeader = []string{
	"ID", "Name", "Phone", "Phone 2", "Email", "Management Type", "Property Type",
	"Zones", "Min Budget", "Max Budget", "Min Rooms", "Min Bathrooms",
	"Parking", "Terrace", "Garden", "Pool",
	"Urgency", "Intent", "Usage", "Language", "Notes",
	"Last Contact", "Registration Date",
	"Contact 2 Name", "Contact 2 Phone", "Contact 2 Email", "Contact 2 Relation",
}

var historyHeader = []string{"Contact ID", "Contact Name", "Entry ID", "Date", "Channel", "Type", "Note", "Feedback"}

// XLSXEncoder выгружает контакты в книгу Excel: лист контактов и лист истории.
// Импорт из XLSX не поддерживается.
type XLSXEncoder struct{}

func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

var _ port.SnapshotEncoderPort = (*XLSXEncoder)(nil)

func (e *XLSXEncoder) Format() string { return domain.SnapshotFormatXLSX }

func (e *XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXEncoder) Encode(contacts []domain.Contact) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ContactsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, ContactsSheet, 1, toCells(contactsHeader)); err != nil {
		return nil, err
	}
	if err := writeRow(f, HistorySheet, 1, toCells(historyHeader)); err != nil {
		return nil, err
	}
	for sheet, header := range map[string][]string{ContactsSheet: contactsHeader, HistorySheet: historyHeader} {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	historyRow := 2
	for i, c := range contacts {
		if err := writeRow(f, ContactsSheet, i+2, contactRow(c)); err != nil {
			return nil, err
		}
		for _, h := range c.ContactHistory {
			row := []interface{}{c.ID, c.Name, h.ID, formatTime(&h.Date), string(h.Channel), string(h.Type), h.Note, h.Feedback}
			if err := writeRow(f, HistorySheet, historyRow, row); err != nil {
				return nil, err
			}
			historyRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func contactRow(c domain.Contact) []interface{} {
	return []interface{}{
		c.ID, c.Name, c.Phone, c.Phone2, c.Email, string(c.ManagementType), string(c.Type),
		strings.Join(c.Zones, domain.ZoneSeparator), c.MinBudget, c.MaxBudget, c.MinRooms, c.MinBathrooms,
		string(c.NeedParking), string(c.NeedTerrace), string(c.NeedGarden), string(c.NeedPool),
		string(c.Urgency), string(c.Intent), string(c.Usage), c.Language, c.Notes,
		formatTime(c.LastContact), c.RegistrationDate,
		c.Contact2.Name, c.Contact2.Phone, c.Contact2.Email, c.Contact2.Relation,
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

func toCells(header []string) []interface{} {
	out := make([]interface{}, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
