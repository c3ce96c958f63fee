package domain

import "time"

const (
	SnapshotFormatJSON = "json"
	SnapshotFormatXLSX = "xlsx"
)

// Snapshot - файл резервной копии всей коллекции контактов.
type Snapshot struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SnapshotFilename возвращает имя вида crm-backup-2024-05-17.json.
func SnapshotFilename(date time.Time, format string) string {
	return "crm-backup-" + date.Format(DateLayout) + "." + format
}
