// Package engine содержит чистые функции над коллекцией контактов:
// статистику, фильтрацию, подбор покупателей и шаблоны сообщений.
// Текущее время всегда передается снаружи.
package engine

import (
	"time"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

const day = 24 * time.Hour

// Stats считает счетчики дашборда. Возраст контакта сравнивается точно, без округления.
// Контакт без lastContact всегда требует внимания.
func Stats(contacts []domain.Contact, windows domain.StatsWindows, now time.Time) domain.ContactStats {
	windows = windows.OrDefault()

	stats := domain.ContactStats{
		Total:            len(contacts),
		ByManagementType: make(map[domain.ManagementType]int, len(domain.ManagementTypes)),
		Windows:          windows,
	}
	for _, mt := range domain.ManagementTypes {
		stats.ByManagementType[mt] = 0
	}

	recent := time.Duration(windows.RecentDays) * day
	attention := time.Duration(windows.AttentionDays) * day

	for i := range contacts {
		c := &contacts[i]
		if _, ok := stats.ByManagementType[c.ManagementType]; ok {
			stats.ByManagementType[c.ManagementType]++
		}

		if c.LastContact == nil {
			stats.NeedsAttention++
			continue
		}
		age := now.Sub(*c.LastContact)
		if age <= recent {
			stats.RecentContacts++
		}
		if age > attention {
			stats.NeedsAttention++
		}
	}
	return stats
}
