package engine

import (
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

// ceilDays - возраст контакта в днях для фильтра: модуль разницы, округленный вверх.
func ceilDays(now, t time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// FilterContacts применяет поиск и фильтры (все через И) и сортирует по lastContact.
// Входная коллекция не изменяется.
func FilterContacts(contacts []domain.Contact, criteria domain.FilterCriteria, now time.Time) []domain.Contact {
	windows := criteria.Windows.OrDefault()
	fold := cases.Fold()
	term := fold.String(criteria.Search)

	result := make([]domain.Contact, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		if !matchesSearch(fold, c, criteria.Search, term) {
			continue
		}
		if !matchesManagementType(c, criteria.ManagementType) {
			continue
		}
		if !matchesLastContact(c, criteria.LastContact, windows, now) {
			continue
		}
		if !matchesUrgency(c, criteria.Urgency) {
			continue
		}
		result = append(result, *c)
	}

	SortByLastContact(result, criteria.Sort)
	return result
}

func matchesSearch(fold cases.Caser, c *domain.Contact, raw, folded string) bool {
	if raw == "" {
		return true
	}
	if strings.Contains(fold.String(c.Name), folded) {
		return true
	}
	// телефон сравнивается как есть, без нормализации
	if strings.Contains(c.Phone, raw) {
		return true
	}
	return c.Email != "" && strings.Contains(fold.String(c.Email), folded)
}

func matchesManagementType(c *domain.Contact, mt domain.ManagementType) bool {
	return mt == "" || mt == domain.FilterAll || c.ManagementType == mt
}

func matchesUrgency(c *domain.Contact, u domain.Urgency) bool {
	return u == "" || u == domain.FilterAll || c.Urgency == u
}

func matchesLastContact(c *domain.Contact, mode domain.LastContactFilter, windows domain.StatsWindows, now time.Time) bool {
	switch mode {
	case "", domain.LastContactAll:
		return true
	case domain.LastContactNever:
		return c.LastContact == nil
	case domain.LastContactRecent:
		return c.LastContact != nil && ceilDays(now, *c.LastContact) <= windows.RecentDays
	case domain.LastContactNeedsAttention:
		return c.LastContact == nil || ceilDays(now, *c.LastContact) > windows.AttentionDays
	}
	if bound, ok := mode.FixedWindowDays(); ok {
		return c.LastContact != nil && ceilDays(now, *c.LastContact) <= bound
	}
	return true
}

// SortByLastContact сортирует на месте. Контакты без lastContact всегда в конце,
// при равенстве сохраняется исходный порядок.
func SortByLastContact(contacts []domain.Contact, order domain.SortOrder) {
	slices.SortStableFunc(contacts, func(a, b domain.Contact) int {
		switch {
		case a.LastContact == nil && b.LastContact == nil:
			return 0
		case a.LastContact == nil:
			return 1
		case b.LastContact == nil:
			return -1
		}
		cmp := a.LastContact.Compare(*b.LastContact)
		if order == domain.SortAsc {
			return cmp
		}
		return -cmp
	})
}
