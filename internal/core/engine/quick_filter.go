package engine

import (
	"fmt"
	"strings"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type QuickFilterKind string

const (
	QuickFilterType        QuickFilterKind = "type"
	QuickFilterLastContact QuickFilterKind = "lastContact"
	QuickFilterReset       QuickFilterKind = "reset"
)

// FilterState - состояние ручных фильтров списка.
// Быстрые фильтры не комбинируются: каждый сбрасывает остальные измерения и строку поиска.
type FilterState struct {
	domain.FilterCriteria
}

// NewFilterState возвращает состояние "без фильтров" с сортировкой по убыванию.
func NewFilterState(windows domain.StatsWindows) FilterState {
	return FilterState{FilterCriteria: domain.FilterCriteria{
		ManagementType: domain.FilterAll,
		LastContact:    domain.LastContactAll,
		Urgency:        domain.FilterAll,
		Sort:           domain.SortDesc,
		Windows:        windows.OrDefault(),
	}}
}

// ApplyQuickFilter возвращает новое состояние. Сортировка и окна сохраняются.
func (s FilterState) ApplyQuickFilter(kind QuickFilterKind, value string) (FilterState, error) {
	next := s
	next.Search = ""
	next.ManagementType = domain.FilterAll
	next.LastContact = domain.LastContactAll
	next.Urgency = domain.FilterAll

	switch kind {
	case QuickFilterReset:
	case QuickFilterType:
		mt := domain.ManagementType(value)
		if mt != domain.FilterAll && !mt.IsValid() {
			return s, fmt.Errorf("%w: quick filter managementType %q", domain.ErrInvalidField, value)
		}
		next.ManagementType = mt
	case QuickFilterLastContact:
		lc := domain.LastContactFilter(value)
		if lc == "" || !lc.IsValid() {
			return s, fmt.Errorf("%w: quick filter lastContact %q", domain.ErrInvalidField, value)
		}
		next.LastContact = lc
	default:
		return s, fmt.Errorf("%w: quick filter kind %q", domain.ErrInvalidField, kind)
	}
	return next, nil
}

// ParseQuickFilter разбирает строку вида "type:comprador", "lastContact:never" или "reset".
func ParseQuickFilter(raw string) (QuickFilterKind, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == string(QuickFilterReset) {
		return QuickFilterReset, "", nil
	}
	kind, value, ok := strings.Cut(raw, ":")
	if !ok || value == "" {
		return "", "", fmt.Errorf("%w: quick filter %q", domain.ErrInvalidField, raw)
	}
	switch QuickFilterKind(kind) {
	case QuickFilterType, QuickFilterLastContact:
		return QuickFilterKind(kind), value, nil
	}
	return "", "", fmt.Errorf("%w: quick filter %q", domain.ErrInvalidField, raw)
}
