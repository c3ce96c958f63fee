package domain

import "fmt"

// FilterAll отключает категориальный фильтр.
const FilterAll = "all"

// LastContactFilter - режим фильтра по давности последнего контакта.
type LastContactFilter string

const (
	LastContactAll            LastContactFilter = "all"
	LastContactNever          LastContactFilter = "never"
	LastContactRecent         LastContactFilter = "recent"
	LastContactNeedsAttention LastContactFilter = "needsAttention"
	LastContact7Days          LastContactFilter = "7days"
	LastContact15Days         LastContactFilter = "15days"
	LastContact30Days         LastContactFilter = "30days"
)

// FixedWindowDays возвращает границу для режимов 7days/15days/30days.
func (f LastContactFilter) FixedWindowDays() (int, bool) {
	switch f {
	case LastContact7Days:
		return 7, true
	case LastContact15Days:
		return 15, true
	case LastContact30Days:
		return 30, true
	}
	return 0, false
}

func (f LastContactFilter) IsValid() bool {
	switch f {
	case "", LastContactAll, LastContactNever, LastContactRecent, LastContactNeedsAttention,
		LastContact7Days, LastContact15Days, LastContact30Days:
		return true
	}
	return false
}

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// FilterCriteria - параметры поиска и сортировки списка контактов.
// Пустые значения и "all" означают отсутствие фильтра.
type FilterCriteria struct {
	Search         string            `json:"search"`
	ManagementType ManagementType    `json:"managementType"`
	LastContact    LastContactFilter `json:"lastContact"`
	Urgency        Urgency           `json:"urgency"`
	Sort           SortOrder         `json:"sort"`
	Windows        StatsWindows      `json:"windows"`
}

func (c FilterCriteria) Validate() error {
	if mt := c.ManagementType; mt != "" && mt != FilterAll && !mt.IsValid() {
		return fmt.Errorf("%w: managementType %q", ErrInvalidField, mt)
	}
	if u := c.Urgency; u != "" && u != FilterAll && !u.IsValid() {
		return fmt.Errorf("%w: urgency %q", ErrInvalidField, u)
	}
	if !c.LastContact.IsValid() {
		return fmt.Errorf("%w: lastContact %q", ErrInvalidField, c.LastContact)
	}
	if c.Sort != "" && c.Sort != SortDesc && c.Sort != SortAsc {
		return fmt.Errorf("%w: sort %q", ErrInvalidField, c.Sort)
	}
	return c.Windows.Validate()
}
