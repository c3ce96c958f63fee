package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

// IsCompatible решает, подходит ли объект покупателю.
// Пустые поля объекта не ограничивают подбор, тип сравнивается всегда.
func IsCompatible(buyer domain.Contact, draft domain.PropertyDraft) bool {
	return isCompatible(cases.Fold(), &buyer, &draft)
}

// MatchBuyers отбирает совместимые контакты, сохраняя порядок коллекции.
func MatchBuyers(contacts []domain.Contact, draft domain.PropertyDraft) []domain.Contact {
	fold := cases.Fold()
	matched := make([]domain.Contact, 0)
	for i := range contacts {
		if isCompatible(fold, &contacts[i], &draft) {
			matched = append(matched, contacts[i])
		}
	}
	return matched
}

func isCompatible(fold cases.Caser, buyer *domain.Contact, draft *domain.PropertyDraft) bool {
	if buyer.Type != draft.Type {
		return false
	}
	if draft.Zone != "" && !zoneMatches(fold, buyer, fold.String(draft.Zone)) {
		return false
	}
	if draft.Price > 0 && buyer.MaxBudget > 0 && buyer.MaxBudget < draft.Price {
		return false
	}
	if draft.Rooms > 0 && buyer.MinRooms > 0 && buyer.MinRooms > draft.Rooms {
		return false
	}
	if draft.Bathrooms > 0 && buyer.MinBathrooms > 0 && buyer.MinBathrooms > draft.Bathrooms {
		return false
	}

	extras := []struct {
		need    domain.Preference
		offered domain.Offered
	}{
		{buyer.NeedParking, draft.Parking},
		{buyer.NeedTerrace, draft.Terrace},
		{buyer.NeedGarden, draft.Garden},
		{buyer.NeedPool, draft.Pool},
	}
	for _, e := range extras {
		if e.need == domain.PreferenceYes && !e.offered {
			return false
		}
	}
	return true
}

// zoneMatches: сначала список zones, затем старое поле zone.
// Покупатель без данных о зоне подходит под любую зону.
func zoneMatches(fold cases.Caser, buyer *domain.Contact, query string) bool {
	if len(buyer.Zones) > 0 {
		for _, z := range buyer.Zones {
			if strings.Contains(fold.String(z), query) {
				return true
			}
		}
		return false
	}
	if buyer.Zone != "" {
		return strings.Contains(fold.String(buyer.Zone), query)
	}
	return true
}
