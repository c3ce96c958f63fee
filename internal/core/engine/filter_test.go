package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func daysAgo(n float64) *time.Time {
	return at(testNow.Add(-time.Duration(n * float64(day))))
}

func ids(contacts []domain.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.ID)
	}
	return out
}

func TestSortByLastContact_NeverContactedAlwaysLast(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "A"},
		{ID: "B", LastContact: at(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "C", LastContact: at(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))},
	}

	desc := FilterContacts(contacts, domain.FilterCriteria{Sort: domain.SortDesc}, testNow)
	if diff := cmp.Diff([]string{"C", "B", "A"}, ids(desc)); diff != "" {
		t.Errorf("desc order mismatch (-want +got):\n%s", diff)
	}

	asc := FilterContacts(contacts, domain.FilterCriteria{Sort: domain.SortAsc}, testNow)
	if diff := cmp.Diff([]string{"B", "C", "A"}, ids(asc)); diff != "" {
		t.Errorf("asc order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "A", contacts[0].ID, "input must not be reordered")
}

func TestSortByLastContact_StableForTies(t *testing.T) {
	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	contacts := []domain.Contact{
		{ID: "n1"},
		{ID: "t1", LastContact: at(same)},
		{ID: "n2"},
		{ID: "t2", LastContact: at(same)},
	}

	got := FilterContacts(contacts, domain.FilterCriteria{}, testNow)
	assert.Equal(t, []string{"t1", "t2", "n1", "n2"}, ids(got))
}

func TestFilterContacts_Search(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "1", Name: "Ana García", Phone: "600 111 222", Email: "ana@example.com"},
		{ID: "2", Name: "Jordi Puig", Phone: "+34 933000000", Email: "JORDI@Mail.cat"},
		{ID: "3", Name: "Marta", Phone: "611222333"},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty term passes all", "", []string{"1", "2", "3"}},
		{"name case insensitive", "GARCÍA", []string{"1"}},
		{"email case insensitive", "mail.CAT", []string{"2"}},
		{"phone raw substring", "111 222", []string{"1"}},
		{"phone is not normalised", "111222", nil},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterContacts(contacts, domain.FilterCriteria{Search: tt.search}, testNow)
			want := tt.want
			if want == nil {
				want = []string{}
			}
			assert.ElementsMatch(t, want, ids(got))
		})
	}
}

func TestFilterContacts_LastContactModes(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "never"},
		{ID: "fresh", LastContact: daysAgo(0.5)},
		{ID: "week", LastContact: daysAgo(6.5)},
		{ID: "twoweeks", LastContact: daysAgo(14)},
		{ID: "month", LastContact: daysAgo(29.5)},
		{ID: "old", LastContact: daysAgo(45)},
		{ID: "future", LastContact: at(testNow.Add(2 * day))},
	}
	windows := domain.StatsWindows{RecentDays: 7, AttentionDays: 30}

	tests := []struct {
		mode domain.LastContactFilter
		want []string
	}{
		{domain.LastContactAll, []string{"never", "fresh", "week", "twoweeks", "month", "old", "future"}},
		{domain.LastContactNever, []string{"never"}},
		// 6.5 дня округляются до 7 и попадают в окно
		{domain.LastContactRecent, []string{"fresh", "week", "future"}},
		{domain.LastContactNeedsAttention, []string{"never", "old"}},
		{domain.LastContact7Days, []string{"fresh", "week", "future"}},
		{domain.LastContact15Days, []string{"fresh", "week", "twoweeks", "future"}},
		{domain.LastContact30Days, []string{"fresh", "week", "twoweeks", "month", "future"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := FilterContacts(contacts, domain.FilterCriteria{LastContact: tt.mode, Windows: windows}, testNow)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestFilterContacts_FutureDatesUseAbsoluteAge(t *testing.T) {
	// Фильтр берет модуль разницы и округляет вверх, статистика сравнивает точную разницу со знаком.
	contacts := []domain.Contact{
		{ID: "ahead", LastContact: at(testNow.Add(10 * day))},
		{ID: "b", LastContact: daysAgo(6.2)},
		{ID: "c", LastContact: daysAgo(30.5)},
	}
	windows := domain.StatsWindows{RecentDays: 7, AttentionDays: 30}

	recent := FilterContacts(contacts, domain.FilterCriteria{LastContact: domain.LastContactRecent, Windows: windows}, testNow)
	assert.ElementsMatch(t, []string{"b"}, ids(recent))

	attention := FilterContacts(contacts, domain.FilterCriteria{LastContact: domain.LastContactNeedsAttention, Windows: windows}, testNow)
	assert.ElementsMatch(t, []string{"c"}, ids(attention))

	stats := Stats(contacts, windows, testNow)
	assert.Equal(t, 2, stats.RecentContacts)
	assert.Equal(t, 1, stats.NeedsAttention)
}

func TestFilterContacts_AllPredicatesAnded(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "1", Name: "Ana", ManagementType: domain.ManagementBuyer, Urgency: domain.UrgencyHigh, LastContact: daysAgo(2)},
		{ID: "2", Name: "Ana", ManagementType: domain.ManagementTenant, Urgency: domain.UrgencyHigh, LastContact: daysAgo(2)},
		{ID: "3", Name: "Ana", ManagementType: domain.ManagementBuyer, Urgency: domain.UrgencyLow, LastContact: daysAgo(2)},
		{ID: "4", Name: "Ana", ManagementType: domain.ManagementBuyer, Urgency: domain.UrgencyHigh},
		{ID: "5", Name: "Luis", ManagementType: domain.ManagementBuyer, Urgency: domain.UrgencyHigh, LastContact: daysAgo(2)},
	}

	got := FilterContacts(contacts, domain.FilterCriteria{
		Search:         "ana",
		ManagementType: domain.ManagementBuyer,
		LastContact:    domain.LastContact7Days,
		Urgency:        domain.UrgencyHigh,
	}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterContacts_AllKeywordDisablesCategoricalFilters(t *testing.T) {
	contacts := []domain.Contact{
		{ID: "1", ManagementType: domain.ManagementBuyer, Urgency: domain.UrgencyHigh},
		{ID: "2", ManagementType: domain.ManagementLandlordOwner, Urgency: domain.UrgencyLow},
	}
	got := FilterContacts(contacts, domain.FilterCriteria{ManagementType: domain.FilterAll, Urgency: domain.FilterAll}, testNow)
	assert.Len(t, got, 2)
}
