package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func TestApplyQuickFilter_ResetsOtherDimensions(t *testing.T) {
	state := NewFilterState(domain.StatsWindows{RecentDays: 3, AttentionDays: 45})
	state.Search = "ana"
	state.Urgency = domain.UrgencyHigh
	state.LastContact = domain.LastContactNever
	state.Sort = domain.SortAsc

	next, err := state.ApplyQuickFilter(QuickFilterType, string(domain.ManagementTenant))
	require.NoError(t, err)

	assert.Equal(t, domain.ManagementTenant, next.ManagementType)
	assert.Equal(t, domain.LastContactAll, next.LastContact)
	assert.Equal(t, domain.Urgency(domain.FilterAll), next.Urgency)
	assert.Empty(t, next.Search)
	assert.Equal(t, domain.SortAsc, next.Sort)
	assert.Equal(t, 45, next.Windows.AttentionDays)

	// и наоборот
	next, err = next.ApplyQuickFilter(QuickFilterLastContact, string(domain.LastContactNeedsAttention))
	require.NoError(t, err)
	assert.Equal(t, domain.ManagementType(domain.FilterAll), next.ManagementType)
	assert.Equal(t, domain.LastContactNeedsAttention, next.LastContact)
}

func TestApplyQuickFilter_Reset(t *testing.T) {
	state := NewFilterState(domain.DefaultStatsWindows())
	state.ManagementType = domain.ManagementBuyer
	state.Search = "x"

	next, err := state.ApplyQuickFilter(QuickFilterReset, "")
	require.NoError(t, err)
	assert.Equal(t, NewFilterState(domain.DefaultStatsWindows()), next)
}

func TestApplyQuickFilter_InvalidValueKeepsState(t *testing.T) {
	state := NewFilterState(domain.DefaultStatsWindows())
	state.Search = "keep"

	next, err := state.ApplyQuickFilter(QuickFilterType, "alien")
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Equal(t, state, next)

	_, err = state.ApplyQuickFilter("urgency", "alta")
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestParseQuickFilter(t *testing.T) {
	kind, value, err := ParseQuickFilter("type:comprador")
	require.NoError(t, err)
	assert.Equal(t, QuickFilterType, kind)
	assert.Equal(t, "comprador", value)

	kind, _, err = ParseQuickFilter("reset")
	require.NoError(t, err)
	assert.Equal(t, QuickFilterReset, kind)

	for _, bad := range []string{"", "type", "type:", "foo:bar"} {
		_, _, err := ParseQuickFilter(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidField, bad)
	}
}
