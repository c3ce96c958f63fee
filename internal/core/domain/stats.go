package domain

import (
	"fmt"
	"slices"
)

// Допустимые окна для дашборда.
var (
	RecentWindowOptions    = []int{3, 7, 15, 30}
	AttentionWindowOptions = []int{15, 30, 45, 60}
)

const (
	DefaultRecentDays    = 7
	DefaultAttentionDays = 30
)

// StatsWindows - пороги "недавно контактировали" и "требует внимания" в днях.
type StatsWindows struct {
	RecentDays    int `json:"recentDays"`
	AttentionDays int `json:"attentionDays"`
}

func DefaultStatsWindows() StatsWindows {
	return StatsWindows{RecentDays: DefaultRecentDays, AttentionDays: DefaultAttentionDays}
}

// OrDefault подставляет значения по умолчанию вместо незаданных окон.
func (w StatsWindows) OrDefault() StatsWindows {
	if w.RecentDays == 0 {
		w.RecentDays = DefaultRecentDays
	}
	if w.AttentionDays == 0 {
		w.AttentionDays = DefaultAttentionDays
	}
	return w
}

func (w StatsWindows) Validate() error {
	if !slices.Contains(RecentWindowOptions, w.RecentDays) {
		return fmt.Errorf("%w: recentDays=%d", ErrInvalidStatsWindow, w.RecentDays)
	}
	if !slices.Contains(AttentionWindowOptions, w.AttentionDays) {
		return fmt.Errorf("%w: attentionDays=%d", ErrInvalidStatsWindow, w.AttentionDays)
	}
	return nil
}

// ContactStats - счетчики для дашборда.
type ContactStats struct {
	Total            int                    `json:"total"`
	ByManagementType map[ManagementType]int `json:"byManagementType"`
	RecentContacts   int                    `json:"recentContacts"`
	NeedsAttention   int                    `json:"needsAttention"`
	Windows          StatsWindows           `json:"windows"`
}
