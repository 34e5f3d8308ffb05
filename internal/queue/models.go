package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a batch build item.
type Status string

const (
	StatusPending Status = "pending"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusLoading,
	StatusLoaded,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Item represents one spec file queued for batch processing.
type Item struct {
	ID           int64
	SpecPath     string
	Name         string
	Status       Status
	FrameCount   int
	Loops        uint
	SkipFirst    bool
	ErrorMessage string
	RunID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HealthSummary describes aggregated item counts per lifecycle state.
type HealthSummary struct {
	Total   int
	Pending int
	Loading int
	Loaded  int
	Failed  int
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[normalized]
	return normalized, ok
}
