package filter

import (
	"time"

	"binchecker/models"
)

// Filter selects the collections the operator wants reminding about
type Filter struct {
	watch map[string]bool
}

// NewFilter creates a Filter for the given watch list of bin types
func NewFilter(watchFor []string) *Filter {
	watch := make(map[string]bool, len(watchFor))
	for _, w := range watchFor {
		watch[w] = true
	}
	return &Filter{watch: watch}
}

// SelectDue returns the subsequence of records whose bin type is watched and
// whose collection date falls exactly on the reference date (day granularity,
// no tolerance window)
func (f *Filter) SelectDue(records []models.CollectionRecord, date time.Time) []models.CollectionRecord {
	var due []models.CollectionRecord
	for _, rec := range records {
		if f.watch[rec.BinType] && sameDay(rec.Date, date) {
			due = append(due, rec)
		}
	}
	return due
}

// Tomorrow computes the reference date from the run's local wall-clock; the
// run is expected to execute the evening before collection
func Tomorrow(now time.Time) time.Time {
	return now.AddDate(0, 0, 1)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
