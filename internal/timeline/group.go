// Package timeline groups stored entries into week and day buckets.
package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"daylog/internal/journal"
	"daylog/internal/storage"
)

// DayGroup holds the entries of one day, ordered by category code.
type DayGroup struct {
	Day     journal.DateKey       `json:"day"`
	Entries []storage.EntryRecord `json:"entries"`
}

// WeekGroup holds the days of one week, most recent first.
type WeekGroup struct {
	Start journal.DateKey `json:"start"`
	End   journal.DateKey `json:"end"`
	Days  []DayGroup      `json:"days"`
}

// WeekStartOf returns the first day of the week containing day.
func WeekStartOf(day journal.DateKey, weekStart time.Weekday) journal.DateKey {
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDays(-offset)
}

// Group filters entries by category when filter is non-nil and buckets
// them by week and day. Weeks and days are ordered most recent first.
// The input slice is not modified.
func Group(entries []storage.EntryRecord, filter *journal.Category, weekStart time.Weekday) []WeekGroup {
	byDay := make(map[journal.DateKey][]storage.EntryRecord)
	for _, e := range entries {
		if filter != nil && e.Category != *filter {
			continue
		}
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	byWeek := make(map[journal.DateKey][]DayGroup)
	for day, dayEntries := range byDay {
		slices.SortStableFunc(dayEntries, func(a, b storage.EntryRecord) int {
			return cmp.Compare(a.Category, b.Category)
		})
		start := WeekStartOf(day, weekStart)
		byWeek[start] = append(byWeek[start], DayGroup{Day: day, Entries: dayEntries})
	}

	weeks := make([]WeekGroup, 0, len(byWeek))
	for start, days := range byWeek {
		slices.SortFunc(days, func(a, b DayGroup) int {
			return b.Day.Compare(a.Day)
		})
		weeks = append(weeks, WeekGroup{Start: start, End: start.AddDays(6), Days: days})
	}
	slices.SortFunc(weeks, func(a, b WeekGroup) int {
		return b.Start.Compare(a.Start)
	})
	return weeks
}

// DisplayRange renders the week as "Jan 2 – Jan 8".
func (w WeekGroup) DisplayRange() string {
	return fmt.Sprintf("%s – %s", shortDate(w.Start), shortDate(w.End))
}

// DisplayDate renders the day as "Mon, Jan 2".
func (d DayGroup) DisplayDate() string {
	return d.Day.Time(time.UTC).Format("Mon, Jan 2")
}

func shortDate(k journal.DateKey) string {
	return k.Time(time.UTC).Format("Jan 2")
}
