package timeline

import (
	"reflect"
	"testing"
	"time"

	"daylog/internal/journal"
	"daylog/internal/storage"
)

func entry(day journal.DateKey, category journal.Category) storage.EntryRecord {
	return storage.EntryRecord{Day: day, Category: category, Content: string(category) + " " + day.String()}
}

func TestWeekStartOf(t *testing.T) {
	// 2024-01-17 is a Wednesday.
	wed := journal.NewDateKey(2024, time.January, 17)
	tests := []struct {
		name      string
		day       journal.DateKey
		weekStart time.Weekday
		want      journal.DateKey
	}{
		{name: "sunday start", day: wed, weekStart: time.Sunday, want: journal.NewDateKey(2024, time.January, 14)},
		{name: "monday start", day: wed, weekStart: time.Monday, want: journal.NewDateKey(2024, time.January, 15)},
		{name: "day is week start", day: journal.NewDateKey(2024, time.January, 14), weekStart: time.Sunday, want: journal.NewDateKey(2024, time.January, 14)},
		{name: "sunday with monday start", day: journal.NewDateKey(2024, time.January, 14), weekStart: time.Monday, want: journal.NewDateKey(2024, time.January, 8)},
		{name: "across year", day: journal.NewDateKey(2024, time.January, 2), weekStart: time.Sunday, want: journal.NewDateKey(2023, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStartOf(tt.day, tt.weekStart); got != tt.want {
				t.Errorf("WeekStartOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroup_TwoWeeksApart(t *testing.T) {
	early := journal.NewDateKey(2024, time.January, 3)
	late := early.AddDays(14)

	weeks := Group([]storage.EntryRecord{entry(early, journal.Work), entry(late, journal.Work)}, nil, time.Sunday)
	if len(weeks) != 2 {
		t.Fatalf("Group() returned %d weeks, want 2", len(weeks))
	}
	if weeks[0].Days[0].Day != late {
		t.Errorf("first week holds %v, want most recent day %v", weeks[0].Days[0].Day, late)
	}
	if weeks[1].Days[0].Day != early {
		t.Errorf("second week holds %v, want %v", weeks[1].Days[0].Day, early)
	}
	for _, w := range weeks {
		if w.End != w.Start.AddDays(6) {
			t.Errorf("week %v ends %v, want start+6", w.Start, w.End)
		}
	}
}

func TestGroup_SameWeek(t *testing.T) {
	mon := journal.NewDateKey(2024, time.January, 15)
	wed := mon.AddDays(2)
	fri := mon.AddDays(4)

	entries := []storage.EntryRecord{
		entry(wed, journal.Work),
		entry(mon, journal.Workout),
		entry(fri, journal.Reading),
		entry(wed, journal.Food),
		entry(mon, journal.Health),
	}
	weeks := Group(entries, nil, time.Sunday)
	if len(weeks) != 1 {
		t.Fatalf("Group() returned %d weeks, want 1", len(weeks))
	}

	var days []journal.DateKey
	for _, d := range weeks[0].Days {
		days = append(days, d.Day)
	}
	if want := []journal.DateKey{fri, wed, mon}; !reflect.DeepEqual(days, want) {
		t.Errorf("days = %v, want %v", days, want)
	}

	var wedCategories []journal.Category
	for _, e := range weeks[0].Days[1].Entries {
		wedCategories = append(wedCategories, e.Category)
	}
	if want := []journal.Category{journal.Food, journal.Work}; !reflect.DeepEqual(wedCategories, want) {
		t.Errorf("wednesday categories = %v, want %v", wedCategories, want)
	}
}

func TestGroup_Filter(t *testing.T) {
	day := journal.NewDateKey(2024, time.January, 15)
	entries := []storage.EntryRecord{
		entry(day, journal.Work),
		entry(day, journal.Food),
		entry(day.AddDays(-10), journal.Work),
		entry(day, journal.Category("unknown_category")),
	}

	work := journal.Work
	weeks := Group(entries, &work, time.Sunday)
	total := 0
	for _, w := range weeks {
		for _, d := range w.Days {
			for _, e := range d.Entries {
				total++
				if e.Category != journal.Work {
					t.Errorf("filtered output contains %q", e.Category)
				}
			}
		}
	}
	if total != 2 {
		t.Errorf("filtered output has %d entries, want 2", total)
	}

	for _, c := range journal.Categories() {
		filter := c
		for _, w := range Group(entries, &filter, time.Sunday) {
			for _, d := range w.Days {
				for _, e := range d.Entries {
					if !e.Category.Valid() {
						t.Errorf("filter %q matched unknown category %q", c, e.Category)
					}
				}
			}
		}
	}

	unfiltered := Group(entries, nil, time.Sunday)
	found := false
	for _, d := range unfiltered[0].Days {
		for _, e := range d.Entries {
			if e.Category == "unknown_category" {
				found = true
			}
		}
	}
	if !found {
		t.Error("unfiltered output should include the unknown category entry")
	}
}

func TestGroup_DeterministicAndEmpty(t *testing.T) {
	if got := Group(nil, nil, time.Sunday); len(got) != 0 {
		t.Errorf("Group(nil) = %v, want empty", got)
	}

	day := journal.NewDateKey(2024, time.March, 1)
	entries := []storage.EntryRecord{entry(day, journal.Work), entry(day.AddDays(-1), journal.Food), entry(day.AddDays(-20), journal.Reading)}
	first := Group(entries, nil, time.Monday)
	second := Group(entries, nil, time.Monday)
	if !reflect.DeepEqual(first, second) {
		t.Error("Group() is not deterministic")
	}
}

func TestDisplayHelpers(t *testing.T) {
	start := journal.NewDateKey(2023, time.January, 2)
	week := WeekGroup{Start: start, End: start.AddDays(6)}
	if got, want := week.DisplayRange(), "Jan 2 – Jan 8"; got != want {
		t.Errorf("DisplayRange() = %q, want %q", got, want)
	}
	if got, want := (DayGroup{Day: start}).DisplayDate(), "Mon, Jan 2"; got != want {
		t.Errorf("DisplayDate() = %q, want %q", got, want)
	}
}
