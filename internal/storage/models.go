package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"daylog/internal/journal"
)

// MetricsRecord is the biometric summary for one day. One row per Day.
type MetricsRecord struct {
	ID               string          `json:"id"`
	Day              journal.DateKey `json:"day"`
	Steps            *int            `json:"steps,omitempty"`
	SleepHours       *float64        `json:"sleep_hours,omitempty"`
	WeightKg         *float64        `json:"weight_kg,omitempty"`
	RestingHeartRate *int            `json:"resting_heart_rate,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NoteRecord is the imported daily note for one day. One row per Day.
type NoteRecord struct {
	ID        string          `json:"id"`
	Day       journal.DateKey `json:"day"`
	RawText   string          `json:"raw_text"`
	Filename  string          `json:"filename"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryRecord is one categorized summary. One row per (Day, Category).
// NoteDay points at the note that produced the entry and is set on insert only.
type EntryRecord struct {
	ID        string           `json:"id"`
	Day       journal.DateKey  `json:"day"`
	Category  journal.Category `json:"category"`
	Content   string           `json:"content"`
	NoteDay   journal.DateKey  `json:"note_day"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FormattedSteps renders steps with thousands separators ("12,345").
func (m MetricsRecord) FormattedSteps() string {
	if m.Steps == nil {
		return ""
	}
	digits := strconv.Itoa(*m.Steps)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

// FormattedSleep renders sleep as hours and minutes ("7h 30m").
func (m MetricsRecord) FormattedSleep() string {
	if m.SleepHours == nil {
		return ""
	}
	hours := int(*m.SleepHours)
	minutes := int((*m.SleepHours - float64(hours)) * 60)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func (m MetricsRecord) FormattedWeight() string {
	if m.WeightKg == nil {
		return ""
	}
	return fmt.Sprintf("%.1f kg", *m.WeightKg)
}

func (m MetricsRecord) FormattedHeartRate() string {
	if m.RestingHeartRate == nil {
		return ""
	}
	return fmt.Sprintf("%d bpm", *m.RestingHeartRate)
}
