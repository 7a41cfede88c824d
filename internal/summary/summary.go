// Package summary builds the coarse, low-sensitivity progress snapshot a
// user can hand to a sponsor without going through the encrypted share path.
// The snapshot carries aggregates and counters only; nothing in this package
// accepts or emits free-text journal content.
package summary

import (
	"math"
	"time"
)

// Stats is the pre-aggregated input. Callers compute these from their own
// records; this package never sees the underlying entries.
type Stats struct {
	DisplayName      string
	SoberDays        int
	ProgramType      string
	CheckInStreak    int
	CurrentStep      int
	MeetingsThisWeek int
	AvgMood7Day      float64
	AvgCraving7Day   float64
}

// ShareData is the snapshot in transmissible form. Field set is closed: no
// free-text field exists, so entry content cannot leak through this path.
type ShareData struct {
	DisplayName      string    `json:"displayName"`
	SoberDays        int       `json:"soberDays"`
	ProgramType      string    `json:"programType"`
	CheckInStreak    int       `json:"checkInStreak"`
	CurrentStep      int       `json:"currentStep"`
	MeetingsThisWeek int       `json:"meetingsThisWeek"`
	AvgMood7Day      float64   `json:"avgMood7Day"`
	AvgCraving7Day   float64   `json:"avgCraving7Day"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// Build produces a ShareData snapshot from stats. Pure: same inputs, same
// output. Averages are rounded to one decimal so the wire form is stable.
func Build(stats Stats, generatedAt time.Time) ShareData {
	return ShareData{
		DisplayName:      stats.DisplayName,
		SoberDays:        stats.SoberDays,
		ProgramType:      stats.ProgramType,
		CheckInStreak:    stats.CheckInStreak,
		CurrentStep:      stats.CurrentStep,
		MeetingsThisWeek: stats.MeetingsThisWeek,
		AvgMood7Day:      roundTenth(stats.AvgMood7Day),
		AvgCraving7Day:   roundTenth(stats.AvgCraving7Day),
		GeneratedAt:      generatedAt,
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
