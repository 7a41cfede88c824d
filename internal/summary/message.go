package summary

import (
	"fmt"
	"strings"
)

// Message renders data as the multi-line plaintext block shown in a share
// sheet or pasted into a message. Deterministic: the same data always yields
// the same text. Lines for absent optional values are omitted rather than
// rendered empty.
func Message(data ShareData) string {
	var b strings.Builder

	if data.DisplayName != "" {
		fmt.Fprintf(&b, "Recovery update from %s\n", data.DisplayName)
	} else {
		b.WriteString("Recovery update\n")
	}

	fmt.Fprintf(&b, "Sober days: %d\n", data.SoberDays)
	if data.ProgramType != "" {
		fmt.Fprintf(&b, "Program: %s\n", data.ProgramType)
	}
	fmt.Fprintf(&b, "Check-in streak: %d days\n", data.CheckInStreak)
	if data.CurrentStep > 0 {
		fmt.Fprintf(&b, "Current step: %d\n", data.CurrentStep)
	}
	fmt.Fprintf(&b, "Meetings this week: %d\n", data.MeetingsThisWeek)
	fmt.Fprintf(&b, "Avg mood (7d): %.1f/10\n", data.AvgMood7Day)
	fmt.Fprintf(&b, "Avg craving (7d): %.1f/10\n", data.AvgCraving7Day)
	fmt.Fprintf(&b, "Generated: %s", data.GeneratedAt.Format("2006-01-02"))

	return b.String()
}
