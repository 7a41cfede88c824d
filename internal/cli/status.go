package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/recoverlink/recoverlink/internal/payload"
	"github.com/recoverlink/recoverlink/internal/summary"
)

// Status collects progress numbers and prints both the human-readable update
// and the encodable status card. Only aggregates go in; journal text never
// passes through this flow.
func (a *App) Status(ctx context.Context) error {
	soberDays, err := GetInt(a.reader, "Sober days", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	program, err := getSimpleText(a.reader, "Program (e.g. AA, NA; Enter to skip)", os.Stdout)
	if err != nil {
		return err
	}
	streak, err := GetInt(a.reader, "Check-in streak, days", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	step, err := GetInt(a.reader, "Current step (Enter to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	meetings, err := GetInt(a.reader, "Meetings this week", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	mood, err := GetFloat(a.reader, "Average mood, last 7 days", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	craving, err := GetFloat(a.reader, "Average craving, last 7 days", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data := summary.Build(summary.Stats{
		DisplayName:      a.profile.DisplayName,
		SoberDays:        soberDays,
		ProgramType:      program,
		CheckInStreak:    streak,
		CurrentStep:      step,
		MeetingsThisWeek: meetings,
		AvgMood7Day:      mood,
		AvgCraving7Day:   craving,
	}, time.Now().UTC())

	card, err := payload.Encode(&payload.Status{
		Version:   payload.CurrentVersion,
		ShareData: data,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println(summary.Message(data))
	fmt.Println()
	fmt.Println("Or send the card form:")
	fmt.Println(card)
	return nil
}
