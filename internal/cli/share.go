package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recoverlink/recoverlink/internal/sharing"
)

// Share collects a journal entry interactively, encrypts it for the chosen
// connection and prints the wire string to copy over.
func (a *App) Share(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Connection id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Entry title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Entry text", os.Stdout)
	if err != nil {
		return err
	}
	mood, err := GetInt(a.reader, "Mood 1-10 (Enter to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	craving, err := GetInt(a.reader, "Craving 1-10 (Enter to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	tagsLine, err := getSimpleText(a.reader, "Tags (comma separated, Enter for none)", os.Stdout)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	entry := sharing.Entry{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		Mood:      mood,
		Craving:   craving,
		Tags:      splitTags(tagsLine),
		CreatedAt: now,
		UpdatedAt: now,
	}

	lines, err := a.svc.ShareEntries(ctx, id, []sharing.Entry{entry}, a.profile.DisplayName)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Copy this to the other side:")
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// Comment encrypts a comment on a previously shared entry and prints the
// wire string.
func (a *App) Comment(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Connection id", os.Stdout)
	if err != nil {
		return err
	}
	entryID, err := getSimpleText(a.reader, "Entry id", os.Stdout)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Comment", os.Stdout)
	if err != nil {
		return err
	}

	line, err := a.svc.ShareComment(ctx, id, entryID, text, a.profile.DisplayName)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Copy this to the other side:")
	fmt.Println(line)
	return nil
}

// splitTags turns a comma-separated line into trimmed tags, dropping empties.
func splitTags(line string) []string {
	var tags []string
	for _, t := range strings.Split(line, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
