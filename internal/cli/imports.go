package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Import reads a pasted batch of payload lines and records the ones
// addressed to this device.
func (a *App) Import(ctx context.Context) error {
	raw, err := getMultiline(a.reader, "Paste the received payloads", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.svc.ImportPayloads(ctx, raw)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Imported %d entries and %d comments, %d skipped.\n", result.Entries, result.Comments, result.Skipped)
	return nil
}

// Inbox prints the entries received from one connection, newest last.
func (a *App) Inbox(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Connection id", os.Stdout)
	if err != nil {
		return err
	}

	views, err := a.svc.LoadIncomingEntries(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(views) == 0 {
		fmt.Println("No shared entries from this connection.")
		return nil
	}

	for _, v := range views {
		fmt.Println("----")
		sender := v.SenderName
		if sender == "" {
			sender = "them"
		}
		fmt.Printf("%s, received %s (entry %s)\n", sender, v.ReceivedAt.Format("2006-01-02 15:04"), v.EntryID)
		fmt.Println(v.Content.Title)
		fmt.Println(v.Content.Body)
		fmt.Printf("Mood %d/10, craving %d/10\n", v.Content.Mood, v.Content.Craving)
		if len(v.Content.Tags) > 0 {
			fmt.Printf("Tags: %v\n", v.Content.Tags)
		}
	}
	return nil
}

// Comments prints every comment stored for an entry, sent and received.
func (a *App) Comments(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Entry id", os.Stdout)
	if err != nil {
		return err
	}

	views, err := a.svc.LoadCommentsForEntry(ctx, entryID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(views) == 0 {
		fmt.Println("No comments for this entry.")
		return nil
	}

	for _, v := range views {
		sender := v.SenderName
		if sender == "" {
			sender = "them"
		}
		fmt.Printf("%s (%s): %s\n", sender, v.Content.CreatedAt.Format("2006-01-02 15:04"), v.Content.Text)
	}
	return nil
}
