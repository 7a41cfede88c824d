package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// List prints one line per connection: id, name, code and sync state.
func (a *App) List(ctx context.Context) error {
	list, err := a.conns.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(list) == 0 {
		fmt.Println("No connections yet.")
		return nil
	}

	for _, c := range list {
		sync := "never synced"
		if c.LastSyncAt != nil {
			sync = "last sync " + c.LastSyncAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s  %s (%s), connected %s, %s\n", c.ID, c.Name, c.Code, c.ConnectedAt.Format("2006-01-02"), sync)
	}
	return nil
}

// Rename changes a connection's display name.
func (a *App) Rename(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Connection id", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.conns.UpdateName(ctx, id, name); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Renamed.")
	return nil
}

// Remove deletes a connection together with its key material. Shared history
// rows stay in the local database but can no longer be decrypted.
func (a *App) Remove(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Connection id", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "This deletes the connection's keys and cannot be undone. Type yes to continue", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.conns.Remove(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Removed.")
	return nil
}
