package sharing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/recoverlink/recoverlink/internal/securestore"
)

const keyProfile = "profile"

// Profile identifies the local user: UserID owns the share rows, DisplayName
// is the default sender name stamped into outgoing payloads.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// EnsureProfile loads the stored profile, creating one with a fresh user id
// on first run. A non-empty displayName replaces the stored name.
func EnsureProfile(ctx context.Context, store securestore.Store, displayName string) (*Profile, error) {
	profile, err := LoadProfile(ctx, store)
	switch {
	case err == nil:
		if displayName == "" || displayName == profile.DisplayName {
			return profile, nil
		}
		profile.DisplayName = displayName
	case errors.Is(err, securestore.ErrNotFound):
		profile = &Profile{UserID: uuid.NewString(), DisplayName: displayName}
	default:
		return nil, err
	}

	if err := SaveProfile(ctx, store, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func LoadProfile(ctx context.Context, store securestore.Store) (*Profile, error) {
	raw, err := store.Get(ctx, keyProfile)
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &profile, nil
}

func SaveProfile(ctx context.Context, store securestore.Store, profile *Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := store.Set(ctx, keyProfile, string(raw)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}
