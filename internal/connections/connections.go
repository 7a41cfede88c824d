// Package connections keeps the sponsor/sponsee relationship records and the
// cryptographic material bound to each of them. Records live as one JSON
// list under a single secure-store key; every mutation rewrites the whole
// list and returns only after it is persisted. The store is single-user and
// single-device, so concurrent writers get last-writer-wins rather than
// locking.
package connections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/securestore"
)

const keyConnections = "connections"

// Connection is one sponsor/sponsee relationship as seen from this device.
// ID is internal and stable; Code is the pairing code the relationship was
// established with and is what incoming payloads reference.
type Connection struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	ConnectedAt time.Time  `json:"connectedAt"`
	LastSyncAt  *time.Time `json:"lastSyncAt,omitempty"`
}

// Store persists connections and their key material. The at-rest cipher
// wraps shared keys before they touch the secure store.
type Store struct {
	store  securestore.Store
	atRest *cryptox.AtRest

	now func() time.Time
}

func NewStore(store securestore.Store, atRest *cryptox.AtRest) *Store {
	return &Store{store: store, atRest: atRest, now: time.Now}
}

// Add creates a new connection record and persists it before returning it.
func (s *Store) Add(ctx context.Context, code string, name string) (*Connection, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	conn := Connection{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        name,
		ConnectedAt: s.now(),
	}

	list = append(list, conn)
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return &conn, nil
}

// List returns all connections in insertion order.
func (s *Store) List(ctx context.Context) ([]Connection, error) {
	return s.load(ctx)
}

func (s *Store) GetByID(ctx context.Context, id string) (*Connection, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("connection %s: %w", id, common.ErrorNotFound)
}

// GetByCode resolves a connection by its pairing code. Import uses this to
// route a payload back to the relationship it belongs to.
func (s *Store) GetByCode(ctx context.Context, code string) (*Connection, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Code == code {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("connection with code %s: %w", code, common.ErrorNotFound)
}

func (s *Store) UpdateName(ctx context.Context, id string, name string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
			return s.save(ctx, list)
		}
	}
	return fmt.Errorf("connection %s: %w", id, common.ErrorNotFound)
}

// Remove deletes the record and the connection's key material. The record
// goes first so a failure deleting keys never resurrects the relationship.
func (s *Store) Remove(ctx context.Context, id string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	kept := list[:0]
	for _, conn := range list {
		if conn.ID == id {
			found = true
			continue
		}
		kept = append(kept, conn)
	}
	if !found {
		return fmt.Errorf("connection %s: %w", id, common.ErrorNotFound)
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, keyPairKey(id)); err != nil {
		return fmt.Errorf("delete connection key pair: %w", err)
	}
	if err := s.store.Delete(ctx, sharedKeyKey(id)); err != nil {
		return fmt.Errorf("delete connection shared key: %w", err)
	}
	return nil
}

// MarkSynced stamps the time of the latest successful import for the
// connection.
func (s *Store) MarkSynced(ctx context.Context, id string, at time.Time) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].LastSyncAt = &at
			return s.save(ctx, list)
		}
	}
	return fmt.Errorf("connection %s: %w", id, common.ErrorNotFound)
}

func (s *Store) load(ctx context.Context) ([]Connection, error) {
	raw, err := s.store.Get(ctx, keyConnections)
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return []Connection{}, nil
		}
		return nil, fmt.Errorf("read connections: %w", err)
	}

	var list []Connection
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("parse connections: %w", err)
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []Connection) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal connections: %w", err)
	}
	if err := s.store.Set(ctx, keyConnections, string(raw)); err != nil {
		return fmt.Errorf("store connections: %w", err)
	}
	return nil
}
