// Package sharing orchestrates the sponsor data-sharing flows: the pairing
// handshake, encrypting journal entries and comments into wire payloads,
// recording them in the local outbox, and importing pasted payloads into the
// inbox. Transmission itself stays out of scope; callers copy the returned
// strings into whatever channel they trust.
package sharing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/connections"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/dbx"
	"github.com/recoverlink/recoverlink/internal/logging"
	"github.com/recoverlink/recoverlink/internal/pairing"
	"github.com/recoverlink/recoverlink/internal/payload"
)

// Service wires the sharing flows together. All dependencies are explicit;
// the clock is a field so tests can pin payload timestamps.
type Service struct {
	db     *sql.DB
	repo   Repository
	conns  *connections.Store
	codes  *pairing.Generator
	userID string
	logger logging.Logger

	now func() time.Time
}

func NewService(db *sql.DB, conns *connections.Store, codes *pairing.Generator, userID string, logger logging.Logger) *Service {
	return &Service{
		db:     db,
		repo:   NewSQLiteRepository(db),
		conns:  conns,
		codes:  codes,
		userID: userID,
		logger: logger,
		now:    time.Now,
	}
}

// ShareEntries encrypts each entry under the connection's shared key, records
// an outgoing row per entry, and returns the encoded wire strings in input
// order. The connection must have completed its key exchange.
func (s *Service) ShareEntries(ctx context.Context, connectionID string, entries []Entry, senderName string) ([]string, error) {
	conn, err := s.conns.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	key, err := s.connectionKey(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	encoded := make([]string, 0, len(entries))
	for _, entry := range entries {
		line, err := s.buildEntryShare(conn, key, entry, senderName)
		if err != nil {
			return nil, err
		}

		if err := s.recordRow(ctx, conn.ID, DirectionOutgoing, entry.ID, line); err != nil {
			return nil, err
		}
		encoded = append(encoded, line)
	}
	return encoded, nil
}

// ShareComment encrypts a single comment on a previously shared entry and
// records it with the comment direction tag.
func (s *Service) ShareComment(ctx context.Context, connectionID string, entryID string, text string, senderName string) (string, error) {
	conn, err := s.conns.GetByID(ctx, connectionID)
	if err != nil {
		return "", err
	}

	key, err := s.connectionKey(ctx, connectionID)
	if err != nil {
		return "", err
	}

	now := s.now()
	plaintext, err := json.Marshal(CommentContent{Text: text, CreatedAt: now})
	if err != nil {
		return "", fmt.Errorf("marshal comment content: %w", err)
	}

	envelope, err := cryptox.EncryptEnvelope(key, plaintext)
	if err != nil {
		return "", err
	}

	line, err := payload.Encode(&payload.CommentShare{
		Version:    payload.CurrentVersion,
		Code:       conn.Code,
		EntryID:    entryID,
		Encrypted:  envelope,
		SenderName: senderName,
		CreatedAt:  now,
	})
	if err != nil {
		return "", err
	}

	if err := s.recordRow(ctx, conn.ID, DirectionComment, entryID, line); err != nil {
		return "", err
	}
	return line, nil
}

// ImportPayloads classifies every pasted line independently and records the
// ones that check out. Per-line problems (unparseable text, unknown code,
// missing key, failed decryption, duplicates) are counted as skipped and
// never abort the batch; only share-store I/O failures do. Handshake lines
// are skipped here, pairing runs through its own operations.
func (s *Service) ImportPayloads(ctx context.Context, raw string) (*ImportResult, error) {
	result := &ImportResult{}
	touched := map[string]bool{}

	for _, line := range payload.SplitBatch(raw) {
		decoded, ok := payload.Decode(line)
		if !ok {
			s.logger.Warn(ctx, "import: unparseable line skipped")
			result.Skipped++
			continue
		}

		switch p := decoded.(type) {
		case *payload.EntryShare:
			connID, err := s.importEncrypted(ctx, line, p.Code, p.EntryID, p.Encrypted, DirectionIncoming)
			if err != nil {
				return nil, err
			}
			if connID == "" {
				result.Skipped++
				continue
			}
			result.Entries++
			touched[connID] = true
		case *payload.CommentShare:
			connID, err := s.importEncrypted(ctx, line, p.Code, p.EntryID, p.Encrypted, DirectionComment)
			if err != nil {
				return nil, err
			}
			if connID == "" {
				result.Skipped++
				continue
			}
			result.Comments++
			touched[connID] = true
		default:
			s.logger.Info(ctx, "import: non-share payload skipped", "kind", decoded.Kind())
			result.Skipped++
		}
	}

	syncedAt := s.now()
	for connID := range touched {
		if err := s.conns.MarkSynced(ctx, connID, syncedAt); err != nil {
			// rows are already committed; the stamp is advisory
			s.logger.Error(ctx, "import: failed to mark connection synced", "connection_id", connID, "error", err)
		}
	}
	return result, nil
}

// importEncrypted handles one decoded share line. It returns the connection
// id when the line was recorded and "" when it should count as skipped; an
// error means the share store itself failed.
func (s *Service) importEncrypted(ctx context.Context, line string, code string, entryID string, envelope cryptox.Envelope, direction Direction) (string, error) {
	conn, err := s.conns.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "import: no connection for code", "code", code)
			return "", nil
		}
		return "", err
	}

	key, err := s.connectionKey(ctx, conn.ID)
	if err != nil {
		if errors.Is(err, connections.ErrNotReady) {
			s.logger.Warn(ctx, "import: connection missing shared key", "connection_id", conn.ID)
			return "", nil
		}
		return "", err
	}

	if _, err := cryptox.DecryptEnvelope(key, envelope); err != nil {
		if errors.Is(err, cryptox.ErrDecryptionFailed) {
			s.logger.Warn(ctx, "import: payload failed to decrypt", "connection_id", conn.ID)
			return "", nil
		}
		return "", err
	}

	inserted := false
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)

		exists, err := repo.ExistsByPayload(ctx, line)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		now := s.now()
		inserted = true
		return repo.Insert(ctx, &Row{
			ID:             uuid.NewString(),
			UserID:         s.userID,
			ConnectionID:   conn.ID,
			Direction:      direction,
			JournalEntryID: entryID,
			Payload:        line,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	})
	if err != nil {
		return "", err
	}
	if !inserted {
		s.logger.Info(ctx, "import: duplicate payload skipped", "connection_id", conn.ID)
		return "", nil
	}
	return conn.ID, nil
}

// LoadIncomingEntries decrypts the connection's incoming rows into views.
// Rows that no longer decode or decrypt are logged and omitted rather than
// failing the whole read.
func (s *Service) LoadIncomingEntries(ctx context.Context, connectionID string) ([]EntryView, error) {
	key, err := s.connectionKey(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByConnection(ctx, connectionID, DirectionIncoming)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(rows))
	for _, row := range rows {
		share, ok := payload.DecodeEntryShare(row.Payload)
		if !ok {
			s.logger.Warn(ctx, "stored row no longer decodes", "row_id", row.ID)
			continue
		}

		plaintext, err := cryptox.DecryptEnvelope(key, share.Encrypted)
		if err != nil {
			s.logger.Warn(ctx, "stored row no longer decrypts", "row_id", row.ID)
			continue
		}

		var content SharedEntryContent
		if err := json.Unmarshal(plaintext, &content); err != nil {
			s.logger.Warn(ctx, "stored row content unreadable", "row_id", row.ID)
			continue
		}

		views = append(views, EntryView{
			RowID:        row.ID,
			ConnectionID: row.ConnectionID,
			EntryID:      share.EntryID,
			SenderName:   share.SenderName,
			Content:      content,
			ReceivedAt:   row.CreatedAt,
		})
	}
	return views, nil
}

// LoadCommentsForEntry decrypts every comment row referencing the entry,
// whichever connection it came through, with the same partial-success policy
// as LoadIncomingEntries.
func (s *Service) LoadCommentsForEntry(ctx context.Context, entryID string) ([]CommentView, error) {
	rows, err := s.repo.ListByEntry(ctx, entryID, DirectionComment)
	if err != nil {
		return nil, err
	}

	keys := map[string][]byte{}
	views := make([]CommentView, 0, len(rows))
	for _, row := range rows {
		key, ok := keys[row.ConnectionID]
		if !ok {
			key, err = s.connectionKey(ctx, row.ConnectionID)
			if err != nil {
				s.logger.Warn(ctx, "no shared key for stored comment", "row_id", row.ID, "connection_id", row.ConnectionID)
				continue
			}
			keys[row.ConnectionID] = key
		}

		share, ok := payload.DecodeCommentShare(row.Payload)
		if !ok {
			s.logger.Warn(ctx, "stored row no longer decodes", "row_id", row.ID)
			continue
		}

		plaintext, err := cryptox.DecryptEnvelope(key, share.Encrypted)
		if err != nil {
			s.logger.Warn(ctx, "stored row no longer decrypts", "row_id", row.ID)
			continue
		}

		var content CommentContent
		if err := json.Unmarshal(plaintext, &content); err != nil {
			s.logger.Warn(ctx, "stored row content unreadable", "row_id", row.ID)
			continue
		}

		views = append(views, CommentView{
			RowID:        row.ID,
			ConnectionID: row.ConnectionID,
			EntryID:      share.EntryID,
			SenderName:   share.SenderName,
			Content:      content,
			ReceivedAt:   row.CreatedAt,
		})
	}
	return views, nil
}

// connectionKey loads and decodes the connection's AES key. The not-ready
// sentinel passes through untouched so callers can tell "no key yet" apart
// from storage failures.
func (s *Service) connectionKey(ctx context.Context, connectionID string) ([]byte, error) {
	encoded, err := s.conns.SharedKey(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	key, err := cryptox.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("stored shared key for connection %s: %w", connectionID, err)
	}
	return key, nil
}

func (s *Service) buildEntryShare(conn *connections.Connection, key []byte, entry Entry, senderName string) (string, error) {
	content := SharedEntryContent{
		Title:     entry.Title,
		Body:      entry.Body,
		Mood:      entry.Mood,
		Craving:   entry.Craving,
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}

	plaintext, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("marshal entry content: %w", err)
	}

	envelope, err := cryptox.EncryptEnvelope(key, plaintext)
	if err != nil {
		return "", err
	}

	return payload.Encode(&payload.EntryShare{
		Version:    payload.CurrentVersion,
		Code:       conn.Code,
		EntryID:    entry.ID,
		Encrypted:  envelope,
		SenderName: senderName,
		CreatedAt:  s.now(),
	})
}

func (s *Service) recordRow(ctx context.Context, connectionID string, direction Direction, entryID string, line string) error {
	now := s.now()
	return s.repo.Insert(ctx, &Row{
		ID:             uuid.NewString(),
		UserID:         s.userID,
		ConnectionID:   connectionID,
		Direction:      direction,
		JournalEntryID: entryID,
		Payload:        line,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}
