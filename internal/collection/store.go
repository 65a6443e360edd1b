// Package collection implements the content-addressed favorites store for
// combination records. Each favorited record is persisted as one object
// named by the hash of its canonical serialization; the object's existence
// is the only state, there is no separate flag.
package collection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/mod-analysis/internal/storage"
	apperrors "github.com/mod-analysis/pkg/errors"
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// DefaultPrefix is the object key prefix for collection entries.
const DefaultPrefix = "favorites"

// State is the result of a Toggle call.
type State string

const (
	// StateFavorited means the record was persisted by the toggle.
	StateFavorited State = "favorited"
	// StateUnfavorited means the record's entry was deleted by the toggle.
	StateUnfavorited State = "unfavorited"
)

// KeyOf returns the content hash of a record: the hex SHA-256 of its
// canonical serialization. Structurally equal records hash identically no
// matter how their fields were assembled; text is hashed as exact bytes.
func KeyOf(record model.CombinationRecord) (string, error) {
	data, err := record.CanonicalBytes()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "cannot canonicalize record", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Store maintains the favorites collection on a storage backend.
//
// Toggle is serialized by an in-process mutex, so concurrent toggles from one
// process cannot race the check-then-act sequence. Toggles from multiple
// processes against the same backend still can; single-process usage is the
// intended model.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	prefix  string
	logger  utils.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the object key prefix for collection entries.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger utils.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a new Store backed by st.
func NewStore(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: st,
		prefix:  DefaultPrefix,
		logger:  &utils.NullLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle flips the favorite state of record: if an entry exists at its
// content key the entry is deleted and StateUnfavorited is returned,
// otherwise the full record is persisted and StateFavorited is returned.
// Toggling twice on an unchanged record restores the original state.
func (s *Store) Toggle(ctx context.Context, record model.CombinationRecord) (State, error) {
	digest, err := KeyOf(record)
	if err != nil {
		return "", err
	}
	key := s.objectKey(digest)

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodePersistence, "cannot check collection entry", err)
	}

	if exists {
		if err := s.storage.Delete(ctx, key); err != nil {
			return "", apperrors.Wrap(apperrors.CodePersistence, "cannot delete collection entry", err)
		}
		s.logger.Debug("unfavorited %s", digest)
		return StateUnfavorited, nil
	}

	data, err := record.CanonicalBytes()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "cannot canonicalize record", err)
	}
	if err := s.storage.Put(ctx, key, data); err != nil {
		return "", apperrors.Wrap(apperrors.CodePersistence, "cannot persist collection entry", err)
	}
	s.logger.Debug("favorited %s", digest)
	return StateFavorited, nil
}

// Contains reports whether record is currently favorited.
func (s *Store) Contains(ctx context.Context, record model.CombinationRecord) (bool, error) {
	digest, err := KeyOf(record)
	if err != nil {
		return false, err
	}
	exists, err := s.storage.Exists(ctx, s.objectKey(digest))
	if err != nil {
		return false, apperrors.Wrap(apperrors.CodePersistence, "cannot check collection entry", err)
	}
	return exists, nil
}

// ListAll returns every persisted record in whatever order the backend
// enumerates its keys. Malformed entries are skipped, not fatal; callers
// wanting a stable order sort the result themselves.
func (s *Store) ListAll(ctx context.Context) ([]model.CombinationRecord, error) {
	keys, err := s.storage.List(ctx, s.prefix+"/")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "cannot list collection entries", err)
	}

	records := []model.CombinationRecord{}
	for _, key := range keys {
		data, err := s.storage.Get(ctx, key)
		if err != nil {
			// Entry vanished or is unreadable; skip it.
			s.logger.Warn("skipping unreadable collection entry %s: %v", key, err)
			continue
		}
		var record model.CombinationRecord
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn("skipping malformed collection entry %s: %v", key, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) objectKey(digest string) string {
	return s.prefix + "/" + digest + ".json"
}
