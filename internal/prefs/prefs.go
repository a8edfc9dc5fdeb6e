package prefs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/learnio/learnio/internal/model"
)

// Preference keys. All values are stored as strings; structured values
// are JSON-encoded at this boundary.
const (
	keyRememberMe    = "remember_me"
	keyUserProfile   = "user_profile"
	keySearchHistory = "search_history"
	keyHintShown     = "hotkey_hint_shown"
)

// Store is the persistent preference store: a thin wrapper over a local
// sqlite key-value table. Missing keys resolve to documented defaults.
type Store struct {
	db *sqlx.DB
}

// New opens (or creates) the preference database at dbPath, enables WAL
// mode, and runs any pending schema migrations. Use ":memory:" for an
// ephemeral store.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening preference db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// get returns the raw string value for key. ok is false when the key
// is absent.
func (s *Store) get(key string) (value string, ok bool, err error) {
	err = s.db.Get(&value, "SELECT value FROM preferences WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %q: %w", key, err)
	}
	return value, true, nil
}

// set stores the raw string value for key, replacing any existing value.
func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

// delete removes key. Deleting an absent key is not an error.
func (s *Store) delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}

// RememberMe reports whether the user asked to stay signed in.
func (s *Store) RememberMe() (bool, error) {
	v, ok, err := s.get(keyRememberMe)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// SetRememberMe persists the remember flag.
func (s *Store) SetRememberMe() error {
	return s.set(keyRememberMe, "true")
}

// ClearRememberMe removes the remember flag.
func (s *Store) ClearRememberMe() error {
	return s.delete(keyRememberMe)
}

// Profile returns the persisted user profile, or a blank default when
// none has been saved.
func (s *Store) Profile() (model.UserProfile, error) {
	v, ok, err := s.get(keyUserProfile)
	if err != nil {
		return model.BlankProfile(), err
	}
	if !ok {
		return model.BlankProfile(), nil
	}

	var p model.UserProfile
	if err := json.Unmarshal([]byte(v), &p); err != nil {
		return model.BlankProfile(), fmt.Errorf("decoding stored profile: %w", err)
	}
	return p, nil
}

// SaveProfile persists the user profile as JSON.
func (s *Store) SaveProfile(p model.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return s.set(keyUserProfile, string(data))
}

// ClearProfile removes the persisted profile.
func (s *Store) ClearProfile() error {
	return s.delete(keyUserProfile)
}

// SearchHistory returns the persisted search history, most recent
// first. An absent key yields an empty history.
func (s *Store) SearchHistory() ([]string, error) {
	v, ok, err := s.get(keySearchHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var history []string
	if err := json.Unmarshal([]byte(v), &history); err != nil {
		return nil, fmt.Errorf("decoding search history: %w", err)
	}
	return history, nil
}

// SaveSearchHistory persists the search history as a JSON array.
func (s *Store) SaveSearchHistory(history []string) error {
	if history == nil {
		history = []string{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}
	return s.set(keySearchHistory, string(data))
}

// HintShown reports whether the one-time hotkey hint has been shown.
func (s *Store) HintShown() (bool, error) {
	v, ok, err := s.get(keyHintShown)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// MarkHintShown records that the one-time hotkey hint was displayed.
func (s *Store) MarkHintShown() error {
	return s.set(keyHintShown, "true")
}
