package sessions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session as one JSON blob at a fixed path. Writes go
// through a temp file and rename so the record on disk always reflects the
// last completed Save or Clear.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

// FileStoreOption modifies a FileStore instance.
type FileStoreOption func(*FileStore)

// WithFileStoreLogger sets the logger for persistence failures, which are
// logged rather than surfaced.
func WithFileStoreLogger(logger zerolog.Logger) FileStoreOption {
	return func(s *FileStore) {
		s.logger = logger
	}
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string, options ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Load reads the persisted session. A missing file yields nil; a file that
// cannot be decoded is removed and yields nil.
func (s *FileStore) Load() *Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Err(err).Str("path", s.path).Msg("session load failed")
		}
		return nil
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("corrupt session record removed")
		s.Clear()
		return nil
	}

	return &session
}

// Save persists session atomically, overwriting any prior record.
func (s *FileStore) Save(session *Session) {
	if session == nil {
		return
	}

	raw, err := json.Marshal(session)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session encode failed")
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("session dir create failed")
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		s.logger.Warn().Err(err).Str("path", tmp).Msg("session write failed")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("session rename failed")
	}
}

// Clear removes the persisted record. Removing an absent record is a no-op.
func (s *FileStore) Clear() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("session clear failed")
	}
}
