package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/internal/i18n"
)

var (
	ErrCorrupt             = errors.New("settings file is corrupt")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Store keeps user language choices in a flat JSON object on disk. Every
// call reloads the file; nothing is cached between calls.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Language returns the stored code for userID, or "" when none is set.
func (s *Store) Language(userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return "", err
	}
	return settings[key(userID)], nil
}

func (s *Store) SetLanguage(userID int64, code string) error {
	lang, ok := i18n.Normalize(code)
	if !ok {
		return errors.Wrapf(ErrUnsupportedLanguage, "%q", code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return err
	}
	settings[key(userID)] = lang
	return s.save(settings)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}

	settings := map[string]string{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", s.path, err)
	}
	return settings, nil
}

// save rewrites the whole file via a temp file in the same directory so a
// crash never leaves a truncated document behind.
func (s *Store) save(settings map[string]string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create settings dir")
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp settings")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close settings")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, "replace settings")
	}
	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
