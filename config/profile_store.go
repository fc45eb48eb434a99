package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soocke/blob-follower/assets"
)

// ProfileStore persists one Tunables document per camera profile under dir.
type ProfileStore struct {
	dir    string
	logger *slog.Logger
}

// NewProfileStore returns a store rooted at dir.
func NewProfileStore(dir string, logger *slog.Logger) *ProfileStore {
	return &ProfileStore{dir: dir, logger: logger}
}

// FileName returns the document name for p.
func FileName(p CameraProfile) string {
	return p.String() + "_camera_config.json"
}

// Path returns the on-disk location of p's document.
func (s *ProfileStore) Path(p CameraProfile) string {
	return filepath.Join(s.dir, FileName(p))
}

// Load reads p's document. A missing or malformed document is not an error:
// the shipped defaults are returned and a warning logged.
func (s *ProfileStore) Load(p CameraProfile) Tunables {
	path := s.Path(p)
	b, err := os.ReadFile(path)
	if err == nil {
		t, derr := decodeTunables(b)
		if derr == nil {
			return t
		}
		err = derr
	}
	if s.logger != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("profile missing, using defaults", "profile", p.String(), "path", path)
		} else {
			s.logger.Warn("profile unreadable, using defaults", "profile", p.String(), "path", path, "error", err)
		}
	}
	return Defaults(p)
}

// Save writes t as p's document, creating the directory when needed.
func (s *ProfileStore) Save(p CameraProfile, t Tunables) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("config: profile dir: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(p), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: save %s profile: %w", p, err)
	}
	if s.logger != nil {
		s.logger.Debug("profile saved", "profile", p.String(), "path", s.Path(p))
	}
	return nil
}

// Defaults returns the shipped document for p, or DefaultTunables when the
// embedded copy cannot be decoded.
func Defaults(p CameraProfile) Tunables {
	b, err := assets.DefaultProfile(FileName(p))
	if err != nil {
		return DefaultTunables()
	}
	t, err := decodeTunables(b)
	if err != nil {
		return DefaultTunables()
	}
	return t
}

// decodeTunables starts from DefaultTunables so keys absent from the
// document keep their default value.
func decodeTunables(b []byte) (Tunables, error) {
	t := DefaultTunables()
	if err := json.Unmarshal(b, &t); err != nil {
		return DefaultTunables(), fmt.Errorf("config: decode profile: %w", err)
	}
	return t, nil
}
