package tutorial

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tutorial not found")

// Store persists per-tutorial metadata as flat meta.json records under a
// single root directory. Writes replace the whole record, so callers mutate
// through Update to avoid clobbering fields owned by earlier pipeline stages.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Paths(id string) Paths {
	return PathsFor(s.root, id)
}

// Create allocates a new tutorial id, makes its working directory and writes
// the initial metadata record.
func (s *Store) Create(title string) (*Metadata, error) {
	if title == "" {
		title = "Untitled Tutorial"
	}

	meta := &Metadata{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Status:    StatusScreenUploaded,
		VoiceMode: VoiceModeAI,
	}

	paths := s.Paths(meta.ID)
	if err := os.MkdirAll(paths.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create tutorial dir: %w", err)
	}

	if err := s.write(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *Store) Read(id string) (*Metadata, error) {
	data, err := os.ReadFile(s.Paths(id).Meta)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

// Update applies mutate to the current record and writes the full record
// back. Last write wins; there is no cross-process locking on meta.json.
func (s *Store) Update(id string, mutate func(*Metadata)) (*Metadata, error) {
	meta, err := s.Read(id)
	if err != nil {
		return nil, err
	}

	mutate(meta)

	if err := s.write(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *Store) write(meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	if err := os.WriteFile(s.Paths(meta.ID).Meta, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// EnsureOverlayDir creates the overlay asset directory for a tutorial and
// returns its path.
func (s *Store) EnsureOverlayDir(id string) (string, error) {
	dir := s.Paths(id).Overlays
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create overlay dir: %w", err)
	}
	return dir, nil
}

// NewOverlayAssetName builds a collision-resistant filename for an uploaded
// overlay image, keeping the original extension.
func NewOverlayAssetName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
}
