// Package jsonfile keeps one JSON document per content kind in a directory.
// Writes go to a temporary file that is renamed over the previous document,
// so a failed write never leaves a truncated file behind.
package jsonfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"content_mirror/internal/domain"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "collection.schema.json"

type Store struct {
	dir    string
	now    func() time.Time
	schema *jsonschema.Schema

	// mu serializes read-modify-write cycles inside this process only.
	mu sync.Mutex
}

func New(dir string, now func() time.Time) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("jsonfile: empty directory")
	}
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w: %w", domain.ErrPersistence, err)
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile collection schema: %w", err)
	}
	return &Store{dir: dir, now: now, schema: schema}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}

// Dir is the directory holding the documents.
func (s *Store) Dir() string {
	return s.dir
}

// Path is the document path for kind.
func (s *Store) Path(kind domain.Kind) string {
	return filepath.Join(s.dir, string(kind)+"s.json")
}

func (s *Store) Load(_ context.Context, kind domain.Kind) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(kind)
}

func (s *Store) Save(_ context.Context, c *domain.Collection) error {
	if c == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// An unreadable document has no markers worth keeping; it is replaced.
	if current, err := s.readLocked(c.Kind); err == nil && current != nil {
		c = c.Clone()
		c.KeepCampaignMarkers(current.Items)
	}
	return s.saveLocked(c)
}

func (s *Store) MarkCampaignCreated(_ context.Context, kind domain.Kind, id, campaignID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadLocked(kind)
	if err != nil {
		return err
	}
	_, idx, found := lo.FindIndexOf(c.Items, func(item domain.Item) bool {
		return item.ID == id
	})
	if !found {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	c.Items[idx].CampaignCreated = true
	c.Items[idx].CampaignID = campaignID
	c.Items[idx].CampaignCreatedAt = &at
	return s.saveLocked(c)
}

func (s *Store) Clear(_ context.Context, kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(domain.NewCollection(kind, s.now()))
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) loadLocked(kind domain.Kind) (*domain.Collection, error) {
	c, err := s.readLocked(kind)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = domain.NewCollection(kind, s.now())
		if err := s.saveLocked(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// readLocked decodes the document for kind, or returns nil when none exists.
func (s *Store) readLocked(kind domain.Kind) (*domain.Collection, error) {
	data, err := os.ReadFile(s.Path(kind))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", kind, err)
	}
	if err := s.schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("validate %s: %w", kind, err)
	}

	var c domain.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	c.Kind = kind
	c.Items = lo.UniqBy(c.Items, func(item domain.Item) string {
		return item.ID
	})
	return &c, nil
}

func (s *Store) saveLocked(c *domain.Collection) error {
	if c.Items == nil {
		c.Items = []domain.Item{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, c.Kind, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+string(c.Kind)+"s-*.json.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, c.Kind, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", domain.ErrPersistence, c.Kind, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", domain.ErrPersistence, c.Kind, err)
	}
	if err := os.Rename(tmpName, s.Path(c.Kind)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, c.Kind, err)
	}
	return nil
}
