package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/loader"
)

// Defaults applied by Manager.Add.
const (
	DefaultCategory   = "Other"
	DefaultDifficulty = "Intermediate"
)

// Difficulties lists the suggested difficulty levels.
var Difficulties = []string{"Beginner", "Intermediate", "Advanced"}

var validate = validator.New()

// AddRequest describes a set document to add to the catalog.
type AddRequest struct {
	// Path is the document to add; it is copied into the data directory.
	Path        string `validate:"required"`
	Title       string `validate:"max=200"`
	Description string `validate:"max=2000"`
	Category    string `validate:"max=100"`
	Difficulty  string `validate:"max=100"`
}

// Manager maintains the catalog stored in a local data directory.
type Manager struct {
	dir    string
	file   string
	now    func() time.Time
	logger *slog.Logger
	mu     sync.Mutex
}

// NewManager creates a Manager for dir. An empty file selects DefaultFile.
func NewManager(dir, file string, logger *slog.Logger) *Manager {
	if file == "" {
		file = DefaultFile
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		dir:    dir,
		file:   file,
		now:    time.Now,
		logger: logger.With("component", "catalog_manager"),
	}
}

// Dir returns the managed data directory.
func (m *Manager) Dir() string {
	return m.dir
}

// ReadCatalog reads the catalog file. A missing file yields a new, empty
// catalog with the default categories.
func (m *Manager) ReadCatalog() (*domain.Catalog, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, m.file))
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.Catalog{
			FlashcardSets: []domain.SetDescriptor{},
			Categories:    slices.Clone(DefaultCategories),
			LastUpdated:   m.now().Format(time.RFC3339),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading existing metadata: %w", err)
	}
	return decodeCatalog(data)
}

// Add validates the document at req.Path, copies it into the data directory
// and inserts or replaces its catalog entry. The returned bool is true when an
// existing entry with the same ID was replaced.
func (m *Manager) Add(ctx context.Context, req AddRequest) (*domain.SetDescriptor, bool, error) {
	if err := validate.Struct(req); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, false, fmt.Errorf("file %s not found: %w", req.Path, err)
	}
	doc, err := loader.ParseDocument(data)
	if err != nil {
		return nil, false, err
	}

	filename := filepath.Base(req.Path)
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}
	baseName := strings.TrimSuffix(filename, ".json")

	descriptor := domain.SetDescriptor{
		ID:          SetID(baseName),
		Filename:    filename,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		CardCount:   len(doc.Flashcards),
		CreatedDate: m.now().Format(time.DateOnly),
	}
	if descriptor.Title == "" {
		descriptor.Title = TitleFromName(baseName)
	}
	if descriptor.Description == "" {
		descriptor.Description = fmt.Sprintf("Flashcard set containing %d cards", descriptor.CardCount)
	}
	if descriptor.Category == "" {
		descriptor.Category = DefaultCategory
	}
	if descriptor.Difficulty == "" {
		descriptor.Difficulty = DefaultDifficulty
	}
	descriptor.Tags = domain.NormalizeTags([]string{descriptor.Category, descriptor.Difficulty})

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, false, fmt.Errorf("failed to create data directory: %w", err)
	}

	dest := filepath.Join(m.dir, filename)
	if !samePath(req.Path, dest) {
		if err := writeFileAtomic(dest, data); err != nil {
			return nil, false, fmt.Errorf("error copying file: %w", err)
		}
	}

	c, err := m.ReadCatalog()
	if err != nil {
		return nil, false, err
	}

	updated := false
	for i := range c.FlashcardSets {
		if c.FlashcardSets[i].ID == descriptor.ID {
			c.FlashcardSets[i] = descriptor
			updated = true
			break
		}
	}
	if !updated {
		c.FlashcardSets = append(c.FlashcardSets, descriptor)
	}
	c.LastUpdated = m.now().Format(time.RFC3339)

	if err := m.writeCatalog(c); err != nil {
		return nil, false, err
	}

	m.logger.InfoContext(ctx, "flashcard set catalogued",
		"set_id", descriptor.ID,
		"filename", descriptor.Filename,
		"card_count", descriptor.CardCount,
		"updated", updated)
	return &descriptor, updated, nil
}

// Discover lists JSON documents in the data directory, at any depth, that
// are not yet in the catalog. Paths are slash-separated and relative to the
// data directory.
func (m *Manager) Discover(ctx context.Context) ([]string, error) {
	c, err := m.ReadCatalog()
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(c.FlashcardSets)+1)
	known[m.file] = struct{}{}
	for _, set := range c.FlashcardSets {
		known[set.Filename] = struct{}{}
	}

	matches, err := doublestar.Glob(os.DirFS(m.dir), "**/*.json", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}

	var found []string
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := known[match]; ok {
			continue
		}
		found = append(found, match)
	}
	slices.Sort(found)
	return found, nil
}

func (m *Manager) writeCatalog(c *domain.Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding metadata: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(m.dir, m.file), append(data, '\n')); err != nil {
		return fmt.Errorf("error saving metadata: %w", err)
	}
	return nil
}

// SetID derives a catalog ID from a file base name.
func SetID(baseName string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(baseName))
}

// TitleFromName derives a display title from a file base name.
func TitleFromName(baseName string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(baseName, "_", " "))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
