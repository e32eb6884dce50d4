package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/loader"
)

// DefaultFile is the catalog document name inside a data directory.
const DefaultFile = "sets-metadata.json"

// DefaultCategories seeds a newly created catalog.
var DefaultCategories = []string{
	"Medical", "Science", "History", "Language",
	"Mathematics", "Technology", "Business", "Other",
}

// Catalog errors
var (
	// ErrUnavailable is returned when the catalog document cannot be fetched.
	ErrUnavailable = errors.New("could not load flashcard sets metadata")

	// ErrInvalidCatalog is returned when the catalog document has the wrong shape.
	ErrInvalidCatalog = errors.New("invalid flashcard sets metadata")
)

// decodeCatalog parses a catalog document, requiring a flashcard_sets array.
func decodeCatalog(data []byte) (*domain.Catalog, error) {
	var probe struct {
		FlashcardSets json.RawMessage `json:"flashcard_sets"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(probe.FlashcardSets) == 0 || probe.FlashcardSets[0] != '[' {
		return nil, fmt.Errorf("%w: missing flashcard_sets array", ErrInvalidCatalog)
	}

	var c domain.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

// Service reads the catalog through a Source and caches it until
// Invalidate is called.
type Service struct {
	source loader.Source
	file   string
	logger *slog.Logger

	mu     sync.RWMutex
	cached *domain.Catalog
	// gen counts invalidations; a fetch started before one is not cached.
	gen uint64
}

// NewService creates a Service. An empty file selects DefaultFile.
func NewService(source loader.Source, file string, logger *slog.Logger) *Service {
	if source == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("source cannot be nil for catalog Service")
	}
	if file == "" {
		file = DefaultFile
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		source: source,
		file:   file,
		logger: logger.With("component", "catalog_service"),
	}
}

// Load returns the catalog, fetching it if no cached copy exists.
func (s *Service) Load(ctx context.Context) (*domain.Catalog, error) {
	s.mu.RLock()
	cached, gen := s.cached, s.gen
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	data, err := s.source.Fetch(ctx, s.file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	c, err := decodeCatalog(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cached = c
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "catalog loaded", "set_count", len(c.FlashcardSets))
	return c, nil
}

// Invalidate drops the cached catalog so the next Load refetches it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.gen++
	s.mu.Unlock()
	s.logger.Debug("catalog cache invalidated")
}

// Available returns the catalog entries whose set document can actually be
// fetched, in catalog order.
func (s *Service) Available(ctx context.Context) ([]domain.SetDescriptor, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	ok := probeAvailable(ctx, s.source, c.FlashcardSets, s.logger)
	available := make([]domain.SetDescriptor, 0, len(c.FlashcardSets))
	for i, set := range c.FlashcardSets {
		if ok[i] {
			available = append(available, set)
		}
	}
	return available, nil
}

// Categories returns the catalog's category list, falling back to
// DefaultCategories when the catalog declares none.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(c.Categories) == 0 {
		return DefaultCategories, nil
	}
	return c.Categories, nil
}

// FindByFilename returns the catalog entry for filename.
func (s *Service) FindByFilename(ctx context.Context, filename string) (*domain.SetDescriptor, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.FindByFilename(filename)
}

// FindByID returns the catalog entry with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*domain.SetDescriptor, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.FindByID(id)
}
