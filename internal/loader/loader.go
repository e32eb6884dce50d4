package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Target is the set of session transitions a load drives. *session.Store
// satisfies it.
type Target interface {
	LoadCards(ctx context.Context, cards []domain.Flashcard) error
	SetMetadata(ctx context.Context, metadata *domain.SetMetadata) error
	SetActiveSet(ctx context.Context, set *domain.SetDescriptor) error
	SetLoading(ctx context.Context, loading bool) error
	SetError(ctx context.Context, message *string) error
}

// DescriptorLookup finds the catalog entry for a set file.
type DescriptorLookup interface {
	FindByFilename(ctx context.Context, filename string) (*domain.SetDescriptor, error)
}

// Loader fetches flashcard sets and applies them to a session.
type Loader struct {
	source Source
	lookup DescriptorLookup
	logger *slog.Logger
}

// New creates a Loader. lookup may be nil, in which case loaded sets are not
// associated with a catalog entry.
func New(source Source, lookup DescriptorLookup, logger *slog.Logger) *Loader {
	if source == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("source cannot be nil for Loader")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		source: source,
		lookup: lookup,
		logger: logger.With("component", "set_loader"),
	}
}

// LoadSet fetches the named set and applies it to target. The returned error
// describes a failed load; the same failure is recorded in the session's
// error field, which is where users see it.
func (l *Loader) LoadSet(ctx context.Context, target Target, filename string) error {
	if filename == "" {
		return ErrFilenameRequired
	}

	return l.run(ctx, target, "Failed to load "+filename, func() (*domain.SetDocument, *domain.SetDescriptor, error) {
		data, err := l.source.Fetch(ctx, filename)
		if err != nil {
			return nil, nil, err
		}
		doc, err := ParseDocument(data)
		if err != nil {
			return nil, nil, err
		}
		return doc, l.descriptorFor(ctx, filename), nil
	}, slog.String("filename", filename))
}

// LoadUpload applies an uploaded document to target. Files without a .json
// extension are rejected before the session is touched.
func (l *Loader) LoadUpload(ctx context.Context, target Target, name string, data []byte) error {
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		l.logger.DebugContext(ctx, "rejected upload with unsupported file type", "name", name)
		return ErrInvalidFileType
	}

	return l.run(ctx, target, "Failed to load JSON file", func() (*domain.SetDocument, *domain.SetDescriptor, error) {
		doc, err := ParseDocument(data)
		return doc, nil, err
	}, slog.String("upload", name))
}

// run performs the load sequence: mark loading and clear the previous error,
// obtain the document, then either apply it or record the failure, and
// finally mark loading finished.
func (l *Loader) run(
	ctx context.Context,
	target Target,
	failurePrefix string,
	obtain func() (*domain.SetDocument, *domain.SetDescriptor, error),
	attrs ...any,
) (err error) {
	log := l.logger.With(attrs...)

	if err := target.SetLoading(ctx, true); err != nil {
		return fmt.Errorf("failed to start load: %w", err)
	}
	defer func() {
		if finishErr := target.SetLoading(ctx, false); finishErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to finish load: %w", finishErr))
		}
	}()

	if err := target.SetError(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear previous error: %w", err)
	}

	doc, descriptor, err := obtain()
	if err != nil {
		msg := fmt.Sprintf("%s: %s", failurePrefix, err.Error())
		log.WarnContext(ctx, "flashcard set load failed",
			"error_kind", Kind(err),
			"error", err)
		if setErr := target.SetError(ctx, &msg); setErr != nil {
			return errors.Join(err, setErr)
		}
		return err
	}

	if err := target.LoadCards(ctx, doc.Flashcards); err != nil {
		return fmt.Errorf("failed to apply flashcards: %w", err)
	}

	metadata := doc.Metadata
	if metadata == nil {
		metadata = &domain.SetMetadata{}
	}
	if err := target.SetMetadata(ctx, metadata); err != nil {
		return fmt.Errorf("failed to apply metadata: %w", err)
	}

	if descriptor != nil {
		if err := target.SetActiveSet(ctx, descriptor); err != nil {
			return fmt.Errorf("failed to apply active set: %w", err)
		}
	}

	log.InfoContext(ctx, "flashcard set loaded",
		"card_count", len(doc.Flashcards),
		"catalogued", descriptor != nil)
	return nil
}

// descriptorFor looks up the catalog entry for filename. A missing or
// unreadable catalog does not fail the load.
func (l *Loader) descriptorFor(ctx context.Context, filename string) *domain.SetDescriptor {
	if l.lookup == nil {
		return nil
	}
	d, err := l.lookup.FindByFilename(ctx, filename)
	if err != nil {
		l.logger.DebugContext(ctx, "no catalog entry for loaded set",
			"filename", filename,
			"error", err)
		return nil
	}
	return d
}
