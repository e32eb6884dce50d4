package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxDocumentSize bounds how many bytes a Source reads for one document.
const MaxDocumentSize = 10 << 20

const msgHTMLInsteadOfJSON = "Received HTML instead of JSON. The flashcard-data files may not be accessible from the current server."

// Source retrieves raw flashcard documents by name.
type Source interface {
	// Fetch returns the bytes of the named document. Failures to retrieve it
	// are reported as *TransportError.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// cleanName rejects names that are empty or would escape the source root.
func cleanName(name string) (string, error) {
	if name == "" {
		return "", NewTransportError(ErrFilenameRequired, "No file name given")
	}
	cleaned := path.Clean("/" + filepath.ToSlash(name))[1:]
	if cleaned == "" || cleaned != filepath.ToSlash(name) {
		return "", NewTransportError(nil, "Invalid file name: %s", name)
	}
	return cleaned, nil
}

// readDocument reads at most MaxDocumentSize bytes. A larger document is a
// transport failure rather than a truncated body.
func readDocument(r io.Reader, name string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, NewTransportError(err, "Could not read %s", name)
	}
	if len(body) > MaxDocumentSize {
		return nil, NewTransportError(nil, "Document %s exceeds %d bytes", name, MaxDocumentSize)
	}
	return body, nil
}

// checkJSON rejects bodies that are not JSON documents. contentType is the
// declared media type, or empty when the source has none.
func checkJSON(contentType string, body []byte) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "application/json" {
		return nil
	}
	if bytes.Contains(body, []byte("<!DOCTYPE")) {
		return NewTransportError(nil, msgHTMLInsteadOfJSON)
	}
	return NewTransportError(nil, "Expected JSON but received: %s", contentType)
}

// DirSource reads documents from a directory on the local filesystem.
type DirSource struct {
	root string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

// Root returns the directory the source reads from.
func (s *DirSource) Root() string {
	return s.root
}

// Fetch reads the named file beneath the root. Only files with a .json
// extension are served.
func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTransportError(err, "Request cancelled: %s", name)
	}

	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(cleaned)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewTransportError(err, "File not found: %s", name)
		}
		return nil, NewTransportError(err, "Could not open %s", name)
	}
	defer f.Close()

	body, err := readDocument(f, name)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(cleaned))
	if strings.EqualFold(filepath.Ext(cleaned), ".json") {
		contentType = "application/json"
	}
	if err := checkJSON(contentType, body); err != nil {
		return nil, err
	}
	return body, nil
}

// HTTPSource fetches documents relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client selects one with a
// 30 second timeout.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{base: base, client: client}, nil
}

// Fetch GETs the named document.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	target := s.base.JoinPath(cleaned)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, NewTransportError(err, "Could not build request for %s", name)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NewTransportError(err, "Could not reach %s", target.Redacted())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewTransportError(nil, "HTTP error! status: %d", resp.StatusCode)
	}

	body, err := readDocument(resp.Body, name)
	if err != nil {
		return nil, err
	}

	if err := checkJSON(resp.Header.Get("Content-Type"), body); err != nil {
		return nil, err
	}
	return body, nil
}
