package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/minipm/minipm/pkg/httputil"
	"github.com/minipm/minipm/pkg/manifest"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

const httpTimeout = 30 * time.Second

// NPM is a registry Client backed by an npm-compatible registry.
// Metadata responses are cached in a file cache under an "npm:" namespace;
// archives are fetched fresh every time.
type NPM struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// NewNPM creates an npm registry client. baseURL defaults to
// [DefaultBaseURL] when empty. cache may be nil to disable metadata caching.
func NewNPM(baseURL string, cache *httputil.Cache) *NPM {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache != nil {
		cache = cache.Namespace("npm:")
	}
	return &NPM{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Metadata fetches the packument for pkg and reduces it to the version,
// dependency, and tarball information resolution needs.
func (c *NPM) Metadata(ctx context.Context, pkg string) (*Metadata, error) {
	pkg = strings.TrimSpace(pkg)
	key := "meta:" + pkg

	if c.cache != nil {
		var cached Metadata
		if ok, _ := c.cache.Get(key, &cached); ok {
			return &cached, nil
		}
	}

	var meta *Metadata
	err := httputil.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		meta, fetchErr = c.fetchMetadata(ctx, pkg)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, meta)
	}
	return meta, nil
}

func (c *NPM) fetchMetadata(ctx context.Context, pkg string) (*Metadata, error) {
	// Scoped names (@scope/name) must have their slash escaped in the path.
	body, err := c.get(ctx, c.baseURL+"/"+url.PathEscape(pkg))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", ErrNotFound, pkg)
		}
		return nil, err
	}
	defer body.Close()

	var doc packument
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding packument for %s: %w", pkg, err)
	}

	meta := &Metadata{
		Name:     doc.Name,
		Versions: slices.Sorted(maps.Keys(doc.Versions)),
		Deps:     make(map[string]manifest.Dependencies, len(doc.Versions)),
		Tarballs: make(map[string]string, len(doc.Versions)),
	}
	for v, det := range doc.Versions {
		meta.Deps[v] = det.Dependencies
		meta.Tarballs[v] = det.Dist.Tarball
	}
	return meta, nil
}

// Archive downloads the raw tarball from location. Responses are not
// cached; the install state store already prevents redundant downloads.
func (c *NPM) Archive(ctx context.Context, location string) ([]byte, error) {
	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		body, err := c.get(ctx, location)
		if err != nil {
			return err
		}
		defer body.Close()
		data, err = io.ReadAll(body)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *NPM) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// packument is the npm registry's full package document, reduced to the
// fields minipm consumes.
type packument struct {
	Name     string                      `json:"name"`
	Versions map[string]packumentVersion `json:"versions"`
}

type packumentVersion struct {
	Dependencies manifest.Dependencies `json:"dependencies"`
	Dist         dist                  `json:"dist"`
}

type dist struct {
	Tarball string `json:"tarball"`
}
