package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/logger"
)

// ResolvedImage is one successfully fetched and decoded image reference.
type ResolvedImage struct {
	URL    string
	Data   []byte
	Kind   string // "JPG" or "PNG"
	Width  int    // pixels
	Height int    // pixels
}

// ResolveError is a failed image or signature fetch, isolated to the affected
// block during rendering.
type ResolveError struct {
	URL string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve image %s: %v", e.URL, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// ImageResolver fetches external image references over HTTP and decodes their
// pixel dimensions. Fetches within one ResolveAll call run with bounded
// concurrency so one slow image does not serialize the rest.
type ImageResolver struct {
	client  *http.Client
	workers int
	maxSize int64
}

func NewImageResolver() *ImageResolver {
	return &ImageResolver{
		client:  &http.Client{Timeout: 30 * time.Second},
		workers: constants.ExportWorkers,
		maxSize: 20 << 20,
	}
}

// WithHTTPClient replaces the HTTP client used for fetches.
func (r *ImageResolver) WithHTTPClient(client *http.Client) *ImageResolver {
	r.client = client
	return r
}

// Resolve fetches a single reference and decodes its dimensions.
func (r *ImageResolver) Resolve(ctx context.Context, url string) (ResolvedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ResolvedImage{}, &ResolveError{URL: url, Err: err}
	}

	res, err := r.client.Do(req)
	if err != nil {
		return ResolvedImage{}, &ResolveError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return ResolvedImage{}, &ResolveError{URL: url, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, r.maxSize))
	if err != nil {
		return ResolvedImage{}, &ResolveError{URL: url, Err: err}
	}

	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ResolvedImage{}, &ResolveError{URL: url, Err: fmt.Errorf("undecodable image: %w", err)}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ResolvedImage{}, &ResolveError{URL: url, Err: fmt.Errorf("image has no dimensions")}
	}

	var fpdfKind string
	switch kind {
	case "jpeg":
		fpdfKind = "JPG"
	case "png":
		fpdfKind = "PNG"
	default:
		return ResolvedImage{}, &ResolveError{URL: url, Err: fmt.Errorf("unsupported image format %q", kind)}
	}

	return ResolvedImage{
		URL:    url,
		Data:   data,
		Kind:   fpdfKind,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// ResolveAll fetches every reference with at most `workers` fetches in
// flight, returning per-URL results keyed by URL. Failures are entries, not
// an aborted call.
func (r *ImageResolver) ResolveAll(ctx context.Context, urls []string) map[string]ResolvedImage {
	resolved := make(map[string]ResolvedImage, len(urls))
	if len(urls) == 0 {
		return resolved
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)

	for _, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			img, err := r.Resolve(ctx, url)
			if err != nil {
				logger.Warn("Image resolution failed", "url", url, "error", err)
				return
			}
			mu.Lock()
			resolved[url] = img
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	return resolved
}

// DisplaySize scales the image to the fixed display width, preserving the
// source aspect ratio. Returns millimeters.
func (img ResolvedImage) DisplaySize() (w, h float64) {
	w = constants.ImageWidthMM
	h = float64(img.Height) * w / float64(img.Width)
	return w, h
}
