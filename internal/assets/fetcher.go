package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"golang.org/x/image/draw"

	// Headshot sources serve a mix of formats; register the usual decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ThumbnailSize is the square edge, in pixels, every stored headshot is
// scaled to.
const ThumbnailSize = 50

// Fetcher downloads a headshot and returns it scaled to thumbnail size.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher fetches headshots over HTTP.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher backed by the given client. A nil client
// falls back to http.DefaultClient.
func NewHTTPFetcher(httpClient *http.Client) *HTTPFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPFetcher{httpClient: httpClient}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build headshot request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch headshot: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode headshot: %w", err)
	}
	return scaleSquare(src, ThumbnailSize), nil
}

// scaleSquare resamples src onto a size x size canvas. Aspect ratio is not
// preserved; headshot sources are near-square already.
func scaleSquare(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
