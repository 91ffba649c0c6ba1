package assets

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Cache resolves a driver's headshot URL to a local thumbnail path. Results
// are memoized by driver identity: once an id has a stored thumbnail, later
// calls return it without looking at the URL again, even if the URL changed.
type Cache struct {
	store   Store
	fetcher Fetcher
}

func NewCache(store Store, fetcher Fetcher) *Cache {
	return &Cache{store: store, fetcher: fetcher}
}

// Resolve returns the local path for the driver's thumbnail and whether one
// is available. A missing URL, a failed download, or a failed save all
// degrade to (_, false); the report renders without that image.
func (c *Cache) Resolve(ctx context.Context, id, url string) (string, bool) {
	if url == "" {
		return "", false
	}

	if path, ok := c.store.Locate(id); ok {
		return path, true
	}

	img, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("driver", id).Str("url", url).Msg("Headshot fetch failed, rendering without image")
		return "", false
	}

	path, err := c.store.Save(id, img)
	if err != nil {
		log.Warn().Err(err).Str("driver", id).Msg("Headshot save failed, rendering without image")
		return "", false
	}
	return path, true
}
