// Package pathcomp provides filesystem-path tab completion for hosts that
// install a custom completion callback. Directory listings are cached with a
// TTL so repeated completion in the same directory does not hit the
// filesystem every keystroke.
package pathcomp

import (
	"os"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultTTL is the listing cache lifetime when the caller passes 0.
const DefaultTTL = 2 * time.Second

// DirCache is a TTL cache of directory listings keyed by path. Directory
// entries carry a trailing slash so completion can descend into them.
type DirCache struct {
	cache *ttlcache.Cache[string, []string]
}

// NewDirCache creates a listing cache with TTL-based expiration.
func NewDirCache(ttl time.Duration) *DirCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := ttlcache.New[string, []string](
		ttlcache.WithTTL[string, []string](ttl),
		ttlcache.WithDisableTouchOnHit[string, []string](),
	)
	go c.Start()
	return &DirCache{cache: c}
}

// Close stops the cache expiration loop.
func (dc *DirCache) Close() {
	dc.cache.Stop()
}

// Listing returns the entry names of dir, reading and caching on miss.
// Unreadable directories yield an empty listing.
func (dc *DirCache) Listing(dir string) []string {
	if item := dc.cache.Get(dir); item != nil {
		return item.Value()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		dc.cache.Set(dir, nil, ttlcache.DefaultTTL)
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	dc.cache.Set(dir, names, ttlcache.DefaultTTL)
	return names
}
