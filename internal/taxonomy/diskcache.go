package taxonomy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultResponseTTL is how long a raw service response stays fresh on
// disk. The taxonomy changes rarely; a month of staleness is acceptable.
const DefaultResponseTTL = 30 * 24 * time.Hour

// ResponseCache memoizes raw taxonomy service responses on disk, one JSON
// file per request URL, with a freshness TTL. Stale entries are refetched
// and overwritten; nothing is deleted in place.
type ResponseCache struct {
	dir string
	ttl time.Duration
	mu  sync.Mutex
}

type cachedResponse struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`
	Body      []byte    `json:"body"`
}

// NewResponseCache creates a response cache rooted at dir, creating the
// directory if needed. A non-positive ttl falls back to DefaultResponseTTL.
func NewResponseCache(dir string, ttl time.Duration) (*ResponseCache, error) {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResponseCache{dir: dir, ttl: ttl}, nil
}

// Get returns the cached body for a URL if present and fresh.
func (c *ResponseCache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return nil, false
	}

	var entry cachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		// Unreadable entry; treat as a miss and let Put overwrite it.
		return nil, false
	}
	if time.Since(entry.FetchedAt) > c.ttl {
		return nil, false
	}
	return entry.Body, true
}

// Put stores a response body for a URL. Write failures are swallowed: the
// cache is an optimization, never a correctness dependency.
func (c *ResponseCache) Put(url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cachedResponse{URL: url, FetchedAt: time.Now().UTC(), Body: body}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path(url), data, 0o644)
}

func (c *ResponseCache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
