package cache

import (
	"errors"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// PageCache is a small on-disk KV wrapper (Badger) for raw search pages.
// It lets the browser serve the last good page for a query when the backend
// is unreachable. Entries expire through Badger's native TTL.
type PageCache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenPageCache opens (or creates) the badger store at path.
func OpenPageCache(path string, ttl time.Duration) (*PageCache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("pagecache: path is required")
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PageCache{db: db, ttl: ttl}, nil
}

// Close closes the underlying store.
func (c *PageCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func pageKey(queryKey string, page int) []byte {
	return []byte(fmt.Sprintf("page:%s:%d", queryKey, page))
}

// Put stores the raw response body for one page of one query key.
func (c *PageCache) Put(queryKey string, page int, body []byte) error {
	if c == nil || c.db == nil {
		return errors.New("pagecache: not opened")
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(pageKey(queryKey, page), body).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
}

// Get returns the cached body for one page, if present and not expired.
func (c *PageCache) Get(queryKey string, page int) ([]byte, bool, error) {
	if c == nil || c.db == nil {
		return nil, false, errors.New("pagecache: not opened")
	}
	var out []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pageKey(queryKey, page))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}
