// Package linkcache keeps resolved short links in a bolt database so that
// each link only needs to be resolved once.
package linkcache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"bitbucket.org/kleinnic74/lsgmap/logging"
	"bitbucket.org/kleinnic74/lsgmap/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/reusee/mmh3"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var linksBucket = []byte("links")

// Resolution is the cached outcome of resolving one short link.
type Resolution struct {
	ShortURL   string    `json:"shortUrl"`
	FinalURL   string    `json:"finalUrl"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

type Stats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Total  int `json:"total"`
}

var (
	hitsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkcache_hits",
		Help: "Number of short links resolved from the cache",
	})
	missesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkcache_misses",
		Help: "Number of short links not found in the cache or expired",
	})
	totalCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkcache_total",
		Help: "Total number of requests to the link cache",
	})
)

type internalStats struct {
	lock sync.Mutex
	Stats
}

func (s *internalStats) hit() {
	totalCounter.Inc()
	hitsCounter.Inc()
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Stats.Total++
	s.Stats.Hits++
}

func (s *internalStats) miss() {
	totalCounter.Inc()
	missesCounter.Inc()
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Stats.Total++
	s.Stats.Misses++
}

// Cache is a resolver.Resolver answering from the bolt database when possible
// and delegating to another resolver otherwise.
type Cache struct {
	db       *bolt.DB
	delegate resolver.Resolver
	ttl      time.Duration
	now      func() time.Time

	stats internalStats
}

// New creates the cache bucket if needed. A ttl of 0 keeps entries forever.
func New(db *bolt.DB, delegate resolver.Resolver, ttl time.Duration) (*Cache, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(linksBucket)
		return err
	}); err != nil {
		return nil, fmt.Errorf("create links bucket: %w", err)
	}
	return &Cache{
		db:       db,
		delegate: delegate,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (c *Cache) Resolve(ctx context.Context, shortURL string) (string, error) {
	log, ctx := logging.FromWithNameAndFields(ctx, "linkcache", zap.String("url", shortURL))
	shortURL = strings.TrimSpace(shortURL)
	key := keyOf(shortURL)

	if r, found, err := c.get(key); err != nil {
		log.Warn("Failed to read link cache", zap.Error(err))
	} else if found && c.fresh(r) {
		c.stats.hit()
		return r.FinalURL, nil
	}
	c.stats.miss()

	final, err := c.delegate.Resolve(ctx, shortURL)
	if err != nil {
		return "", err
	}
	r := Resolution{ShortURL: shortURL, FinalURL: final, ResolvedAt: c.now().UTC()}
	if err := c.put(key, r); err != nil {
		log.Warn("Failed to store resolved link", zap.Error(err))
	}
	return final, nil
}

// Lookup returns the cached resolution of shortURL regardless of its age.
func (c *Cache) Lookup(shortURL string) (Resolution, bool, error) {
	return c.get(keyOf(strings.TrimSpace(shortURL)))
}

// Purge removes all cached resolutions.
func (c *Cache) Purge(ctx context.Context) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(linksBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(linksBucket)
		return err
	})
	if err == nil {
		logging.From(ctx).Info("Link cache purged")
	}
	return err
}

func (c *Cache) Stats() Stats {
	c.stats.lock.Lock()
	defer c.stats.lock.Unlock()
	return c.stats.Stats
}

func (c *Cache) fresh(r Resolution) bool {
	return c.ttl <= 0 || c.now().Sub(r.ResolvedAt) < c.ttl
}

func (c *Cache) get(key []byte) (r Resolution, found bool, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(linksBucket).Get(key)
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &r)
	})
	return
}

func (c *Cache) put(key []byte, r Resolution) error {
	encoded, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(linksBucket).Put(key, encoded)
	})
}

func keyOf(shortURL string) []byte {
	h := mmh3.New128()
	h.Write([]byte(shortURL))
	return []byte(hex.EncodeToString(h.Sum(nil)))
}
