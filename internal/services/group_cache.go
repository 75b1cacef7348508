package services

import (
	"sort"
	"strings"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
)

// GroupSignature identifies a fetch group: subscribers with the same
// signature share one round trip to the sources per run.
type GroupSignature string

func SignatureFor(keywords []string, location string) GroupSignature {

	lowered := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			lowered = append(lowered, keyword)
		}
	}
	sort.Strings(lowered)

	return GroupSignature(strings.Join(lowered, ",") + "|" + strings.ToLower(strings.TrimSpace(location)))
}

// GroupCache keeps fetch results per group signature. The cache runs without
// a janitor: expired entries linger until the same signature is written
// again, trading memory for not paying a sweep on the hot path.
type GroupCache struct {
	cache *gocache.Cache
}

func NewGroupCache(ttl time.Duration) *GroupCache {
	return &GroupCache{cache: gocache.New(ttl, 0)}
}

func (c *GroupCache) Get(signature GroupSignature) ([]models.Vacancy, bool) {
	if value, found := c.cache.Get(string(signature)); found {
		metrics.GroupCacheHits.Inc()
		return value.([]models.Vacancy), true
	}
	metrics.GroupCacheMisses.Inc()
	return nil, false
}

func (c *GroupCache) Set(signature GroupSignature, vacancies []models.Vacancy) {
	c.cache.Set(string(signature), vacancies, gocache.DefaultExpiration)
}

func (c *GroupCache) Invalidate(signature GroupSignature) {
	c.cache.Delete(string(signature))
}
