// Package cache - in-process TTL кеш для повільних provider даних
// (organic rates, Midas APYs, market overview). Дані живуть тільки
// в пам'яті процесу - жодної персистенції.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Ключі для спільних кешованих значень
const (
	KeyMarketOverview = "market_overview"
	KeyMidasAPYs      = "midas_apys"
	KeyOrganicRates   = "organic_rates"
)

// Cache - обгортка над go-cache з фіксованим TTL
type Cache struct {
	store *gocache.Cache
}

// New створює новий Cache з вказаним TTL
func New(ttl time.Duration) *Cache {
	return &Cache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get повертає значення за ключем
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set зберігає значення з default TTL
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL зберігає значення з власним TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete видаляє значення за ключем
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}
