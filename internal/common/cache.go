package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Delete(key string) {
	c.Cache.Delete(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

// Cache keys for the public counter endpoints. These are the only cached
// reads; every write that can change a counter deletes the matching key.
func CacheKeyLikeCount(blogID int) string {
	return "like_count:" + strconv.Itoa(blogID)
}

func CacheKeySaveCount(blogID int) string {
	return "save_count:" + strconv.Itoa(blogID)
}

func CacheKeyFollowerCount(userID int) string {
	return "follower_count:" + strconv.Itoa(userID)
}
