package usecase

import (
	"time"

	"github.com/bluele/gcache"
)

// TokenDenylist remembers access token ids revoked by logout until they expire on their own.
type TokenDenylist interface {
	Revoke(tokenID string, until time.Time)
	IsRevoked(tokenID string) bool
}

// CacheDenylist is a bounded LRU. Once more than size tokens are denylisted at
// once, the least recently used entry is dropped and that token validates again
// until it expires. OnPrematureEviction reports such drops.
type CacheDenylist struct {
	cache   gcache.Cache
	clock   gcache.Clock
	onEvict func(tokenID string)
}

func NewCacheDenylist(size int, clock gcache.Clock) *CacheDenylist {
	if clock == nil {
		clock = gcache.NewRealClock()
	}
	d := &CacheDenylist{clock: clock}
	d.cache = gcache.New(size).LRU().Clock(clock).EvictedFunc(d.evicted).Build()
	return d
}

// OnPrematureEviction registers fn for entries dropped before their expiry.
// fn runs under the cache lock and must not call back into the denylist.
func (d *CacheDenylist) OnPrematureEviction(fn func(tokenID string)) *CacheDenylist {
	d.onEvict = fn
	return d
}

func (d *CacheDenylist) evicted(key, value any) {
	until, ok := value.(time.Time)
	if !ok || !d.clock.Now().Before(until) || d.onEvict == nil {
		return
	}
	if id, ok := key.(string); ok {
		d.onEvict(id)
	}
}

func (d *CacheDenylist) Revoke(tokenID string, until time.Time) {
	ttl := until.Sub(d.clock.Now())
	if tokenID == "" || ttl <= 0 {
		return
	}
	_ = d.cache.SetWithExpire(tokenID, until, ttl)
}

func (d *CacheDenylist) IsRevoked(tokenID string) bool {
	if tokenID == "" {
		return false
	}
	_, err := d.cache.Get(tokenID)
	return err == nil
}
