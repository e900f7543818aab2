// Package limiter wraps juju/ratelimit token buckets keyed by request attributes.
// Package limiter 基于 juju/ratelimit 的令牌桶限流
package limiter

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is what the rate limiting middleware needs from a limiter
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string
	FillInterval time.Duration
	Capacity     int64
	Quantum      int64
}

type base struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
}

func (b *base) GetBucket(key string) (*ratelimit.Bucket, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bucket, ok := b.buckets[key]
	return bucket, ok
}

func (b *base) add(rules []BucketRule) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rule := range rules {
		if _, ok := b.buckets[rule.Key]; ok {
			continue
		}
		quantum := rule.Quantum
		if quantum <= 0 {
			quantum = 1
		}
		b.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, quantum)
	}
}

// MethodLimiter limits per route path, ignoring the query string
// MethodLimiter 按路由路径限流
type MethodLimiter struct {
	*base
}

func NewMethodLimiter() Face {
	return MethodLimiter{base: &base{buckets: make(map[string]*ratelimit.Bucket)}}
}

func (l MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index > 0 {
		return uri[:index]
	}
	return uri
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.add(rules)
	return l
}

// IPLimiter applies one shared rule set per client ip
// IPLimiter 按客户端 IP 限流
type IPLimiter struct {
	*base
	rule BucketRule
}

// NewIPLimiter creates buckets lazily for each client ip using rule
func NewIPLimiter(rule BucketRule) Face {
	return &IPLimiter{base: &base{buckets: make(map[string]*ratelimit.Bucket)}, rule: rule}
}

func (l *IPLimiter) Key(c *gin.Context) string {
	key := c.ClientIP()
	if _, ok := l.base.GetBucket(key); !ok {
		r := l.rule
		r.Key = key
		l.add([]BucketRule{r})
	}
	return key
}

func (l *IPLimiter) AddBuckets(rules ...BucketRule) Face {
	l.add(rules)
	return l
}
