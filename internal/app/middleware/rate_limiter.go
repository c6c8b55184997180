package middleware

import (
	"gated-community-http-service/internal/error/code"
	"gated-community-http-service/internal/error/response"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenBucket 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64 // 每秒填充的令牌数
	capacity   int     // 桶的容量
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

// NewTokenBucket 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now
	tb.lastSeen = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

// idleSince 返回该桶是否在指定时间前就没有请求
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastSeen.Before(cutoff)
}

// limiterRegistry 按键维护令牌桶，闲置的桶定期清理
type limiterRegistry struct {
	mu      sync.RWMutex
	buckets map[string]*TokenBucket
}

func newLimiterRegistry() *limiterRegistry {
	return &limiterRegistry{buckets: make(map[string]*TokenBucket)}
}

func (r *limiterRegistry) get(key string, rate float64, burst int) *TokenBucket {
	r.mu.RLock()
	bucket, exists := r.buckets[key]
	r.mu.RUnlock()
	if exists {
		return bucket
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if bucket, exists = r.buckets[key]; exists {
		return bucket
	}
	bucket = NewTokenBucket(rate, burst)
	r.buckets[key] = bucket
	return bucket
}

func (r *limiterRegistry) cleanIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, bucket := range r.buckets {
		if bucket.idleSince(cutoff) {
			delete(r.buckets, key)
		}
	}
}

var limiters = newLimiterRegistry()

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate      float64                   // 每秒允许的请求数
	Burst     int                       // 允许的突发请求数
	LimitType string                    // 限流类型: "ip", "path", "combined"
	KeyFunc   func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:      1,
	Burst:     5,
	LimitType: "ip",
}

// RateLimiter 创建限流中间件
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}

	return func(c *gin.Context) {
		// 根据限流类型生成桶的键
		var key string
		switch cfg.LimitType {
		case "ip":
			key = "ip:" + c.ClientIP()
		case "path":
			key = "path:" + c.Request.URL.Path
		case "combined":
			key = "ip-path:" + c.ClientIP() + ":" + c.Request.URL.Path
		default:
			if cfg.KeyFunc != nil {
				key = "custom:" + cfg.KeyFunc(c)
			} else {
				key = "ip:" + c.ClientIP()
			}
		}

		if !limiters.get(key, cfg.Rate, cfg.Burst).Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "ip",
	})
}

// PathRateLimiter 按路径限流
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "path",
	})
}

// CombinedRateLimiter 按IP和路径组合限流
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "combined",
	})
}

// CustomRateLimiter 自定义键限流
func CustomRateLimiter(rate float64, burst int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "custom",
		KeyFunc:   keyFunc,
	})
}

// 定期清理闲置超过1小时的限流器
func init() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			limiters.cleanIdle(1 * time.Hour)
		}
	}()
}
