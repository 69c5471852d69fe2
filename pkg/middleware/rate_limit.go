package middleware

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	// Period defaults to one second, making RequestsPerPeriod an RPS cap.
	Period time.Duration
	Store  limiter.Store
}

// RateLimit caps request throughput per client IP. Tracking endpoints face the
// open internet, so a global cap is the floor, not the ceiling, of abuse
// handling.
func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	store := config.Store
	if store == nil {
		store = memory.NewStore()
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})
	return mhttp.NewMiddleware(instance).Handler
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// NewRedisStore lets multiple instances share one counter; addr is a plain
// host:port, matching the cache configuration.
func NewRedisStore(addr string) (limiter.Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "pixelport:ratelimit",
	})
}
