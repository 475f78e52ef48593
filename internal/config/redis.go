package config

// Redis backs the response cache and the rate limiter.  Both degrade to
// pass-through when Redis is unreachable, so a failed connection at startup
// yields a nil client rather than an error.

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings read from REDIS_* variables.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// LoadRedisConfig reads REDIS_HOST/REDIS_PORT (or REDIS_ADDR),
// REDIS_PASSWORD, REDIS_DB and REDIS_TLS.
func LoadRedisConfig() RedisConfig {
	return parseRedisConfig(os.LookupEnv)
}

func parseRedisConfig(lookup func(string) (string, bool)) RedisConfig {
	e := env{lookup: lookup}
	addr := e.str("REDIS_ADDR", "localhost:6379")
	if host, port := e.str("REDIS_HOST", ""), e.str("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	return RedisConfig{
		Addr:     addr,
		Password: e.str("REDIS_PASSWORD", ""),
		DB:       e.num("REDIS_DB", 0),
		TLS:      e.flag("REDIS_TLS", false),
	}
}

// NewRedisClient connects and pings Redis.  It returns nil when the server
// cannot be reached within two seconds.
func NewRedisClient(rc RedisConfig) *redis.Client {
	var tlsConf *tls.Config
	if rc.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      rc.Addr,
		Password:  rc.Password,
		DB:        rc.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
