package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// monthTTL limita a vida das entradas mesmo sem invalidação explícita.
const monthTTL = 10 * time.Minute

// AvailabilityCache guarda o mapa dia→disponível de um mês no Redis.
// Todo erro aqui é cosmético: loga e segue, o chamador recalcula.
type AvailabilityCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

// New devolve nil quando o Redis não está configurado ou não responde;
// os use cases tratam cache nil como "sem cache".
func New(addr string, log zerolog.Logger) *AvailabilityCache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, availability cache disabled")
		return nil
	}

	return &AvailabilityCache{rdb: rdb, log: log}
}

func (c *AvailabilityCache) GetMonth(ctx context.Context, key string) (map[string]bool, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var days map[string]bool
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *AvailabilityCache) SetMonth(ctx context.Context, key string, days map[string]bool) {
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, monthTTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("availability cache set failed")
	}
}

// Version é o contador embutido nas chaves de mês; Bump invalida tudo
// do barbeiro de uma vez, sem varrer chaves.
func (c *AvailabilityCache) Version(ctx context.Context, barberID uint) int64 {
	v, err := c.rdb.Get(ctx, versionKey(barberID)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *AvailabilityCache) Bump(ctx context.Context, barberID uint) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey(barberID)).Err(); err != nil {
		c.log.Debug().Err(err).Uint("barber_id", barberID).Msg("availability version bump failed")
	}
}

func versionKey(barberID uint) string {
	return fmt.Sprintf("avail:ver:%d", barberID)
}
