package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"payrouter/internal/domain"
)

const (
	redisSelectedPrefix = "routing:selected:"
	redisUnroutedKey    = "routing:unrouted"
)

// RedisRecorder keeps routing tallies as sorted sets scored by decision
// time, one set per winning provider plus one for unrouted decisions.
type RedisRecorder struct {
	db *redis.Client
}

func NewRedisRecorder(addr string) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisRecorder{db: client}, nil
}

func (r *RedisRecorder) RecordDecision(ctx context.Context, decision domain.RouteDecision) error {
	key := redisUnroutedKey
	if decision.Routed() {
		key = redisSelectedPrefix + decision.ProviderID
	}

	score := float64(time.Now().UTC().UnixNano())
	member := decision.PaymentID + "|" + decision.DecisionID
	return r.db.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RedisRecorder) Summary(ctx context.Context, from, to time.Time, providerIDs []string) (domain.DecisionSummary, error) {
	min := strconv.FormatInt(from.UnixNano(), 10)
	max := strconv.FormatInt(to.UnixNano(), 10)

	summary := domain.DecisionSummary{Providers: make(map[string]int64, len(providerIDs))}
	for _, id := range providerIDs {
		count, err := r.db.ZCount(ctx, redisSelectedPrefix+id, min, max).Result()
		if err != nil {
			return domain.DecisionSummary{}, err
		}
		summary.Providers[id] = count
	}

	unrouted, err := r.db.ZCount(ctx, redisUnroutedKey, min, max).Result()
	if err != nil {
		return domain.DecisionSummary{}, err
	}
	summary.Unrouted = unrouted
	return summary, nil
}

// Purge drops every routing tally key. Keys are collected with SCAN so the
// sweep never blocks the server on a large keyspace.
func (r *RedisRecorder) Purge(ctx context.Context) error {
	keys := []string{redisUnroutedKey}
	iter := r.db.Scan(ctx, 0, redisSelectedPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return r.db.Del(ctx, keys...).Err()
}

func (r *RedisRecorder) Close() error {
	return r.db.Close()
}
