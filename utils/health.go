package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the snapshot served by the /health endpoint. Redis is
// keyed by concern (draft, auth, pricing) so a degraded cache points at
// the feature it affects.
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	healthMu      sync.RWMutex
	currentHealth HealthStatus
)

// GetHealthStatus returns the latest snapshot. Before the first check
// completes it reports everything down with a zero CheckedAt.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(status HealthStatus) {
	healthMu.Lock()
	currentHealth = status
	healthMu.Unlock()
}

// probeHealth pings every dependency once. mongoPing is injected so the
// probe can run without a live cluster.
func probeHealth(ctx context.Context, clients map[string]*redis.Client, mongoPing func(context.Context) error) HealthStatus {
	redisHealth := make(map[string]bool, len(clients))
	for name, client := range clients {
		redisHealth[name] = client.Ping(ctx).Err() == nil
	}
	return HealthStatus{
		Mongo:     mongoPing(ctx) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor re-probes mongo and the named redis clients on the
// configured interval, keeping the snapshot fresh for /health.
func StartHealthMonitor(clients map[string]*redis.Client, mongoClient *mongo.Client, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	mongoPing := func(ctx context.Context) error {
		return mongoClient.Ping(ctx, nil)
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		ctx := context.Background()
		setHealthStatus(probeHealth(ctx, clients, mongoPing))
		for range ticker.C {
			setHealthStatus(probeHealth(ctx, clients, mongoPing))
		}
	}()
}
