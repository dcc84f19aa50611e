package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DependencyUp       = "up"
	DependencyDown     = "down"
	DependencyDisabled = "disabled"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     string    `json:"mongo"`
	Redis     string    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest dependency snapshot. Nil clients are reported as disabled.
type HealthMonitor struct {
	redis *redis.Client
	mongo *mongo.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) *HealthMonitor {
	return &HealthMonitor{redis: redisClient, mongo: mongoClient}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check pings every configured dependency once and stores the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{Mongo: DependencyDisabled, Redis: DependencyDisabled, CheckedAt: time.Now().UTC()}
	if h.redis != nil {
		status.Redis = upDown(h.redis.Ping(ctx).Err())
	}
	if h.mongo != nil {
		status.Mongo = upDown(h.mongo.Ping(ctx, nil))
	}

	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is done.
func (h *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	h.Check(ctx)
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}

// Healthy is false when any enabled dependency is down.
func (s HealthStatus) Healthy() bool {
	return s.Mongo != DependencyDown && s.Redis != DependencyDown
}

func upDown(err error) string {
	if err != nil {
		return DependencyDown
	}
	return DependencyUp
}
