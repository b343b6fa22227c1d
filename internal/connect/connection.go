package connect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventdesk/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const attemptTimeout = 10 * time.Second

// Backoff controls how MongoDBConnect retries a failed connect or ping.
type Backoff struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultBackoff(attempts int) Backoff {
	return Backoff{
		MaxAttempts:  attempts,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
	}
}

// next returns the delay that follows d, capped at MaxDelay.
func (b Backoff) next(d time.Duration) time.Duration {
	n := float64(d) * b.Multiplier
	if n > float64(b.MaxDelay) || n <= 0 {
		return b.MaxDelay
	}
	return time.Duration(n)
}

// Retry runs fn until it succeeds, attempts run out or ctx is done.
func Retry(ctx context.Context, b Backoff, logger *slog.Logger, fn func(context.Context) error) error {
	if b.MaxAttempts <= 0 {
		b.MaxAttempts = 1
	}
	if b.MaxDelay < b.InitialDelay {
		b.MaxDelay = b.InitialDelay
	}

	var lastErr error
	delay := b.InitialDelay
	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		if attempt == b.MaxAttempts {
			break
		}
		logger.Warn("MongoDB not reachable yet, retrying",
			"attempt", attempt,
			"max_attempts", b.MaxAttempts,
			"delay", delay,
			"error", lastErr,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled after attempt %d: %w", attempt, ctx.Err())
		case <-timer.C:
		}
		delay = b.next(delay)
	}
	return fmt.Errorf("giving up after %d attempts: %w", b.MaxAttempts, lastErr)
}

// MongoDBConnect dials the cluster named by cfg and pings the primary.
func MongoDBConnect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetAppName("eventdesk")

	var client *mongo.Client
	err := Retry(ctx, DefaultBackoff(cfg.MongoDBRetries), logger, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()

		c, err := mongo.Connect(attemptCtx, clientOptions)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		if err := c.Ping(attemptCtx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("MongoDB connected", "database", cfg.MongoDBDatabase)
	return client, nil
}

func MongoDBDisconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}
