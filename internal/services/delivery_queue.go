package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

const scheduledDeliveryKey = "delivery:scheduled"

// DeliveryJob is one pending external-channel send for a notification
type DeliveryJob struct {
	NotificationID uint           `json:"notification_id"`
	Channel        models.Channel `json:"channel"`
	Attempt        int            `json:"attempt"`
}

// DeliveryQueue is the Redis-backed delayed queue for external deliveries.
// Quiet-hours deferrals and retry backoff both land here: jobs are scored by
// their ready-time in a sorted set and popped when due, so a suppressed send
// is requeued for the next opportunity rather than dropped.
type DeliveryQueue struct {
	rdb *redis.Client
	key string
}

// NewDeliveryQueue creates a new DeliveryQueue
func NewDeliveryQueue(rdb *redis.Client) *DeliveryQueue {
	return &DeliveryQueue{rdb: rdb, key: scheduledDeliveryKey}
}

// Schedule enqueues a job to become ready at the given time
func (q *DeliveryQueue) Schedule(ctx context.Context, job DeliveryJob, readyAt time.Time) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	err = q.rdb.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(readyAt.Unix()),
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("schedule delivery job: %w", err)
	}
	return nil
}

// PopDue removes and returns every job whose ready-time has passed. Each
// member is claimed via ZRem so concurrent pollers never process a job twice.
func (q *DeliveryQueue) PopDue(ctx context.Context, now time.Time) ([]DeliveryJob, error) {
	members, err := q.rdb.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("pop due delivery jobs: %w", err)
	}

	var jobs []DeliveryJob
	for _, m := range members {
		removed, err := q.rdb.ZRem(ctx, q.key, m).Result()
		if err != nil {
			return jobs, err
		}
		if removed == 0 {
			continue // another instance claimed it
		}
		var job DeliveryJob
		if err := json.Unmarshal([]byte(m), &job); err != nil {
			continue // malformed member, already removed
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Len returns the number of scheduled jobs (sampled)
func (q *DeliveryQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.ZCard(ctx, q.key).Result()
}
