package journal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	streamKeyFormat   = "user:%s:checkins"
	defaultUserID     = "guest"
	defaultBlock      = 5 * time.Second
	defaultBatchCount = 50

	DefaultLimit = 20
	MaxLimit     = 100
)

const (
	KindRecommend = "recommend"
	KindSchedule  = "schedule"
)

// CheckIn is one recorded wellness interaction.
type CheckIn struct {
	StreamID  string    `json:"stream_id,omitempty"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	Focus     int       `json:"focus"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal stores check-ins on a per-user Redis stream.
type Journal struct {
	client *redis.Client
	block  time.Duration
}

func New(client *redis.Client) *Journal {
	return &Journal{client: client, block: defaultBlock}
}

// WithBlock returns a copy that waits at most d in Tail.
func (j *Journal) WithBlock(d time.Duration) *Journal {
	cp := *j
	cp.block = d
	return &cp
}

// Block reports the longest Tail waits for new entries.
func (j *Journal) Block() time.Duration {
	return j.block
}

// StreamKey returns the check-in stream for a user.
func StreamKey(userID string) string {
	return fmt.Sprintf(streamKeyFormat, NormalizeUser(userID))
}

// Append records a check-in, filling in id, user and timestamp when missing.
func (j *Journal) Append(ctx context.Context, in CheckIn) (CheckIn, error) {
	if j == nil || j.client == nil {
		return CheckIn{}, errors.New("journal not configured")
	}
	if strings.TrimSpace(in.Kind) == "" {
		return CheckIn{}, errors.New("kind is required")
	}

	in.UserID = NormalizeUser(in.UserID)
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	id, err := j.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(in.UserID),
		Values: map[string]any{
			"id":         in.ID,
			"user_id":    in.UserID,
			"kind":       in.Kind,
			"summary":    in.Summary,
			"focus":      strconv.Itoa(in.Focus),
			"created_at": in.CreatedAt.Format(time.RFC3339Nano),
		},
	}).Result()
	if err != nil {
		return CheckIn{}, fmt.Errorf("append check-in: %w", err)
	}
	in.StreamID = id
	return in, nil
}

// Recent returns up to limit check-ins, newest first.
func (j *Journal) Recent(ctx context.Context, userID string, limit int) ([]CheckIn, error) {
	if j == nil || j.client == nil {
		return nil, errors.New("journal not configured")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	msgs, err := j.client.XRevRangeN(ctx, StreamKey(userID), "+", "-", int64(limit)).Result()
	if err != nil {
		if err == redis.Nil {
			return []CheckIn{}, nil
		}
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	out := make([]CheckIn, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, fromMessage(msg))
	}
	return out, nil
}

// LastID returns the newest stream ID for the user, or "0-0" when the journal is empty.
func (j *Journal) LastID(ctx context.Context, userID string) (string, error) {
	if j == nil || j.client == nil {
		return "", errors.New("journal not configured")
	}
	msgs, err := j.client.XRevRangeN(ctx, StreamKey(userID), "+", "-", 1).Result()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("read last check-in: %w", err)
	}
	if len(msgs) == 0 {
		return "0-0", nil
	}
	return msgs[0].ID, nil
}

// Tail blocks for check-ins after afterID ("$" or empty means only new ones) and
// returns them with the latest ID observed.
func (j *Journal) Tail(ctx context.Context, userID, afterID string) ([]CheckIn, string, error) {
	if j == nil || j.client == nil {
		return nil, afterID, errors.New("journal not configured")
	}
	if strings.TrimSpace(afterID) == "" {
		afterID = "$"
	}

	res, err := j.client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{StreamKey(userID), afterID},
		Count:   defaultBatchCount,
		Block:   j.block,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, afterID, nil
		}
		return nil, afterID, err
	}

	var out []CheckIn
	nextID := afterID
	for _, stream := range res {
		for _, msg := range stream.Messages {
			out = append(out, fromMessage(msg))
			nextID = msg.ID
		}
	}
	return out, nextID, nil
}

func fromMessage(msg redis.XMessage) CheckIn {
	c := CheckIn{
		StreamID: msg.ID,
		ID:       stringVal(msg.Values["id"]),
		UserID:   stringVal(msg.Values["user_id"]),
		Kind:     stringVal(msg.Values["kind"]),
		Summary:  stringVal(msg.Values["summary"]),
	}
	if n, err := strconv.Atoi(stringVal(msg.Values["focus"])); err == nil {
		c.Focus = n
	}
	if ts, err := time.Parse(time.RFC3339Nano, stringVal(msg.Values["created_at"])); err == nil {
		c.CreatedAt = ts
	}
	return c
}

func stringVal(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}

// NormalizeUser maps an empty user id to the shared guest journal.
func NormalizeUser(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return defaultUserID
	}
	return userID
}
