package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/service"
	"github.com/redis/go-redis/v9"
)

// SummaryStream receives one entry per computed summary
const SummaryStream = "stats.vsteams.basketball_nba"

const streamMaxLen = 1000

// RedisPublisher publishes summary events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher connects to redisURL and verifies the connection
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisStreamPublisher(client), nil
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: SummaryStream,
	}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// NotifySummary appends the result to the summary stream
func (rp *RedisPublisher) NotifySummary(ctx context.Context, result *service.VersusResult) error {
	return rp.client.XAdd(ctx, SummaryArgs(rp.stream, result)).Err()
}

// SummaryEvent is the JSON payload stored under the "data" field
type SummaryEvent struct {
	RequestID string                  `json:"request_id"`
	PlayerID  int                     `json:"player_id"`
	Player    string                  `json:"player"`
	Season    string                  `json:"season"`
	Games     int                     `json:"games"`
	Summary   []aggregator.SummaryRow `json:"summary"`
}

// SummaryArgs builds the XADD arguments for a result
func SummaryArgs(stream string, result *service.VersusResult) *redis.XAddArgs {
	event := SummaryEvent{
		RequestID: result.RequestID,
		PlayerID:  result.Player.ID,
		Player:    result.Player.FullName,
		Season:    string(result.Season),
		Games:     len(result.GameLog),
		Summary:   result.Summary,
	}
	// Summary rows are plain numbers and strings; Marshal cannot fail here.
	data, _ := json.Marshal(event)

	return &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"player_id": strconv.Itoa(result.Player.ID),
			"season":    string(result.Season),
			"timestamp": result.GeneratedAt.Unix(),
		},
	}
}
