package main

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"
)

const popTimeout = 5 * time.Second

type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
}

// fileJob is a request to compute statistics for one input file.
type fileJob struct {
	Path  string
	RunID int64
}

// jobQueue pops raw job payloads. A zero payload with a nil error means the
// pop timed out.
type jobQueue interface {
	Pop(ctx context.Context) (string, error)
}

type redisQueue struct {
	client *redis.Client
	key    string
}

func newRedisQueue(redisURL, queue string) (*redisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid REDIS_URL")
	}
	return &redisQueue{client: redis.NewClient(opts), key: "queue:" + queue}, nil
}

func (q *redisQueue) Pop(ctx context.Context) (string, error) {
	res, err := q.client.BRPop(ctx, popTimeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", ewrap.Wrap(err, "redis brpop")
	}
	// BRPOP replies with [key, value].
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}

func (q *redisQueue) Close() error {
	return q.client.Close()
}

// decodeJob turns a Sidekiq payload into a fileJob. Args are the input path
// followed by an optional run id.
func decodeJob(payload string) (fileJob, error) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return fileJob{}, ewrap.Wrap(ErrInvalidJob, err.Error())
	}
	if job.Class != "StatisticsWorker" {
		return fileJob{}, ewrap.Wrapf(ErrInvalidJob, "unexpected class %s", job.Class)
	}
	if len(job.Args) == 0 {
		return fileJob{}, ewrap.Wrap(ErrInvalidJob, "missing input path")
	}
	var path string
	if err := json.Unmarshal(job.Args[0], &path); err != nil || path == "" {
		return fileJob{}, ewrap.Wrapf(ErrInvalidJob, "bad input path %s", string(job.Args[0]))
	}
	out := fileJob{Path: path}
	if len(job.Args) > 1 {
		id, err := parseRunID(job.Args[1])
		if err != nil {
			return fileJob{}, ewrap.Wrap(ErrInvalidJob, err.Error())
		}
		out.RunID = id
	}
	return out, nil
}

// parseRunID accepts a run id sent either as a JSON number or as a quoted
// decimal string. Ids must be positive.
func parseRunID(raw json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		var asString string
		if json.Unmarshal(raw, &asString) != nil {
			return 0, ewrap.Newf("unsupported run id %s", string(raw))
		}
		if id, err = strconv.ParseInt(asString, 10, 64); err != nil {
			return 0, ewrap.Wrapf(err, "run id %q", asString)
		}
	}
	if id <= 0 {
		return 0, ewrap.Newf("run id must be positive, got %d", id)
	}
	return id, nil
}
