package embedding

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"hirepulse-backend/internal/shared/metrics"
	"hirepulse-backend/internal/shared/telemetry"
)

const redisKeyPrefix = "jobemb:"

// Engine caches job embeddings and computes candidate-skill embeddings.
// The job cache is the only shared mutable state in the service: reads are
// lock-free once populated, and concurrent misses for the same job ID are
// collapsed into a single computation via singleflight.
//
// When a Redis client is configured it acts as the shared job-embedding
// artifact store (jobId -> vector): a warm entry written by the training
// pipeline or a sibling instance is preferred over local recomputation.
// Redis failures are non-fatal because the local computation is
// deterministic and produces the same vector.
type Engine struct {
	mu    sync.RWMutex
	cache map[string][]float64
	group singleflight.Group
	redis *redis.Client

	// embed performs the actual vector computation on a miss. Tests swap
	// it to observe how often the miss path runs.
	embed func(text string) []float64
}

// NewEngine constructs an Engine. rdb may be nil to run without the shared
// artifact store.
func NewEngine(rdb *redis.Client) *Engine {
	return &Engine{
		cache: make(map[string][]float64),
		redis: rdb,
		embed: EmbedText,
	}
}

// JobEmbedding returns the embedding for a job, computing it from
// fallbackText on first miss. Entries live for the process lifetime or
// until Invalidate.
func (e *Engine) JobEmbedding(ctx context.Context, jobID, fallbackText string) ([]float64, error) {
	e.mu.RLock()
	vec, ok := e.cache[jobID]
	e.mu.RUnlock()
	if ok {
		metrics.IncEmbeddingCache("hit")
		return vec, nil
	}

	result, err, _ := e.group.Do(jobID, func() (any, error) {
		// Another waiter may have populated the cache while we queued.
		e.mu.RLock()
		cached, ok := e.cache[jobID]
		e.mu.RUnlock()
		if ok {
			return cached, nil
		}

		if fromStore := e.loadFromStore(ctx, jobID); fromStore != nil {
			metrics.IncEmbeddingCache("redis_hit")
			e.store(jobID, fromStore)
			return fromStore, nil
		}

		metrics.IncEmbeddingCache("miss")
		computed := e.embed(fallbackText)
		e.saveToStore(ctx, jobID, computed)
		e.store(jobID, computed)
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]float64), nil
}

// SkillEmbedding embeds a candidate skill set. Always computed fresh; skill
// sets mutate per-request in what-if mode so caching would be incorrect.
func (e *Engine) SkillEmbedding(skills []string) []float64 {
	return EmbedSkills(skills)
}

// Invalidate drops the cached embedding for a job from both layers, forcing
// recomputation on next use. Used when a posting's text changes or the
// artifact store is refreshed.
func (e *Engine) Invalidate(ctx context.Context, jobID string) {
	e.mu.Lock()
	delete(e.cache, jobID)
	e.mu.Unlock()
	if e.redis != nil {
		if err := e.redis.Del(ctx, redisKeyPrefix+jobID).Err(); err != nil {
			telemetry.Warn("embedding.invalidate.redis", map[string]any{"job_id": jobID, "error": err.Error()})
		}
	}
}

func (e *Engine) store(jobID string, vec []float64) {
	e.mu.Lock()
	e.cache[jobID] = vec
	e.mu.Unlock()
}

func (e *Engine) loadFromStore(ctx context.Context, jobID string) []float64 {
	if e.redis == nil {
		return nil
	}
	payload, err := e.redis.Get(ctx, redisKeyPrefix+jobID).Bytes()
	if err != nil {
		if err != redis.Nil {
			telemetry.Warn("embedding.load.redis", map[string]any{"job_id": jobID, "error": err.Error()})
		}
		return nil
	}
	var vec []float64
	if err := json.Unmarshal(payload, &vec); err != nil || len(vec) != Dim {
		telemetry.Warn("embedding.load.decode", map[string]any{"job_id": jobID})
		return nil
	}
	return vec
}

func (e *Engine) saveToStore(ctx context.Context, jobID string, vec []float64) {
	if e.redis == nil {
		return
	}
	payload, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := e.redis.Set(ctx, redisKeyPrefix+jobID, payload, 0).Err(); err != nil {
		telemetry.Warn("embedding.save.redis", map[string]any{"job_id": jobID, "error": err.Error()})
	}
}
