package prediction

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	preds map[string]ShortlistPrediction
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{preds: make(map[string]ShortlistPrediction)}
}

func memKey(userID, jobID string) string { return userID + "\x00" + jobID }

// Upsert stores a prediction, replacing any previous row for the pair while
// keeping the original CreatedAt.
func (r *MemoryRepo) Upsert(ctx context.Context, pred ShortlistPrediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.preds[memKey(pred.UserID, pred.JobID)]; ok {
		pred.CreatedAt = prev.CreatedAt
	}
	r.preds[memKey(pred.UserID, pred.JobID)] = pred
	return nil
}

// GetLatest returns the stored prediction for a user/job pair.
func (r *MemoryRepo) GetLatest(ctx context.Context, userID, jobID string) (ShortlistPrediction, error) {
	if err := ctx.Err(); err != nil {
		return ShortlistPrediction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pred, ok := r.preds[memKey(userID, jobID)]
	if !ok {
		return ShortlistPrediction{}, ErrNotFound
	}
	return pred, nil
}

// ListByUser returns a user's predictions ordered by UpdatedAt descending.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]ShortlistPrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ShortlistPrediction, 0)
	for _, pred := range r.preds {
		if pred.UserID == userID {
			out = append(out, pred)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].JobID < out[j].JobID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Analytics aggregates a user's predictions.
func (r *MemoryRepo) Analytics(ctx context.Context, userID string) (Analytics, error) {
	if err := ctx.Err(); err != nil {
		return Analytics{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var stats Analytics
	var sumProb, sumStrength, sumMatch int
	for _, pred := range r.preds {
		if pred.UserID != userID {
			continue
		}
		if stats.Count == 0 || pred.ShortlistProbability < stats.MinProbability {
			stats.MinProbability = pred.ShortlistProbability
		}
		if pred.ShortlistProbability > stats.MaxProbability {
			stats.MaxProbability = pred.ShortlistProbability
		}
		sumProb += pred.ShortlistProbability
		sumStrength += pred.CandidateStrength
		sumMatch += pred.JobMatchScore
		stats.Count++
	}
	if stats.Count > 0 {
		n := float64(stats.Count)
		stats.AvgProbability = float64(sumProb) / n
		stats.AvgStrength = float64(sumStrength) / n
		stats.AvgMatchScore = float64(sumMatch) / n
	}
	return stats, nil
}

var _ Repo = (*MemoryRepo)(nil)
