package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hirepulse-backend/internal/features"
)

const defaultTimeout = 30 * time.Second

// HTTPClient calls an out-of-process model service that has the classifier
// artifact loaded. Contract: POST {baseURL}/predict with
// {"features": [...14 floats in artifact order...]} returns
// {"candidateStrength": s} with s in [0,1].
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs an HTTPClient. timeout bounds every call; the
// in-flight request is terminated when it elapses so a slow model service
// cannot leak connections or hang requests.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("model service URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	CandidateStrength float64 `json:"candidateStrength"`
}

// PredictStrength scores a feature vector via the remote artifact. Any
// transport failure, timeout or non-2xx status maps to ErrUnavailable.
func (c *HTTPClient) PredictStrength(ctx context.Context, vec features.Vector) (float64, error) {
	payload, err := json.Marshal(predictRequest{Features: vec[:]})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: model service returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if out.CandidateStrength < 0 || out.CandidateStrength > 1 {
		return 0, fmt.Errorf("%w: strength %f out of range", ErrUnavailable, out.CandidateStrength)
	}
	return out.CandidateStrength, nil
}

// Fallback reports false: this adapter uses the real artifact.
func (c *HTTPClient) Fallback() bool { return false }

var _ Classifier = (*HTTPClient)(nil)
