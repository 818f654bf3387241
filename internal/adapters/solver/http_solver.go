package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleet-routing-service/internal/platform/obs"
	"fleet-routing-service/internal/ports"
)

// HTTPSolverClient implements SolverClient against the external route solver
// API. The caller bounds each Solve with a timeout context; the embedded
// http.Client timeout is a safety net below that.
//
// The client is safe for concurrent use.
type HTTPSolverClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewHTTPSolverClient(baseURL, apiKey string) (*HTTPSolverClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("solver base URL is empty")
	}

	return &HTTPSolverClient{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Solve posts the optimization payload and decodes the optimized route.
// Any non-2xx response, transport error, or timeout surfaces as an error for
// the optimizer to absorb into its fallback path.
func (c *HTTPSolverClient) Solve(ctx context.Context, req ports.SolverRequest) (_ *ports.SolverResponse, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("solve: encode payload: %w", err)
	}

	url := c.baseURL + "/v1/routes/solve"
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	defer resp.Body.Close()

	var out ports.SolverResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("solve: decode response: %w", err)
	}

	return &out, nil
}
