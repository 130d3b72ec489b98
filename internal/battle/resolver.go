package battle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrConnection wraps every failure to reach or understand the battle
// server. The encounter treats them all the same way.
var ErrConnection = errors.New("battle server unreachable")

// ResolveTurnPath is the endpoint path on the battle server.
const ResolveTurnPath = "/api/battle/resolve-turn"

// Resolver decides the outcome of a turn.
type Resolver interface {
	ResolveTurn(ctx context.Context, req ResolveRequest) (ResolveResponse, error)
}

// LocalRules resolves turns in-process with the same rules as the server.
type LocalRules struct{}

func (LocalRules) ResolveTurn(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	if err := ctx.Err(); err != nil {
		return ResolveResponse{}, err
	}
	return ApplyRules(req), nil
}

// HTTPResolver posts turns to a battle server.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver creates a resolver for the server at baseURL.
func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTPResolver) ResolveTurn(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ResolveResponse{}, fmt.Errorf("marshal resolve request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+ResolveTurnPath, bytes.NewReader(body))
	if err != nil {
		return ResolveResponse{}, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return ResolveResponse{}, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ResolveResponse{}, fmt.Errorf("%w: status %d", ErrConnection, resp.StatusCode)
	}

	var out ResolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ResolveResponse{}, fmt.Errorf("%w: decode response: %v", ErrConnection, err)
	}
	return out, nil
}
