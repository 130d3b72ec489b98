package battleapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/battle"
)

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	opts.Registry = reg
	ts := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func postTurn(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url+battle.ResolveTurnPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestResolveTurn(t *testing.T) {
	ts, _ := newTestServer(t, Options{CORSOrigins: []string{"*"}})

	tests := []struct {
		name string
		body string
		want battle.ResolveResponse
	}{
		{
			name: "correct damages boss",
			body: `{"wasAnswerCorrect": true, "playerHealth": 3, "bossHealth": 5}`,
			want: battle.ResolveResponse{NewPlayerHealth: 3, NewBossHealth: 4, Message: battle.MessageCorrect, Target: battle.TargetBoss, DamageDealt: 1},
		},
		{
			name: "wrong damages player",
			body: `{"wasAnswerCorrect": false, "playerHealth": 1, "bossHealth": 5}`,
			want: battle.ResolveResponse{NewPlayerHealth: 0, NewBossHealth: 5, Message: battle.MessageIncorrect, Target: battle.TargetPlayer, DamageDealt: 1},
		},
		{
			name: "health never negative",
			body: `{"wasAnswerCorrect": true, "playerHealth": 2, "bossHealth": 0}`,
			want: battle.ResolveResponse{NewPlayerHealth: 2, NewBossHealth: 0, Message: battle.MessageCorrect, Target: battle.TargetBoss, DamageDealt: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, b := postTurn(t, ts.URL, tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

			var got battle.ResolveResponse
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTurn_MissingData(t *testing.T) {
	ts, reg := newTestServer(t, Options{})

	bodies := []string{
		``,
		`not json`,
		`{"playerHealth": 3, "bossHealth": 5}`,
		`{"wasAnswerCorrect": true, "bossHealth": 5}`,
		`{"wasAnswerCorrect": true, "playerHealth": 3}`,
		`{"wasAnswerCorrect": "yes", "playerHealth": 3, "bossHealth": 5}`,
	}
	for _, body := range bodies {
		resp, b := postTurn(t, ts.URL, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.JSONEq(t, `{"error": "Missing required data"}`, string(b), body)
	}

	assert.Equal(t, float64(len(bodies)), counterValue(t, reg, "studybuddy_battle_bad_requests_total"))
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(b))

	postTurn(t, ts.URL, `{"wasAnswerCorrect": true, "playerHealth": 3, "bossHealth": 5}`)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	b, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `studybuddy_battle_turns_resolved_total{target="boss"} 1`)
	assert.Contains(t, string(b), `route="/api/battle/resolve-turn"`)
}

func TestCORS(t *testing.T) {
	ts, _ := newTestServer(t, Options{CORSOrigins: []string{"http://localhost:3000"}})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+battle.ResolveTurnPath, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.test")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHTTPResolverAgainstServer(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	r := battle.NewHTTPResolver(ts.URL+"/", 0)

	got, err := r.ResolveTurn(context.Background(), battle.ResolveRequest{WasAnswerCorrect: false, PlayerHealth: 2, BossHealth: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, got.NewPlayerHealth)
	assert.Equal(t, 4, got.NewBossHealth)
	assert.Equal(t, battle.TargetPlayer, got.Target)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			var total float64
			for _, m := range f.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}
