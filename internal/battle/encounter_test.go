package battle

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhisek/studybuddy/internal/studygen"
)

func questions(n int) []studygen.QuizQuestion {
	qs := make([]studygen.QuizQuestion, n)
	for i := range qs {
		qs[i] = studygen.QuizQuestion{
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}
	}
	return qs
}

type failingResolver struct{ calls int }

func (f *failingResolver) ResolveTurn(context.Context, ResolveRequest) (ResolveResponse, error) {
	f.calls++
	return ResolveResponse{}, ErrConnection
}

func TestStart_RequiresQuestions(t *testing.T) {
	e := NewEncounter()
	if err := e.Start(nil, 2); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("state = %s, want idle", e.State())
	}
}

func TestStart_NoArmorWrongAnswerLoses(t *testing.T) {
	e := NewEncounter()
	if err := e.Start(questions(3), 0); err != nil {
		t.Fatal(err)
	}
	if e.MaxPlayerHealth() != 1 || e.MaxBossHealth() != 3 {
		t.Fatalf("max health player=%d boss=%d", e.MaxPlayerHealth(), e.MaxBossHealth())
	}

	if err := e.Submit(context.Background(), LocalRules{}, "b"); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateLost {
		t.Fatalf("state = %s, want lost", e.State())
	}
	if e.Message() != MessageIncorrect {
		t.Fatalf("message = %q", e.Message())
	}
}

func TestArmorAbsorbsWrongAnswer(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(2), 2)

	turn, err := e.Answer("c")
	if err != nil || turn != nil {
		t.Fatalf("expected local absorb, got turn=%v err=%v", turn, err)
	}
	if e.PlayerHealth() != 2 || e.ArmorRetries() != 1 {
		t.Fatalf("player=%d retries=%d", e.PlayerHealth(), e.ArmorRetries())
	}
	if e.Message() != MessageArmorAbsorbed {
		t.Fatalf("message = %q", e.Message())
	}
	if e.QuestionIndex() != 0 || e.Phase() != PhaseAwaitingAnswer {
		t.Fatal("absorbed answer should keep the same question open")
	}
}

func TestCorrectAnswersWin(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(2), 0)
	ctx := context.Background()

	if err := e.Submit(ctx, LocalRules{}, "a"); err != nil {
		t.Fatal(err)
	}
	if e.BossHealth() != 1 || e.Phase() != PhaseResolved {
		t.Fatalf("boss=%d phase=%s", e.BossHealth(), e.Phase())
	}
	if _, err := e.Answer("a"); !errors.Is(err, ErrNotAwaitingAnswer) {
		t.Fatalf("expected guard error, got %v", err)
	}
	if err := e.Next(); err != nil {
		t.Fatal(err)
	}
	e.Submit(ctx, LocalRules{}, "a")
	if e.State() != StateWon {
		t.Fatalf("state = %s, want won", e.State())
	}
}

func TestSurvivingAllQuestionsWins(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(1), 0)

	turn, _ := e.Answer("a")
	// Server reports the boss survived.
	e.Resolve(turn, ResolveResponse{NewPlayerHealth: 1, NewBossHealth: 1, Message: "close"})
	if e.State() != StateOngoing {
		t.Fatalf("state = %s", e.State())
	}
	if err := e.Next(); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateWon {
		t.Fatalf("state = %s, want won", e.State())
	}
}

func TestResolveClampsHealth(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(3), 1)

	turn, _ := e.Answer("a")
	e.Resolve(turn, ResolveResponse{NewPlayerHealth: 99, NewBossHealth: 99})
	if e.BossHealth() != 3 {
		t.Fatalf("boss health %d exceeds max", e.BossHealth())
	}
	if e.PlayerHealth() != 2 {
		t.Fatalf("correct answer changed player health: %d", e.PlayerHealth())
	}
}

func TestNetworkFailureKeepsState(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(2), 0)
	r := &failingResolver{}

	err := e.Submit(context.Background(), r, "a")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if e.BossHealth() != 2 || e.PlayerHealth() != 1 {
		t.Fatal("health changed on failure")
	}
	if e.Phase() != PhaseAwaitingAnswer || e.Message() != MessageConnectionError {
		t.Fatalf("phase=%s message=%q", e.Phase(), e.Message())
	}

	// Retrying the same answer works once the server is back.
	if err := e.Submit(context.Background(), LocalRules{}, "a"); err != nil {
		t.Fatal(err)
	}
	if e.BossHealth() != 1 {
		t.Fatalf("boss = %d, want 1", e.BossHealth())
	}
}

func TestStaleTurnRejected(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(2), 0)
	turn, _ := e.Answer("a")
	e.Fail(turn, ErrConnection)

	if err := e.Resolve(turn, ResolveResponse{}); !errors.Is(err, ErrStaleTurn) {
		t.Fatalf("expected ErrStaleTurn, got %v", err)
	}
}

func TestRestart(t *testing.T) {
	e := NewEncounter()
	e.Start(questions(2), 1)
	e.Submit(context.Background(), LocalRules{}, "b")
	first := e.ID

	if err := e.Restart(); err != nil {
		t.Fatal(err)
	}
	if e.ID == first {
		t.Fatal("restart should start a new encounter")
	}
	if e.PlayerHealth() != 2 || e.ArmorRetries() != 1 || e.State() != StateOngoing {
		t.Fatalf("restart did not reset: player=%d retries=%d state=%s", e.PlayerHealth(), e.ArmorRetries(), e.State())
	}
}

func TestRandomTranscriptsRespectBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	choices := []string{"a", "b", "c", "d"}

	for range 500 {
		armor := rng.IntN(4)
		e := NewEncounter()
		e.Start(questions(1+rng.IntN(5)), armor)

		for steps := 0; !e.Over() && steps < 100; steps++ {
			if e.Phase() == PhaseResolved {
				e.Next()
				continue
			}
			e.Submit(context.Background(), LocalRules{}, choices[rng.IntN(len(choices))])

			if e.PlayerHealth() > e.MaxPlayerHealth() || e.BossHealth() > e.MaxBossHealth() {
				t.Fatalf("health above max: %d/%d %d/%d", e.PlayerHealth(), e.MaxPlayerHealth(), e.BossHealth(), e.MaxBossHealth())
			}
			if e.PlayerHealth() < 0 || e.BossHealth() < 0 {
				t.Fatal("negative health")
			}
			if e.ArmorAbsorbed() > armor {
				t.Fatalf("absorbed %d with %d armor", e.ArmorAbsorbed(), armor)
			}
		}
		if !e.Over() {
			t.Fatal("battle did not end")
		}
		if e.State() == StateLost && e.PlayerHealth() > 0 {
			t.Fatal("lost with positive health")
		}
	}
}

func TestApplyRules(t *testing.T) {
	resp := ApplyRules(ResolveRequest{WasAnswerCorrect: true, PlayerHealth: 2, BossHealth: 3})
	if resp.NewBossHealth != 2 || resp.NewPlayerHealth != 2 || resp.Target != TargetBoss || resp.DamageDealt != 1 {
		t.Fatalf("unexpected %+v", resp)
	}

	resp = ApplyRules(ResolveRequest{WasAnswerCorrect: false, PlayerHealth: 0, BossHealth: 3})
	if resp.NewPlayerHealth != 0 || resp.Target != TargetPlayer {
		t.Fatalf("unexpected %+v", resp)
	}
}

func TestHTTPResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ResolveTurnPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req ResolveRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ApplyRules(req))
	}))
	t.Cleanup(srv.Close)

	res := NewHTTPResolver(srv.URL+"/", time.Second)
	resp, err := res.ResolveTurn(context.Background(), ResolveRequest{WasAnswerCorrect: true, PlayerHealth: 1, BossHealth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if resp.NewBossHealth != 1 || resp.Message != MessageCorrect {
		t.Fatalf("unexpected %+v", resp)
	}
}

func TestHTTPResolver_Non2xxIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	_, err := NewHTTPResolver(srv.URL, time.Second).ResolveTurn(context.Background(), ResolveRequest{})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}
