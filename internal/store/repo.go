package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

const (
	tableLLMEvents    = "llm_request_events"
	tablePointsEvents = "points_events"
	tableRewardEvents = "reward_events"
	tableBattleEvents = "battle_events"
	tableSettings     = "settings"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// EventMeta is shared by every stored event.
type EventMeta struct {
	ID        int
	Sequence  int64
	RunID     string
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	EventMeta
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls sharing a purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// PointsEventData is one ledger change.
type PointsEventData struct {
	Delta   int
	Balance int
	Reason  string
}

// PointsEventRecord is a stored ledger change.
type PointsEventRecord struct {
	EventMeta
	PointsEventData
}

// RewardEventData records a chest draw and whether it was claimed.
type RewardEventData struct {
	Chest    string
	Outcome  string
	Kind     string
	Stake    int
	NetValue int
	Claimed  bool
}

// RewardEventRecord is a stored chest draw.
type RewardEventRecord struct {
	EventMeta
	RewardEventData
}

// BattleEventData summarizes a finished encounter.
type BattleEventData struct {
	EncounterID   string
	Result        string
	Questions     int
	Armor         int
	ArmorAbsorbed int
	PlayerHealth  int
	BossHealth    int
}

// BattleEventRecord is a stored encounter summary.
type BattleEventRecord struct {
	EventMeta
	BattleEventData
}

// EventRepo provides append and query access to the audit trail.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	// GetLLMEvent returns one LLM event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	AppendPointsEvent(ctx context.Context, data PointsEventData) error
	QueryPointsEvents(ctx context.Context, opts QueryOpts) ([]PointsEventRecord, error)

	AppendRewardEvent(ctx context.Context, data RewardEventData) error
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	AppendBattleEvent(ctx context.Context, data BattleEventData) error
	QueryBattleEvents(ctx context.Context, opts QueryOpts) ([]BattleEventRecord, error)
}

// SettingsRepo stores user preferences as key/value pairs.
type SettingsRepo interface {
	// Get returns the value for key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Theme returns the saved theme, or DefaultTheme.
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}
