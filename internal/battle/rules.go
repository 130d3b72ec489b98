package battle

// ResolveRequest is the body sent to the resolve-turn endpoint.
type ResolveRequest struct {
	WasAnswerCorrect bool `json:"wasAnswerCorrect"`
	PlayerHealth     int  `json:"playerHealth"`
	BossHealth       int  `json:"bossHealth"`
}

// ResolveResponse is the authoritative result of a turn.
type ResolveResponse struct {
	NewPlayerHealth int    `json:"newPlayerHealth"`
	NewBossHealth   int    `json:"newBossHealth"`
	Message         string `json:"message"`
	Target          string `json:"target,omitempty"`
	DamageDealt     int    `json:"damageDealt,omitempty"`
}

const (
	TargetBoss   = "boss"
	TargetPlayer = "player"

	// TurnDamage is the health removed by one resolved turn.
	TurnDamage = 1

	MessageCorrect   = "Correct! The opponent takes 1 point of damage."
	MessageIncorrect = "Incorrect! You take 1 point of damage."
)

// ApplyRules resolves a turn: a correct answer damages the boss, a wrong one
// damages the player. Health never drops below zero.
func ApplyRules(req ResolveRequest) ResolveResponse {
	player, boss := req.PlayerHealth, req.BossHealth
	resp := ResolveResponse{DamageDealt: TurnDamage}

	if req.WasAnswerCorrect {
		boss -= TurnDamage
		resp.Target = TargetBoss
		resp.Message = MessageCorrect
	} else {
		player -= TurnDamage
		resp.Target = TargetPlayer
		resp.Message = MessageIncorrect
	}

	resp.NewPlayerHealth = max(0, player)
	resp.NewBossHealth = max(0, boss)
	return resp
}
