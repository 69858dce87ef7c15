package entity

// Snapshot is an immutable copy of a game at one version of its owning session.
type Snapshot[C comparable] struct {
	SessionID  string        `json:"session_id"`
	Version    uint64        `json:"version"`
	Theme      string        `json:"theme,omitempty"`
	Cards      []Card[C]     `json:"cards"`
	Score      int           `json:"score"`
	PairsLeft  int           `json:"pairs_left"`
	IsFinished bool          `json:"is_finished"`
	Scoring    ScoringPolicy `json:"scoring"`
}

func NewSnapshot[C comparable](sessionID, theme string, version uint64, game *MemoryGame[C]) Snapshot[C] {
	return Snapshot[C]{
		SessionID:  sessionID,
		Version:    version,
		Theme:      theme,
		Cards:      game.Cards(),
		Score:      game.Score(),
		PairsLeft:  game.PairsLeft(),
		IsFinished: game.IsFinished(),
		Scoring:    game.Scoring(),
	}
}
