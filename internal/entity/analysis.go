package entity

// ScoredAction is a legal action together with the minimax value of the board it leads to.
type ScoredAction struct {
	Action Action `json:"action"`
	Value  int    `json:"value"`
}

// Analysis describes a position for external callers.
type Analysis struct {
	Board         Board          `json:"board"`
	CurrentPlayer Player         `json:"current_player"`
	LegalActions  []Action       `json:"legal_actions"`
	Winner        Player         `json:"winner,omitempty"`
	Terminal      bool           `json:"terminal"`
	Utility       *int           `json:"utility,omitempty"`
	BestAction    *Action        `json:"best_action,omitempty"`
	Value         *int           `json:"value,omitempty"`
	Scores        []ScoredAction `json:"scores,omitempty"`
	Nodes         int            `json:"nodes,omitempty"`
}
