package story

// ChoiceView is one currently visible choice as presented to a reader.
type ChoiceView struct {
	DisplayText string `json:"display_text"`
	ID          string `json:"id"`
}

// View is what one reader sees of their current scene: interpolated
// narration, the guard-filtered choices in authored order, and whether the
// story has ended. The JSON field names are part of the wire contract.
type View struct {
	DisplayText string       `json:"display_text"`
	Choices     []ChoiceView `json:"choices"`
	GameOver    bool         `json:"game_over"`
}
