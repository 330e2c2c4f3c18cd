package story

// Choice is a guarded edge from a scene to a target scene. Its opaque ID is
// its ordinal position in the authored (unfiltered) choice list, so IDs stay
// meaningful as guards flip between renders.
type Choice struct {
	Text   Template
	Target string
	Guard  *Expr       // nil means always visible
	Effect *Assignment // nil means no effect
}

// Scene is a named node in the story graph holding exactly one narration
// template and an ordered list of choices. Order is significant for
// rendering.
type Scene struct {
	Name      string
	Narration Template
	Choices   []Choice
}
