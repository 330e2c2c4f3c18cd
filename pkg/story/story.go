package story

// EntryScene is the designated name of the scene every session starts at.
const EntryScene = "START"

// Story is the complete, immutable, validated graph of scenes plus the
// initial variable bindings. It is shared by reference across all sessions
// and never copied or mutated after load.
type Story struct {
	Scenes  map[string]*Scene
	Initial Environment
	Entry   string
}

// Scene looks up a scene by name. Graph cycles are ordinary repeated lookups
// in this arena; there are no live object references between scenes.
func (s *Story) Scene(name string) (*Scene, bool) {
	sc, ok := s.Scenes[name]
	return sc, ok
}
