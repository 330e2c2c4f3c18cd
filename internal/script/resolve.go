package script

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rockysnow7/cyoa/pkg/story"
)

// Resolve is the second phase of load: it checks referential integrity of the
// parsed graph. All findings are collected and reported together. A story
// that fails resolution must not be served.
func Resolve(st *story.Story) error {
	var errs []error

	if _, ok := st.Scenes[st.Entry]; !ok {
		errs = append(errs, fmt.Errorf("missing entry scene %q", st.Entry))
	}

	for _, name := range sceneNames(st) {
		scene := st.Scenes[name]
		for i, choice := range scene.Choices {
			if _, ok := st.Scenes[choice.Target]; !ok {
				errs = append(errs, fmt.Errorf("scene %q: choice %d targets undefined scene %q", name, i, choice.Target))
			}
		}
	}

	return errors.Join(errs...)
}

// Load parses and resolves raw story text in one call. This is the only path
// that yields a story ready to serve.
func Load(source string) (*story.Story, error) {
	st, err := Parse(source)
	if err != nil {
		return nil, err
	}
	if err := Resolve(st); err != nil {
		return nil, err
	}
	return st, nil
}

// sceneNames returns scene names in sorted order so findings are
// deterministic.
func sceneNames(st *story.Story) []string {
	names := make([]string, 0, len(st.Scenes))
	for name := range st.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
