package story

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrChoiceNotFound is returned when a choice ID names no authored choice of
// the current scene.
var ErrChoiceNotFound = errors.New("choice not found")

// ErrChoiceNotVisible is returned when a choice exists but its guard is
// currently false for the session's environment.
var ErrChoiceNotVisible = errors.New("choice not currently visible")

// ErrStoryFinished is returned when a session tries to advance past a scene
// with no visible choices.
var ErrStoryFinished = errors.New("story finished")

// UndefinedVariableError reports a reference to a variable that has no
// binding in the environment.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// TypeMismatchError reports an operation applied to values of incompatible
// kinds.
type TypeMismatchError struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q cannot be applied to %s and %s", e.Op, e.Left, e.Right)
}
