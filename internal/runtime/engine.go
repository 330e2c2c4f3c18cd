// Package runtime implements the story state machine: rendering a scene for
// one session's environment and advancing it through a chosen transition.
package runtime

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rockysnow7/cyoa/internal/logging"
	"github.com/rockysnow7/cyoa/pkg/story"
)

// Engine walks the shared immutable story graph on behalf of one session at a
// time. It holds no mutable state of its own; the session's environment and
// scene pointer are passed in.
type Engine struct {
	story  *story.Story
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger configures a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a runtime over a loaded story.
func NewEngine(st *story.Story, opts ...Option) *Engine {
	e := &Engine{
		story:  st,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Story returns the shared story graph.
func (e *Engine) Story() *story.Story { return e.story }

// Render builds the view of a scene against an environment: interpolated
// narration, guard-filtered choices in authored order, and game_over when no
// choice is visible. Visible choice IDs are ordinals into the authored list,
// not the filtered one, so they stay meaningful as guards change.
//
// Render is pure: two calls without an intervening Advance yield identical
// output.
func (e *Engine) Render(env story.Environment, sceneName string) (story.View, error) {
	scene, ok := e.story.Scene(sceneName)
	if !ok {
		return story.View{}, fmt.Errorf("unknown scene %q", sceneName)
	}

	narration, err := scene.Narration.Render(env)
	if err != nil {
		return story.View{}, fmt.Errorf("rendering narration of scene %q: %w", sceneName, err)
	}

	choices := make([]story.ChoiceView, 0, len(scene.Choices))
	for i, choice := range scene.Choices {
		visible, err := e.choiceVisible(choice, env)
		if err != nil {
			return story.View{}, fmt.Errorf("evaluating guard of choice %d in scene %q: %w", i, sceneName, err)
		}
		if !visible {
			continue
		}
		text, err := choice.Text.Render(env)
		if err != nil {
			return story.View{}, fmt.Errorf("rendering choice %d of scene %q: %w", i, sceneName, err)
		}
		choices = append(choices, story.ChoiceView{
			DisplayText: text,
			ID:          strconv.Itoa(i),
		})
	}

	return story.View{
		DisplayText: narration,
		Choices:     choices,
		GameOver:    len(choices) == 0,
	}, nil
}

// Advance applies the transition named by choiceID. Visibility is recomputed
// against the live environment; a snapshot taken by an earlier Render is
// never trusted, since guards may have changed in between.
//
// On success the choice's effect (if any) is applied to env and the new scene
// name is returned. Every failure leaves env untouched.
func (e *Engine) Advance(env story.Environment, sceneName, choiceID string) (string, error) {
	scene, ok := e.story.Scene(sceneName)
	if !ok {
		return "", fmt.Errorf("unknown scene %q", sceneName)
	}

	visible := make([]bool, len(scene.Choices))
	anyVisible := false
	for i, choice := range scene.Choices {
		v, err := e.choiceVisible(choice, env)
		if err != nil {
			return "", fmt.Errorf("evaluating guard of choice %d in scene %q: %w", i, sceneName, err)
		}
		visible[i] = v
		anyVisible = anyVisible || v
	}

	if !anyVisible {
		return "", story.ErrStoryFinished
	}

	idx, err := strconv.Atoi(choiceID)
	if err != nil || idx < 0 || idx >= len(scene.Choices) {
		return "", story.ErrChoiceNotFound
	}
	if !visible[idx] {
		return "", story.ErrChoiceNotVisible
	}

	chosen := scene.Choices[idx]
	if chosen.Effect != nil {
		if err := chosen.Effect.Apply(env); err != nil {
			return "", fmt.Errorf("applying effect of choice %d in scene %q: %w", idx, sceneName, err)
		}
	}

	e.logger.Debug("scene transition",
		"from", sceneName,
		"to", chosen.Target,
		"choice", choiceID,
	)
	return chosen.Target, nil
}

func (e *Engine) choiceVisible(choice story.Choice, env story.Environment) (bool, error) {
	if choice.Guard == nil {
		return true, nil
	}
	return choice.Guard.Eval(env)
}
