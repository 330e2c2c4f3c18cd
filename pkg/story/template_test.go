package story_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/pkg/story"
)

func TestTemplate_Render(t *testing.T) {
	env := story.Environment{
		"name":  story.String("Bob"),
		"coins": story.Number(3),
	}

	tmpl, err := story.ParseTemplate("Hello, {name}! You have {coins} coins.")
	require.NoError(t, err)

	got, err := tmpl.Render(env)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bob! You have 3 coins.", got)
}

func TestTemplate_Render_NoPlaceholders(t *testing.T) {
	tmpl := story.MustTemplate("Just plain text.")
	got, err := tmpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Just plain text.", got)
}

func TestTemplate_Render_UndefinedVariable(t *testing.T) {
	tmpl := story.MustTemplate("You see {ghost}.")
	_, err := tmpl.Render(story.Environment{})
	var undef *story.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "ghost", undef.Name)
}

func TestTemplate_Render_RepeatedAndAdjacent(t *testing.T) {
	env := story.Environment{"x": story.Number(7)}
	tmpl := story.MustTemplate("{x}{x} and {x}")
	got, err := tmpl.Render(env)
	require.NoError(t, err)
	assert.Equal(t, "77 and 7", got)
}

func TestParseTemplate_Errors(t *testing.T) {
	_, err := story.ParseTemplate("unterminated {name")
	assert.Error(t, err)

	_, err = story.ParseTemplate("empty {} placeholder")
	assert.Error(t, err)

	_, err = story.ParseTemplate("bad {na me}")
	assert.Error(t, err)
}

func TestTemplate_Vars(t *testing.T) {
	tmpl := story.MustTemplate("{a} then {b} then {a} again")
	assert.Equal(t, []string{"a", "b"}, tmpl.Vars())

	assert.Empty(t, story.MustTemplate("no vars").Vars())
}

func TestTemplate_String(t *testing.T) {
	raw := "Hello, {name}!"
	assert.Equal(t, raw, story.MustTemplate(raw).String())
}
