package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/internal/script"
	"github.com/rockysnow7/cyoa/pkg/story"
)

const sampleSource = `
SET coins 3
SET name "Bob"
SET brave false

= START
"Hello, {name}! You have {coins} coins."
"Enter the cave" -> Cave [IF coins > 0] [THEN coins = 0]
"Go home" -> Home

= Cave
"The cave is dark."
"Leave" -> Home

= Home
"You rest at home."
`

func TestParse_FullStory(t *testing.T) {
	st, err := script.Load(sampleSource)
	require.NoError(t, err)

	assert.Equal(t, story.EntryScene, st.Entry)
	assert.Len(t, st.Scenes, 3)
	assert.Equal(t, story.Environment{
		"coins": story.Number(3),
		"name":  story.String("Bob"),
		"brave": story.Boolean(false),
	}, st.Initial)

	start, ok := st.Scene("START")
	require.True(t, ok)
	require.Len(t, start.Choices, 2)

	cave := start.Choices[0]
	assert.Equal(t, "Enter the cave", cave.Text.String())
	assert.Equal(t, "Cave", cave.Target)
	require.NotNil(t, cave.Guard)
	assert.Equal(t, story.OpGreater, cave.Guard.Op)
	require.NotNil(t, cave.Effect)
	assert.Equal(t, "coins", cave.Effect.Target)

	home := start.Choices[1]
	assert.Nil(t, home.Guard)
	assert.Nil(t, home.Effect)

	terminal, ok := st.Scene("Home")
	require.True(t, ok)
	assert.Empty(t, terminal.Choices)
}

func TestParse_SetOverwrites(t *testing.T) {
	st, err := script.Parse(`
SET coins 1
SET coins 9
`)
	require.NoError(t, err)
	assert.Equal(t, story.Number(9), st.Initial["coins"])
}

func TestParse_ThenOnly(t *testing.T) {
	st, err := script.Load(`
SET seen false

= START
"A door."
"Open it" -> START [THEN seen = true]
`)
	require.NoError(t, err)
	start, _ := st.Scene("START")
	require.Len(t, start.Choices, 1)
	assert.Nil(t, start.Choices[0].Guard)
	require.NotNil(t, start.Choices[0].Effect)
}

func TestParse_DuplicateScene(t *testing.T) {
	_, err := script.Parse(`
= START
"one"

= START
"two"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scene "START"`)
}

func TestParse_MissingNarration(t *testing.T) {
	_, err := script.Parse(`
= START
= Next
"text"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a narration string")
}

func TestParse_IfAfterThenRejected(t *testing.T) {
	_, err := script.Parse(`
SET x 0

= START
"hi"
"go" -> START [THEN x = 1] [IF x = 0]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected clause after THEN effect")
}

func TestParse_DuplicateGuardRejected(t *testing.T) {
	_, err := script.Parse(`
SET x 0

= START
"hi"
"go" -> START [IF x = 0] [IF x = 1]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate IF guard")
}

func TestParse_GuardMustBeBinary(t *testing.T) {
	_, err := script.Parse(`
SET x 0

= START
"hi"
"go" -> START [IF x]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparison operator")
}

func TestParse_MalformedTemplateInNarration(t *testing.T) {
	_, err := script.Parse(`
= START
"broken {placeholder"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated placeholder")
}

func TestParse_ErrorsCarryPosition(t *testing.T) {
	_, err := script.Parse(`SET 5 3`)
	require.Error(t, err)
	var serr *script.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Line)
	assert.Equal(t, 5, serr.Col)
}

func TestResolve_MissingEntryScene(t *testing.T) {
	_, err := script.Load(`
= Somewhere
"not the start"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing entry scene "START"`)
}

func TestResolve_DanglingTarget(t *testing.T) {
	_, err := script.Load(`
= START
"hi"
"jump" -> Nowhere
"fall" -> Elsewhere
`)
	require.Error(t, err)
	// Both dangling targets are reported together.
	assert.Contains(t, err.Error(), `targets undefined scene "Nowhere"`)
	assert.Contains(t, err.Error(), `targets undefined scene "Elsewhere"`)
}

func TestLoad_EmptySource(t *testing.T) {
	_, err := script.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing entry scene "START"`)
}
