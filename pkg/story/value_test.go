package story_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/pkg/story"
)

func TestValue_Display(t *testing.T) {
	assert.Equal(t, "42", story.Number(42).Display())
	assert.Equal(t, "-7", story.Number(-7).Display())
	assert.Equal(t, "hello", story.String("hello").Display())
	assert.Equal(t, "true", story.Boolean(true).Display())
	assert.Equal(t, "false", story.Boolean(false).Display())
}

func TestValue_Equal(t *testing.T) {
	eq, err := story.Number(3).Equal(story.Number(3))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = story.String("a").Equal(story.String("b"))
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = story.Boolean(true).Equal(story.Boolean(true))
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestValue_Equal_KindMismatchIsError(t *testing.T) {
	// Comparing across kinds must fail loudly, never report false.
	_, err := story.Number(0).Equal(story.String("0"))
	var mismatch *story.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, story.KindNumber, mismatch.Left)
	assert.Equal(t, story.KindString, mismatch.Right)
}

func TestValue_Compare(t *testing.T) {
	c, err := story.Number(1).Compare(story.Number(2), story.OpLess)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = story.Number(5).Compare(story.Number(5), story.OpGreater)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = story.String("a").Compare(story.String("b"), story.OpLess)
	assert.Error(t, err, "ordering is only defined for numbers")

	_, err = story.Boolean(true).Compare(story.Number(1), story.OpGreater)
	assert.Error(t, err)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	for _, v := range []story.Value{
		story.Number(-12),
		story.String("a \"quoted\" string"),
		story.Boolean(true),
	} {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var got story.Value
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, v, got, "kind must survive serialization")
	}
}

func TestValue_UnmarshalUnknownKind(t *testing.T) {
	var v story.Value
	err := json.Unmarshal([]byte(`{"kind":"float","value":1.5}`), &v)
	assert.Error(t, err)
}

func TestEnvironment_Clone(t *testing.T) {
	env := story.Environment{"coins": story.Number(3)}
	clone := env.Clone()

	require.NoError(t, clone.Assign("coins", story.Number(0)))

	v, err := env.Lookup("coins")
	require.NoError(t, err)
	assert.Equal(t, story.Number(3), v, "mutating a clone must not touch the original")
}

func TestEnvironment_Assign(t *testing.T) {
	env := story.Environment{"coins": story.Number(3)}

	require.NoError(t, env.Assign("coins", story.Number(10)))
	v, err := env.Lookup("coins")
	require.NoError(t, err)
	assert.Equal(t, story.Number(10), v)

	// Implicit declaration is rejected.
	err = env.Assign("mana", story.Number(1))
	var undef *story.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "mana", undef.Name)

	// So is changing a binding's kind.
	err = env.Assign("coins", story.String("many"))
	var mismatch *story.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestEnvironment_Lookup_Undefined(t *testing.T) {
	env := story.Environment{}
	_, err := env.Lookup("ghost")
	var undef *story.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "ghost", undef.Name)
}
