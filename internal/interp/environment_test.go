package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentCreateAndGet(t *testing.T) {
	env := NewEnvironment()

	assert.True(t, env.Create("x", &IntegerValue{Value: 1}))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*IntegerValue).Value)

	_, ok = env.Get("missing")
	assert.False(t, ok)
}

func TestEnvironmentCreateRejectsRedefinition(t *testing.T) {
	env := NewEnvironment()

	assert.True(t, env.Create("x", &NilValue{}))
	assert.False(t, env.Create("x", &NilValue{}))

	// A fresh frame allows the same name again.
	env.Push(FrameIf)
	assert.True(t, env.Create("x", &IntegerValue{Value: 2}))
}

func TestEnvironmentLexicalShadowing(t *testing.T) {
	env := NewEnvironment()
	env.Create("x", &IntegerValue{Value: 1})

	env.Push(FrameIf)
	env.Create("x", &IntegerValue{Value: 2})
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.(*IntegerValue).Value)

	require.NoError(t, env.Pop())
	v, ok = env.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*IntegerValue).Value)
}

func TestEnvironmentFunctionOpacity(t *testing.T) {
	env := NewEnvironment()
	env.Create("global", &IntegerValue{Value: 1})

	env.Push(FrameFunction)
	env.Create("outer", &IntegerValue{Value: 2})

	// Non-function frames stay transparent.
	env.Push(FrameFor)
	_, ok := env.Get("outer")
	assert.True(t, ok, "for frames are transparent")

	// A second function frame hides every outer function frame.
	env.Push(FrameFunction)
	_, ok = env.Get("outer")
	assert.False(t, ok, "outer function locals must be invisible")
	_, ok = env.Get("global")
	assert.False(t, ok, "the global frame is a function frame too")
}

func TestEnvironmentSetIgnoresOpacity(t *testing.T) {
	env := NewEnvironment()

	env.Push(FrameFunction)
	env.Create("x", &IntegerValue{Value: 1})
	env.Push(FrameFunction)

	// Get cannot see x, Set can still reach it.
	_, ok := env.Get("x")
	assert.False(t, ok)
	assert.True(t, env.Set("x", &IntegerValue{Value: 5}))

	require.NoError(t, env.Pop())
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(5), v.(*IntegerValue).Value)
}

func TestEnvironmentSetUnknownName(t *testing.T) {
	env := NewEnvironment()
	assert.False(t, env.Set("ghost", &NilValue{}))
}

func TestEnvironmentPopRefusesRootFrame(t *testing.T) {
	env := NewEnvironment()
	assert.Error(t, env.Pop())

	env.Push(FrameIf)
	assert.NoError(t, env.Pop())
	assert.Error(t, env.Pop())
}

func TestEnvironmentSnapshotIsolatesBindings(t *testing.T) {
	env := NewEnvironment()
	env.Create("x", &IntegerValue{Value: 1})

	snap := env.Snapshot()

	// Rebinding in the original does not touch the snapshot.
	env.Set("x", &IntegerValue{Value: 2})
	v, ok := snap.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*IntegerValue).Value)

	// New names in the original do not appear in the snapshot.
	env.Create("y", &IntegerValue{Value: 3})
	_, ok = snap.Get("y")
	assert.False(t, ok)
}

func TestEnvironmentSnapshotSharesValues(t *testing.T) {
	env := NewEnvironment()
	s := NewStructValue("node", map[string]Value{"v": &IntegerValue{Value: 1}})
	env.Create("n", s)

	snap := env.Snapshot()

	// Struct payloads are shared: a mutation through one environment is
	// observable through the other.
	s.Fields["v"] = &IntegerValue{Value: 42}
	v, ok := snap.Get("n")
	require.True(t, ok)
	assert.Equal(t, int64(42), v.(*StructValue).Fields["v"].(*IntegerValue).Value)
}

func TestEnvironmentSnapshotSharesThunks(t *testing.T) {
	env := NewEnvironment()
	thunk := NewThunk(nil, nil)
	env.Create("x", thunk)

	snap := env.Snapshot()
	thunk.resolve(&IntegerValue{Value: 9})

	v, ok := snap.Get("x")
	require.True(t, ok)
	resolved, _, _ := v.(*Thunk).Memo()
	require.NotNil(t, resolved, "a thunk forced through one snapshot is resolved in all")
	assert.Equal(t, int64(9), resolved.(*IntegerValue).Value)
}

func TestEnvironmentDepth(t *testing.T) {
	env := NewEnvironment()
	assert.Equal(t, 1, env.Depth())
	env.Push(FrameTry)
	env.Push(FrameCatch)
	assert.Equal(t, 3, env.Depth())
}
