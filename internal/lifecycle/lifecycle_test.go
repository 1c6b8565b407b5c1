package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_Transitions(t *testing.T) {
	var l Lifecycle
	assert.Equal(t, Idle, l.State())
	assert.True(t, l.CanStart())

	epoch, ok := l.Begin()
	require.True(t, ok)
	assert.Equal(t, InFlight, l.State())

	_, ok = l.Begin()
	assert.False(t, ok, "second Begin while in flight must be rejected")

	require.True(t, l.Succeed(epoch))
	assert.Equal(t, Succeeded, l.State())

	next, ok := l.Begin()
	require.True(t, ok, "Succeeded must allow a new request")
	assert.Greater(t, next, epoch)

	require.True(t, l.Fail(next, "boom"))
	assert.Equal(t, Failed, l.State())
	assert.Equal(t, "boom", l.Reason())

	_, ok = l.Begin()
	require.True(t, ok, "Failed must allow a new request")
	assert.Empty(t, l.Reason(), "Begin clears the previous reason")
}

func TestLifecycle_StaleEpochIgnored(t *testing.T) {
	var l Lifecycle
	epoch, _ := l.Begin()
	l.Reset()

	assert.False(t, l.Succeed(epoch))
	assert.False(t, l.Fail(epoch, "late"))
	assert.Equal(t, Idle, l.State())

	fresh, ok := l.Begin()
	require.True(t, ok)
	assert.False(t, l.Current(epoch))
	assert.True(t, l.Current(fresh))
}

func TestLifecycle_ResolveWithoutBegin(t *testing.T) {
	var l Lifecycle
	assert.False(t, l.Succeed(0))
	assert.False(t, l.Fail(0, "x"))
	assert.Equal(t, Idle, l.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "in-flight", InFlight.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
