package karma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapAdjuster map[string]int

func (m mapAdjuster) AdjustKarma(name string, delta int) (int, error) {
	m[name] += delta
	return m[name], nil
}

func TestProcessMessage(t *testing.T) {
	store := mapAdjuster{}

	reply, ok := ProcessMessage(store, "alice", "coffee++")
	require.True(t, ok)
	assert.Equal(t, "Karma for `coffee` increased to 1.", reply)

	reply, ok = ProcessMessage(store, "alice", "coffee ++")
	require.True(t, ok)
	assert.Equal(t, "Karma for `coffee` increased to 2.", reply)

	reply, ok = ProcessMessage(store, "alice", "coffee--")
	require.True(t, ok)
	assert.Equal(t, "Karma for `coffee` decreased to 1.", reply)

	// Mention prefixes are stripped, words are lowercased.
	reply, ok = ProcessMessage(store, "alice", "@Bob++")
	require.True(t, ok)
	assert.Equal(t, "Karma for `bob` increased to 1.", reply)
}

func TestSelfKarmaIsPenalized(t *testing.T) {
	store := mapAdjuster{}

	reply, ok := ProcessMessage(store, "Alice", "alice++")
	require.True(t, ok)
	assert.Equal(t, "Karma cannot be incremented for yourself, you have been penalized: Karma for `alice` decreased to -1.", reply)

	// Decrementing yourself is allowed.
	reply, ok = ProcessMessage(store, "Alice", "alice--")
	require.True(t, ok)
	assert.Equal(t, "Karma for `alice` decreased to -2.", reply)
}

func TestProcessMessageMisses(t *testing.T) {
	store := mapAdjuster{}

	for _, text := range []string{
		"hello",
		"coffee+",
		"c++ is a language",
		"a++",
		"thiswordiswaytoolongforkarma++",
	} {
		_, ok := ProcessMessage(store, "alice", text)
		assert.False(t, ok, text)
	}
	assert.Empty(t, store)
}
