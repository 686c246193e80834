package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeDeliversInOrder(t *testing.T) {
	local, remote := NewPipe()

	require.NoError(t, remote.PutMessage([]any{"output", []any{"first"}}))
	require.NoError(t, remote.PutMessage([]any{"output", []any{"second"}}))
	require.NoError(t, remote.PutMessage([]any{"output", []any{"third"}}))

	assert.True(t, local.HasMessage())
	for _, want := range []string{"first", "second", "third"} {
		env, err := local.GetMessage()
		require.NoError(t, err)
		require.Len(t, env, 2)
		payload, ok := env[1].([]any)
		require.True(t, ok)
		assert.Equal(t, want, payload[0])
	}
	assert.False(t, local.HasMessage())
}

func TestPipeNormalizesTypes(t *testing.T) {
	// A pipe must not hand raw Go values across; everything passes
	// through the codec so handlers see the same types a network peer
	// would produce.
	local, remote := NewPipe()

	require.NoError(t, remote.PutMessage([]any{"performance:profile_frame", []any{int(7), -3, 1.5}}))

	env, err := local.GetMessage()
	require.NoError(t, err)
	payload := env[1].([]any)
	assert.IsType(t, uint64(0), payload[0])
	assert.IsType(t, int64(0), payload[1])
	assert.Equal(t, 1.5, payload[2])
}

func TestPipeEmptyReturnsErrNoMessage(t *testing.T) {
	local, _ := NewPipe()

	assert.False(t, local.HasMessage())
	_, err := local.GetMessage()
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestPipeClose(t *testing.T) {
	local, remote := NewPipe()

	require.NoError(t, remote.PutMessage([]any{"output", []any{"queued"}}))
	require.NoError(t, local.Close())

	t.Run("queued envelopes drain after close", func(t *testing.T) {
		env, err := local.GetMessage()
		require.NoError(t, err)
		assert.Equal(t, "output", env[0])

		_, err = local.GetMessage()
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("peer put fails after close", func(t *testing.T) {
		err := remote.PutMessage([]any{"output", []any{"late"}})
		assert.ErrorIs(t, err, ErrClosed)
	})
}
