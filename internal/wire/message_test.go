package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Run("accepts tag and payload pair", func(t *testing.T) {
		msg, err := DecodeEnvelope([]any{"debug_enter", []any{true, "oops"}})
		require.NoError(t, err)
		assert.Equal(t, "debug_enter", msg.Tag)
		assert.Equal(t, []any{true, "oops"}, msg.Data)
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		_, err := DecodeEnvelope([]any{"debug_enter"})
		assert.ErrorIs(t, err, ErrBadEnvelope)

		_, err = DecodeEnvelope([]any{"debug_enter", []any{}, []any{}})
		assert.ErrorIs(t, err, ErrBadEnvelope)
	})

	t.Run("rejects non-string tag", func(t *testing.T) {
		_, err := DecodeEnvelope([]any{int64(7), []any{}})
		assert.ErrorIs(t, err, ErrBadEnvelope)
	})

	t.Run("rejects non-array payload", func(t *testing.T) {
		_, err := DecodeEnvelope([]any{"output", "not an array"})
		assert.ErrorIs(t, err, ErrBadEnvelope)
	})
}

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := Message{Tag: "breakpoint", Data: []any{"res://player.gd", int64(42), true}}

	raw, err := Marshal(msg.Envelope())
	require.NoError(t, err)

	var decoded []any
	require.NoError(t, Unmarshal(raw, &decoded))

	got, err := DecodeEnvelope(decoded)
	require.NoError(t, err)
	assert.Equal(t, "breakpoint", got.Tag)
	require.Len(t, got.Data, 3)

	path, ok := Str(got.Data[0])
	require.True(t, ok)
	assert.Equal(t, "res://player.gd", path)

	line, ok := Int(got.Data[1])
	require.True(t, ok)
	assert.Equal(t, int64(42), line)

	enabled, ok := Bool(got.Data[2])
	require.True(t, ok)
	assert.True(t, enabled)
}

func TestEnvelopeNilData(t *testing.T) {
	env := Message{Tag: "next"}.Envelope()
	require.Len(t, env, 2)
	assert.Equal(t, []any{}, env[1])
}

func TestNumericCoercion(t *testing.T) {
	t.Run("int accepts CBOR decoder types", func(t *testing.T) {
		for _, v := range []any{int64(5), uint64(5), int(5), float64(5)} {
			n, ok := Int(v)
			require.True(t, ok, "type %T", v)
			assert.Equal(t, int64(5), n)
		}
	})

	t.Run("float accepts integers", func(t *testing.T) {
		f, ok := Float(uint64(3))
		require.True(t, ok)
		assert.Equal(t, 3.0, f)
	})

	t.Run("rejects strings", func(t *testing.T) {
		_, ok := Int("5")
		assert.False(t, ok)
		_, ok = Float("5")
		assert.False(t, ok)
	})
}
