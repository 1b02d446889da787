package bodymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Map(t *testing.T) {
	value := Decode(`{"path-23": 7, "left-heel": 2}`)

	require.True(t, value.IsMap())
	assert.Equal(t, map[string]int{"path-23": 7, "left-heel": 2}, value.Areas)
}

func TestDecode_EmptyMap(t *testing.T) {
	value := Decode("{}")

	require.True(t, value.IsMap())
	assert.Empty(t, value.Areas)
}

func TestDecode_PlainTextFallsBack(t *testing.T) {
	tests := []string{
		"No",
		"",
		"7",
		"left-heel",
		`{"path-23": 7`,      // обрыв JSON
		`{"path-23": "high"}`, // интенсивность не число
		`["path-23"]`,        // массив, не объект
	}

	for _, raw := range tests {
		value := Decode(raw)
		assert.False(t, value.IsMap(), "значение %q должно остаться текстом", raw)
		assert.Equal(t, raw, value.Raw)
	}
}

func TestDecode_TrimsWhitespace(t *testing.T) {
	value := Decode("  {\"path-1\": 3}\n")

	require.True(t, value.IsMap())
	assert.Equal(t, 3, value.Areas["path-1"])
}
