package bodymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlas_Size(t *testing.T) {
	assert.Len(t, FrontAreas, 72)
	assert.Len(t, BackAreas, 78)
	assert.Len(t, All(), 150)
}

func TestAtlas_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, area := range All() {
		require.False(t, seen[area.ID], "дубликат id %q", area.ID)
		require.NotEmpty(t, area.Label, "область %q без подписи", area.ID)
		seen[area.ID] = true
	}
}

func TestAtlas_CanonicalOrder(t *testing.T) {
	first := All()
	second := All()
	require.Equal(t, first, second)

	// Передняя проекция идет первой, задняя — следом
	assert.Equal(t, FrontAreas[0], first[0])
	assert.Equal(t, BackAreas[0], first[len(FrontAreas)])
	assert.Equal(t, "right-sole", first[len(first)-1].ID)
}

func TestAtlas_WellKnownLabels(t *testing.T) {
	tests := []struct {
		id    string
		label string
	}{
		{"path-22", "Left Deltoideus"},
		{"path-23", "Right Deltoideus"},
		{"left-heel", "Left Heel"},
		{"right-heel", "Right Heel"},
		{"left-sole", "Left Sole"},
	}

	for _, tt := range tests {
		assert.True(t, Known(tt.id))
		assert.Equal(t, tt.label, LabelFor(tt.id))
	}
}

func TestLabelFor_FallbackForUnknownID(t *testing.T) {
	assert.False(t, Known("alien-zone"))
	assert.Equal(t, "Alien Zone", LabelFor("alien-zone"))
	assert.Equal(t, "Mystery", LabelFor("mystery"))
	// Id неизвестного формата не должен ронять подпись
	assert.Equal(t, "X 9", LabelFor("x-9"))
}
