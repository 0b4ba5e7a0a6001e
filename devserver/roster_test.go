package devserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	csv := `teamName,members,email
Byte Bandits,Alice;Bob,bandits@example.com
Null Pointers,Carol,carol@example.com
,Dave Grohl,dave@example.com
`
	participants, err := parseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, participants, 3)

	assert.Equal(t, "Byte Bandits", participants[0].TeamName)
	assert.Equal(t, []string{"Alice", "Bob"}, participants[0].Members)
	assert.Equal(t, "bandits@example.com", participants[0].Email)

	assert.Empty(t, participants[2].TeamName)
	assert.Equal(t, []string{"Dave Grohl"}, participants[2].Members)
}

func TestParseRosterWithoutHeader(t *testing.T) {
	csv := "Solo Act,Eve,eve@example.com\n"
	participants, err := parseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "Solo Act", participants[0].TeamName)
}

func TestParseRosterRejectsGarbage(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "empty file", body: ""},
		{name: "header only", body: "teamName,members,email\n"},
		{name: "row without members column", body: "Lonely Row\n"},
		{name: "row with neither name nor members", body: ",,\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseRoster(strings.NewReader(tc.body))
			assert.Error(t, err)
		})
	}
}
