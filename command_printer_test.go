package cmdlinegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/cmdlinegen/ascii"
)

func TestFormatCommands(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Line     string
		Expected string
	}{
		{
			Name: "Single field",
			Line: "quit",
			Expected: `Command[quit] (line 1)
└── Field[quit] STRING "quit"
`,
		},
		{
			Name: "Placeholders and help",
			Line: "show <UINT32>__id <(up,down)>state <IPv4>addr # Show things",
			Expected: `Command[show_id] (line 1) "Show things"
├── Field[show] STRING "show"
├── Field[id] UINT32
├── Field[state] CHOICE "up#down"
└── Field[addr] IPV4
`,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			cmd, err := interpretLine(t, 1, test.Line)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, FormatCommands([]*Command{cmd}))
		})
	}
}

func TestHighlightCommandsKeepsText(t *testing.T) {
	cmd, err := interpretLine(t, 2, "show version")
	require.NoError(t, err)
	out := HighlightCommands([]*Command{cmd}, ascii.DefaultTheme)
	assert.Contains(t, out, "show_version")
	assert.Contains(t, out, "Field")
	assert.Contains(t, out, `"version"`)
}
