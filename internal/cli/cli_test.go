package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		args         []string
		expectPath   string
		expectGraph  string
		expectExit   bool
		expectErrMsg string
	}{
		{
			name:        "long flag",
			args:        []string{"-script", "graph.hcl"},
			expectPath:  "graph.hcl",
			expectGraph: "session",
		},
		{
			name:       "shorthand flag",
			args:       []string{"-s", "graph.hcl"},
			expectPath: "graph.hcl",
		},
		{
			name:       "positional path",
			args:       []string{"scripts/"},
			expectPath: "scripts/",
		},
		{
			name:       "flag wins over positional",
			args:       []string{"-script", "a.hcl", "b.hcl"},
			expectPath: "a.hcl",
		},
		{
			name:        "graph name override",
			args:        []string{"-graph-name", "wood", "graph.hcl"},
			expectPath:  "graph.hcl",
			expectGraph: "wood",
		},
		{
			name:       "help exits cleanly",
			args:       []string{"-h"},
			expectExit: true,
		},
		{
			name:         "missing path",
			args:         []string{},
			expectErrMsg: "a script path is required",
		},
		{
			name:         "unknown flag",
			args:         []string{"-bogus"},
			expectErrMsg: "flag provided but not defined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(tc.args, &out)

			if tc.expectErrMsg != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, err.Error(), tc.expectErrMsg)
				return
			}
			require.NoError(t, err)
			if tc.expectExit {
				assert.True(t, exit)
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, tc.expectPath, cfg.ScriptPath)
			if tc.expectGraph != "" {
				assert.Equal(t, tc.expectGraph, cfg.GraphName)
			}
		})
	}
}
