package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the jsonv binary via go run with the given args and stdin
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_ComplexNestedStructures round-trips a realistic document
// through the full pipeline and checks nothing was lost or reordered
// beyond the requested key sort.
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent, err := os.ReadFile(filepath.Join("..", "..", "testdata", "complex.json"))
	require.NoError(t, err)

	jsonFile := filepath.Join(tempDir, "complex.json")
	require.NoError(t, os.WriteFile(jsonFile, jsonContent, 0644))

	outputFile := filepath.Join(tempDir, "complex_out.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile, "-s")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	result, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// The document should survive the round trip unchanged
	var want, got interface{}
	require.NoError(t, json.Unmarshal(jsonContent, &want))
	require.NoError(t, json.Unmarshal(result, &got))
	assert.Equal(t, want, got)

	// Output is compact apart from the trailing newline
	text := string(result)
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.NotContains(t, strings.TrimSuffix(text, "\n"), "\n")
}

// TestEndToEnd_DeterministicOutput verifies that sorted serialization is
// stable across runs and idempotent when fed its own output.
func TestEndToEnd_DeterministicOutput(t *testing.T) {
	input := `{"z": [3, 2, 1], "a": {"c": true, "b": "x"}, "m": null}`

	first, _, err := runCLI(t, input, "-s")
	require.NoError(t, err)
	second, _, err := runCLI(t, input, "-s")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, _, err := runCLI(t, first, "-s")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

// TestEndToEnd_CheckMode validates the fixture without emitting it
func TestEndToEnd_CheckMode(t *testing.T) {
	jsonContent, err := os.ReadFile(filepath.Join("..", "..", "testdata", "complex.json"))
	require.NoError(t, err)

	stdout, stderr, err := runCLI(t, string(jsonContent), "-c")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "valid JSON")
}

// TestEndToEnd_RenameKeys pushes the fixture through key renaming and
// checks the renamed spellings landed everywhere in the tree.
func TestEndToEnd_RenameKeys(t *testing.T) {
	jsonContent, err := os.ReadFile(filepath.Join("..", "..", "testdata", "complex.json"))
	require.NoError(t, err)

	stdout, _, err := runCLI(t, string(jsonContent), "-s", "-r", "lower-camel")
	require.NoError(t, err)

	assert.Contains(t, stdout, `"createdAt"`)
	assert.Contains(t, stdout, `"timeoutSeconds"`)
	assert.Contains(t, stdout, `"lastLogin"`)
	assert.NotContains(t, stdout, `"created_at"`)
	assert.NotContains(t, stdout, `"last_login"`)
}

// TestEndToEnd_UnicodeAndEscapes exercises escape decoding and the
// serializer's escape policy through the real binary.
func TestEndToEnd_UnicodeAndEscapes(t *testing.T) {
	input := `{"text": "tab\there é ☃", "path": "a\/b"}`

	stdout, _, err := runCLI(t, input, "-s")
	require.NoError(t, err)

	// Decoded code points pass through raw; tab and slash re-escape
	assert.Equal(t, `{"path":"a\/b","text":"tab\there é ☃"}`+"\n", stdout)
}

// TestEndToEnd_InvalidDocuments checks the error surface of the binary
func TestEndToEnd_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"truncated object", `{"a": 1`, "unexpected end of input"},
		{"bad literal", `nul`, "invalid literal"},
		{"unterminated string", `"abc`, "unterminated string"},
		{"trailing garbage", `[] []`, "trailing characters"},
		{"bad number", `1e`, "invalid number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tc.input)
			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "JSON parsing error")
			assert.Contains(t, stderr, tc.want)
		})
	}
}
