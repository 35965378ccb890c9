package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against an isolated home directory
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	scoreJSON, scoreExplain = false, false
	lexiconJSON, lexiconForce = false, false
	batchOutput, batchSummaryJSON, batchNoCache = "-", "", false
	require.NoError(t, rootCmd.PersistentFlags().Set("lexicon", ""))
	require.NoError(t, rootCmd.PersistentFlags().Set("window", "4"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "", "score", "Analysts", "turn", "bullish", "despite", "concerns")
	require.NoError(t, err)
	assert.Equal(t, "0.64\t2\n", out)
}

func TestScoreCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "score", "--json", "Markets look bullish")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Markets look bullish", got["text"])
	assert.Equal(t, 0.96, got["score"])
	assert.EqualValues(t, 1, got["hits"])
	assert.Equal(t, true, got["present"])
	assert.NotContains(t, got, "breakdown")
}

func TestScoreCommand_Explain(t *testing.T) {
	out, err := execute(t, "", "score", "--explain", "Shares are not very bullish")
	require.NoError(t, err)
	assert.Contains(t, out, `negated by "not"`)
	assert.Contains(t, out, "Score:   -1.00 (hits: 1)")
}

func TestScoreCommand_Stdin(t *testing.T) {
	out, err := execute(t, "bullish\nnot bullish\n\n", "score", "-")
	require.NoError(t, err)
	assert.Equal(t, "0.96\t1\tbullish\n-0.96\t1\tnot bullish\n0.00\t0\n", out)
}

func TestLexiconCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")

	out, err := execute(t, "", "lexicon", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "", "lexicon", "init", path)
	require.Error(t, err, "init refuses to overwrite")

	_, err = execute(t, "", "lexicon", "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "", "lexicon", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "strong_positive")

	out, err = execute(t, "", "--lexicon", path, "score", "bullish")
	require.NoError(t, err)
	assert.Equal(t, "0.96\t1\n", out)
}

func TestLexiconValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := `version: "bad"
categories:
  strong_positive: [moon]
  moderate_positive: [up]
  weak_positive: [fine]
  weak_negative: [meh]
  moderate_negative: [down]
  strong_negative: [rekt]
modifiers:
  - {phrase: very, multiplier: 0}
negations: [not]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := execute(t, "", "lexicon", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifiers[0]")
}

func TestLexiconShow_FlagsRepeats(t *testing.T) {
	out, err := execute(t, "", "lexicon", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Phrases in more than one category")
	assert.Contains(t, out, "Phrases listed more than once in a category")
	assert.Regexp(t, `collapse\s+strong_negative`, out)
}

func TestLexiconShow_JSON(t *testing.T) {
	out, err := execute(t, "", "lexicon", "show", "--json")
	require.NoError(t, err)

	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Contains(t, stats, "version")
	assert.Contains(t, stats, "categories")
	assert.Contains(t, stats, "repeated")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("title\nbullish\n\n\"not bullish\"\n"), 0644))

	_, err := execute(t, "", "batch", input, "--output", output, "--no-cache")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "title,sentiment_score,sentiment_hits\nbullish,0.96,1\nnot bullish,-0.96,1\n", string(data))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "wordbank v"+Version))
}
