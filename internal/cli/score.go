package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/wordbank/internal/pipeline"
	"github.com/ppiankov/wordbank/internal/score"
)

var (
	scoreExplain bool
	scoreJSON    bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <text...>",
	Short: "Score a single headline",
	Long: `Score prints the sentiment score and hit count for one text.

Arguments are joined with spaces. Use "-" to score each line of stdin.

Example:
  wordbank score "Analysts turn bullish despite concerns"
  wordbank score --explain "Shares are not very bullish"
  wordbank score --json - < headlines.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "show each occurrence with its modifier and negation")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	scorer, err := loadScorer()
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cmd.OutOrStdout())

	if len(args) == 1 && args[0] == "-" {
		return scoreLines(cmd.InOrStdin(), renderer, scorer)
	}

	return scoreOne(renderer, scorer, strings.Join(args, " "))
}

func scoreLines(in io.Reader, renderer *pipeline.Renderer, scorer *score.Scorer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if scoreJSON {
			if err := renderer.RenderJSON(jsonPayload(scorer, line)); err != nil {
				return err
			}
			continue
		}
		if err := renderer.RenderLine(scorer.Score(line), line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func scoreOne(renderer *pipeline.Renderer, scorer *score.Scorer, text string) error {
	switch {
	case scoreJSON:
		return renderer.RenderJSON(jsonPayload(scorer, text))
	case scoreExplain:
		renderer.RenderBreakdown(scorer.Explain(text))
		return nil
	default:
		return renderer.RenderLine(scorer.Score(text), "")
	}
}

// scoredText is the JSON form of a score command result
type scoredText struct {
	Text string `json:"text"`
	score.Result
	Present   bool             `json:"present"`
	Breakdown *score.Breakdown `json:"breakdown,omitempty"`
}

func jsonPayload(scorer *score.Scorer, text string) scoredText {
	b := scorer.Explain(text)
	payload := scoredText{Text: text, Result: b.Result, Present: b.Result.Present()}
	if scoreExplain {
		payload.Breakdown = &b
	}
	return payload
}

func loadScorer() (*score.Scorer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	lex, err := pipeline.LoadLexicon(cfg.Lexicon.Path)
	if err != nil {
		return nil, err
	}
	return score.NewScorer(lex, score.WithWindow(cfg.Lexicon.Window)), nil
}
