package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/pipeline"
)

var (
	batchOutput      string
	batchSummaryJSON string
	batchNoCache     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input.csv>",
	Short: "Score every row of a CSV file",
	Long: `Batch scores the text column of every row in a CSV file in parallel:
- Read rows from a file, an http(s) URL, or stdin ("-")
- Score the text column (default: title) with a pool of workers
- Append score and hit-count columns, leaving other columns untouched
- Print the score distribution summary to stderr

Rows with an empty text cell score 0 with 0 hits.

Example:
  wordbank batch articles.csv --output articles_scored.csv
  wordbank batch articles.csv --text-col headline --present-col has_sentiment
  wordbank batch https://example.com/export.csv --workers 8 --summary-json summary.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	defaults := model.DefaultConfig()
	flags := batchCmd.Flags()

	flags.String("text-col", defaults.Batch.TextColumn, "column holding the text to score")
	flags.String("score-col", defaults.Batch.ScoreColumn, "name of the appended score column")
	flags.String("hits-col", defaults.Batch.HitsColumn, "name of the appended hit-count column")
	flags.String("present-col", defaults.Batch.PresentColumn, "name of an appended hits>0 column (omitted when empty)")
	flags.Int("workers", defaults.Batch.Workers, "number of concurrent workers")
	flags.Duration("timeout", defaults.Batch.Timeout, "total timeout for batch processing")
	flags.StringVarP(&batchOutput, "output", "o", "-", "output CSV path (- for stdout)")
	flags.StringVar(&batchSummaryJSON, "summary-json", "", "write the run summary as JSON to this path")
	flags.BoolVar(&batchNoCache, "no-cache", false, "disable the score cache")

	// Remote input flags
	flags.String("ua", defaults.HTTP.UserAgent, "HTTP User-Agent for remote input")
	flags.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	flags.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	flags.Bool("insecure", false, "skip TLS certificate verification for remote input")
	flags.Bool("ignore-robots", false, "download remote input even if robots.txt disallows it")

	_ = viper.BindPFlag("batch.text_column", flags.Lookup("text-col"))
	_ = viper.BindPFlag("batch.score_column", flags.Lookup("score-col"))
	_ = viper.BindPFlag("batch.hits_column", flags.Lookup("hits-col"))
	_ = viper.BindPFlag("batch.present_column", flags.Lookup("present-col"))
	_ = viper.BindPFlag("batch.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("batch.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("http.user_agent", flags.Lookup("ua"))
	_ = viper.BindPFlag("http.http_proxy", flags.Lookup("http-proxy"))
	_ = viper.BindPFlag("http.https_proxy", flags.Lookup("https-proxy"))
	_ = viper.BindPFlag("http.insecure_tls", flags.Lookup("insecure"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if ignore, _ := cmd.Flags().GetBool("ignore-robots"); ignore {
		cfg.HTTP.RespectRobots = false
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Batch.Timeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Wordbank Batch Scoring\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input:        %s\n", input)
	fmt.Fprintf(stderr, "  Output:       %s\n", displayPath(batchOutput))
	fmt.Fprintf(stderr, "  Text column:  %s\n", cfg.Batch.TextColumn)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Batch.Workers)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", cfg.Batch.Timeout)
	fmt.Fprintf(stderr, "  Cache:        %s\n", cacheDescription(cfg.Cache))
	fmt.Fprintf(stderr, "\n")

	p, err := pipeline.NewPipeline(cfg, slog.Default())
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx, pipeline.RunOptions{
		Input:       input,
		Output:      batchOutput,
		SummaryJSON: batchSummaryJSON,
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	pipeline.NewRenderer(stderr).RenderSummary(*summary)
	if batchSummaryJSON != "" {
		fmt.Fprintf(stderr, "✓ Wrote summary: %s\n", batchSummaryJSON)
	}

	return nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}

func cacheDescription(c model.CacheConfig) string {
	switch {
	case !c.Enabled:
		return "disabled"
	case c.Dir == "":
		return "memory"
	default:
		return "memory + " + c.Dir
	}
}
