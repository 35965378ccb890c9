package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/wordbank/internal/lexicon"
	"github.com/ppiankov/wordbank/internal/pipeline"
)

var (
	lexiconJSON  bool
	lexiconForce bool
)

// lexiconCmd represents the lexicon command
var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect and manage word banks",
	Long: `Inspect the active lexicon, validate custom lexicon files, or write the
embedded financial lexicon to disk as a starting point for a custom one.

A lexicon file lists six categories of phrases, an ordered modifier table
and a set of negation phrases. Select one with --lexicon or lexicon.path.`,
}

var lexiconShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active lexicon",
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := loadLexicon()
		if err != nil {
			return err
		}
		renderer := pipeline.NewRenderer(cmd.OutOrStdout())
		if lexiconJSON {
			return renderer.RenderJSON(lex.Stats())
		}
		renderStats(cmd.OutOrStdout(), lex)
		return nil
	},
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a lexicon file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := lexicon.LoadFile(args[0])
		if err != nil {
			var verr *lexicon.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("invalid lexicon %s: field %s: %s", args[0], verr.Field, verr.Message)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n\n", args[0])
		renderStats(cmd.OutOrStdout(), lex)
		return nil
	},
}

var lexiconInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the embedded financial lexicon to a file",
	Long:  `Write the embedded financial lexicon as YAML (default: lexicon.yaml) so it can be edited and loaded with --lexicon.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "lexicon.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !lexiconForce {
			return fmt.Errorf("file already exists: %s\nUse --force to overwrite", path)
		}

		if err := os.WriteFile(path, lexicon.DefaultYAML(), 0644); err != nil {
			return fmt.Errorf("write lexicon: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote lexicon %s: %s\n", lexicon.Default().Version(), path)
		fmt.Fprintf(cmd.OutOrStdout(), "\nTo use it:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  wordbank --lexicon %s score \"...\"\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconShowCmd)
	lexiconCmd.AddCommand(lexiconValidateCmd)
	lexiconCmd.AddCommand(lexiconInitCmd)

	lexiconShowCmd.Flags().BoolVar(&lexiconJSON, "json", false, "emit JSON")
	lexiconInitCmd.Flags().BoolVar(&lexiconForce, "force", false, "overwrite an existing file")
}

func loadLexicon() (*lexicon.Lexicon, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.LoadLexicon(cfg.Lexicon.Path)
}

func renderStats(w io.Writer, lex *lexicon.Lexicon) {
	stats := lex.Stats()

	fmt.Fprintf(w, "  Version:    %s\n", stats.Version)
	fmt.Fprintf(w, "  Content:    %s\n", lex.Fingerprint()[:12])
	fmt.Fprintf(w, "  Entries:    %d\n", stats.Entries)
	for _, cat := range lexicon.AllCategories() {
		fmt.Fprintf(w, "    %-18s %+.1f  %d\n", cat.Key(), cat.Base(), stats.Categories[cat.Key()])
	}
	fmt.Fprintf(w, "  Modifiers:  %d\n", stats.Modifiers)
	for _, m := range lex.Modifiers() {
		fmt.Fprintf(w, "    %-18s x%g\n", m.Phrase, m.Multiplier)
	}
	fmt.Fprintf(w, "  Negations:  %d\n", stats.Negations)

	renderPhraseGroups(w, "Phrases in more than one category (counted once per category):", stats.Shared)
	renderPhraseGroups(w, "Phrases listed more than once in a category (counted once per listing):", stats.Repeated)
}

func renderPhraseGroups(w io.Writer, title string, groups map[string][]string) {
	if len(groups) == 0 {
		return
	}
	phrases := make([]string, 0, len(groups))
	for phrase := range groups {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	fmt.Fprintf(w, "\n  %s\n", title)
	for _, phrase := range phrases {
		fmt.Fprintf(w, "    %-18s %s\n", phrase, strings.Join(groups[phrase], ", "))
	}
}
