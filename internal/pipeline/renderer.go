package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
)

const rule = "═══════════════════════════════════════════════════════════"

// Renderer writes human-readable and JSON output
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RenderSummary prints the batch summary banner
func (r *Renderer) RenderSummary(s model.Summary) {
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "%s\n", rule)
	fmt.Fprintf(r.w, "  Sentiment Summary\n")
	fmt.Fprintf(r.w, "%s\n", rule)
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "  Run:        %s\n", s.RunID)
	fmt.Fprintf(r.w, "  Lexicon:    %s\n", s.LexiconVersion)
	fmt.Fprintf(r.w, "  Column:     %s\n", s.TextColumn)
	fmt.Fprintf(r.w, "  Rows:       %d\n", s.Total)
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "  Positive:   %d (%.1f%%)\n", s.Positive, s.Percent(s.Positive))
	fmt.Fprintf(r.w, "  Neutral:    %d (%.1f%%)\n", s.Neutral, s.Percent(s.Neutral))
	fmt.Fprintf(r.w, "  Negative:   %d (%.1f%%)\n", s.Negative, s.Percent(s.Negative))
	fmt.Fprintf(r.w, "  With hits:  %d (%.1f%%)\n", s.Present, s.Percent(s.Present))
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "  Mean:       %.4f\n", s.Mean)
	fmt.Fprintf(r.w, "  Std:        %.4f\n", s.StdDev)
	fmt.Fprintf(r.w, "  Min:        %.2f\n", s.Min)
	fmt.Fprintf(r.w, "  Max:        %.2f\n", s.Max)
	if s.CacheHits > 0 {
		fmt.Fprintf(r.w, "  Cache hits: %d\n", s.CacheHits)
	}
	fmt.Fprintf(r.w, "  Duration:   %v\n", s.Duration)
	fmt.Fprintf(r.w, "\n")
}

// RenderBreakdown prints each occurrence with its context adjustments
func (r *Renderer) RenderBreakdown(b score.Breakdown) {
	fmt.Fprintf(r.w, "Text:   %q\n", b.Normalized)
	if len(b.Contributions) == 0 {
		fmt.Fprintf(r.w, "No lexicon phrases found\n")
		fmt.Fprintf(r.w, "Score:  %.2f (hits: 0)\n", b.Result.Score)
		return
	}

	fmt.Fprintf(r.w, "\n")
	for _, c := range b.Contributions {
		var notes []string
		if c.Modifier != "" {
			notes = append(notes, fmt.Sprintf("modifier %q x%g", c.Modifier, c.Multiplier))
		}
		if c.Negated() {
			notes = append(notes, fmt.Sprintf("negated by %q", c.Negation))
		}
		note := ""
		if len(notes) > 0 {
			note = "  [" + strings.Join(notes, ", ") + "]"
		}
		fmt.Fprintf(r.w, "  @%-4d %-24q base %+.1f -> %+.2f%s\n", c.Offset, c.Phrase, c.Base, c.Value, note)
	}
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "Total:   %+.4f\n", b.Total)
	fmt.Fprintf(r.w, "Average: %+.4f\n", b.Average)
	fmt.Fprintf(r.w, "Score:   %.2f (hits: %d)\n", b.Result.Score, b.Result.Hits)
}

// RenderLine prints "score<TAB>hits", followed by the text when one is given
func (r *Renderer) RenderLine(res score.Result, text string) error {
	var err error
	if text == "" {
		_, err = fmt.Fprintf(r.w, "%.2f\t%d\n", res.Score, res.Hits)
	} else {
		_, err = fmt.Fprintf(r.w, "%.2f\t%d\t%s\n", res.Score, res.Hits, text)
	}
	return err
}

// RenderJSON writes v as indented JSON
func (r *Renderer) RenderJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path
func WriteJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
