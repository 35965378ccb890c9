package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ppiankov/wordbank/internal/model"
)

// ErrMissingColumn is returned when the text column is not in the CSV header
var ErrMissingColumn = errors.New("text column not found")

// Columns names the output columns appended to every row
type Columns struct {
	Score   string
	Hits    string
	Present string // empty omits the column
}

// ReadRecords reads a CSV with a header row. The named column supplies the
// text; an empty cell or a short row yields a nil text.
func ReadRecords(r io.Reader, textColumn string) ([]string, []model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	col := -1
	for i, name := range header {
		if name == textColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, textColumn)
	}

	var records []model.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}

		rec := model.Record{Index: len(records), Fields: row}
		if col < len(row) && row[col] != "" {
			text := row[col]
			rec.Text = &text
		}
		records = append(records, rec)
	}

	return header, records, nil
}

// WriteRecords writes the header and rows with the score columns appended
func WriteRecords(w io.Writer, header []string, scored []model.ScoredRecord, cols Columns) error {
	writer := csv.NewWriter(w)

	out := append(append([]string{}, header...), cols.Score, cols.Hits)
	if cols.Present != "" {
		out = append(out, cols.Present)
	}
	if err := writer.Write(out); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range scored {
		row := make([]string, len(header), len(header)+3)
		copy(row, rec.Fields)
		row = append(row,
			strconv.FormatFloat(rec.Result.Score, 'f', 2, 64),
			strconv.Itoa(rec.Result.Hits),
		)
		if cols.Present != "" {
			row = append(row, strconv.FormatBool(rec.Result.Present()))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", rec.Index+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
