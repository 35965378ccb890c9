package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
)

func TestReadRecords(t *testing.T) {
	input := "ticker,title,url\n" +
		"AAPL,Apple beats estimates,http://a\n" +
		"MSFT,,http://b\n" +
		"TSLA\n" +
		"NVDA,\"Nvidia, AMD rally\",http://c\n"

	header, records, err := ReadRecords(strings.NewReader(input), "title")
	require.NoError(t, err)
	assert.Equal(t, []string{"ticker", "title", "url"}, header)
	require.Len(t, records, 4)

	require.NotNil(t, records[0].Text)
	assert.Equal(t, "Apple beats estimates", *records[0].Text)
	assert.Nil(t, records[1].Text, "empty cell is null")
	assert.Nil(t, records[2].Text, "short row is null")
	require.NotNil(t, records[3].Text)
	assert.Equal(t, "Nvidia, AMD rally", *records[3].Text)

	for i, rec := range records {
		assert.Equal(t, i, rec.Index)
	}
}

func TestReadRecords_Errors(t *testing.T) {
	_, _, err := ReadRecords(strings.NewReader("ticker,headline\nAAPL,x\n"), "title")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, _, err = ReadRecords(strings.NewReader(""), "title")
	assert.Error(t, err)

	_, _, err = ReadRecords(strings.NewReader("title\n\"unterminated\n"), "title")
	assert.Error(t, err)
}

func TestWriteRecords(t *testing.T) {
	header := []string{"ticker", "title"}
	scored := []model.ScoredRecord{
		{Record: model.Record{Index: 0, Fields: []string{"AAPL", "bullish"}}, Result: score.Result{Score: 0.96, Hits: 1}},
		{Record: model.Record{Index: 1, Fields: []string{"MSFT"}}, Result: score.Result{}},
		{Record: model.Record{Index: 2, Fields: []string{"TSLA", "not bullish"}}, Result: score.Result{Score: -0.96, Hits: 1}},
	}

	var buf bytes.Buffer
	err := WriteRecords(&buf, header, scored, Columns{Score: "sentiment_score", Hits: "sentiment_hits", Present: "sentiment_present"})
	require.NoError(t, err)

	expected := "ticker,title,sentiment_score,sentiment_hits,sentiment_present\n" +
		"AAPL,bullish,0.96,1,true\n" +
		"MSFT,,0.00,0,false\n" +
		"TSLA,not bullish,-0.96,1,true\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteRecords_NoPresentColumn(t *testing.T) {
	scored := []model.ScoredRecord{
		{Record: model.Record{Fields: []string{"very bullish"}}, Result: score.Result{Score: 1, Hits: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, []string{"title"}, scored, Columns{Score: "s", Hits: "h"}))
	assert.Equal(t, "title,s,h\nvery bullish,1.00,1\n", buf.String())
}
