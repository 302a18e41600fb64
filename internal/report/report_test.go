package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/splitcosts/internal/calculator"
	"github.com/mmynk/splitcosts/internal/models"
)

func TestWriter(t *testing.T) {
	sheet := models.Sheet{
		Header: []string{"Alice", "Bob", ""},
		Rows: []models.Row{
			{Line: 2, Cells: []string{"10", "", "taxi"}},
		},
	}
	balances := []calculator.MemberBalance{
		{MemberName: "Alice", NetBalance: decimal.RequireFromString("-5")},
		{MemberName: "Bob", NetBalance: decimal.RequireFromString("5")},
	}
	settlement := &calculator.Settlement{
		Transfers: []models.Transfer{
			{From: "Alice", To: "Bob", Amount: decimal.RequireFromString("5")},
		},
	}

	var buf bytes.Buffer
	w := New(&buf, 8)
	w.WriteSheet(sheet)
	w.WriteBalances(sheet.Header, balances, 2)
	w.WriteSettlement(settlement, 2)

	want := "" +
		"Alice   Bob             \n" +
		"------------------------\n" +
		"10              taxi    \n" +
		"------------------------\n" +
		"-5.00   5.00            \n" +
		"\n" +
		"Transfers:\n" +
		"  Alice -> Bob : 5.00\n"
	assert.Equal(t, want, buf.String())
	assert.NoError(t, w.Err())
}

func TestWriter_ImbalanceNote(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, 0)
	w.WriteSettlement(&calculator.Settlement{Imbalance: decimal.RequireFromString("-0.01")}, 2)

	assert.Equal(t, "Note: total balance is off by -0.01\n\nTransfers:\n", buf.String())
}

func TestWriter_LongCellsAreNotTruncated(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, 3)
	w.WriteSheet(models.Sheet{Header: []string{"Bartholomew", "Al"}})

	assert.Equal(t, "BartholomewAl \n------\n", buf.String())
}

func TestNew_DefaultWidth(t *testing.T) {
	w := New(&bytes.Buffer{}, -1)
	assert.Equal(t, DefaultWidth, w.width)
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriter_StickyError(t *testing.T) {
	fw := &failingWriter{}
	w := New(fw, 5)
	w.WriteSheet(models.Sheet{Header: []string{"A"}, Rows: []models.Row{{Cells: []string{"1"}}}})

	assert.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 1, fw.calls)
}
