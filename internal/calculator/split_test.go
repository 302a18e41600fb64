package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDecimal compares decimals by value, ignoring exponent differences.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	expected := decimal.RequireFromString(want)
	assert.Truef(t, expected.Equal(got), "want %s, got %s %v", expected, got, msgAndArgs)
}

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
	}{
		{name: "even split", total: "10", n: 2},
		{name: "thirds", total: "10", n: 3},
		{name: "cents in sevenths", total: "100.01", n: 7},
		{name: "negative total", total: "-55.5", n: 4},
		{name: "zero total", total: "0", n: 5},
		{name: "single sharer", total: "42.42", n: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			shares, err := SplitEvenly(total, tt.n)
			require.NoError(t, err)
			require.Len(t, shares, tt.n)

			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equal(total), "shares sum to %s, want %s", sum, total)
		})
	}

	t.Run("thirds are exact to the share scale", func(t *testing.T) {
		shares, err := SplitEvenly(decimal.NewFromInt(10), 3)
		require.NoError(t, err)
		assertDecimal(t, "3.333333333333333333333333", shares[0])
		assertDecimal(t, "3.333333333333333333333333", shares[1])
		assertDecimal(t, "3.333333333333333333333334", shares[2])
	})

	t.Run("no sharers", func(t *testing.T) {
		_, err := SplitEvenly(decimal.NewFromInt(10), 0)
		assert.ErrorIs(t, err, ErrNoSharers)
	})
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind cellKind
		want     string
		wantErr  bool
	}{
		{name: "plain amount", raw: "12.50", wantKind: cellShared, want: "12.50"},
		{name: "surrounding spaces", raw: "  7 ", wantKind: cellShared, want: "7"},
		{name: "negative refund", raw: "-3", wantKind: cellShared, want: "-3"},
		{name: "blank", raw: "", wantKind: cellShared, want: "0"},
		{name: "whitespace only", raw: "   ", wantKind: cellShared, want: "0"},
		{name: "absent marker", raw: "-", wantKind: cellAbsent, want: "0"},
		{name: "absent marker with spaces", raw: " - ", wantKind: cellAbsent, want: "0"},
		{name: "excluded", raw: "(30)", wantKind: cellExcluded, want: "30"},
		{name: "excluded with inner spaces", raw: "( 4.25 )", wantKind: cellExcluded, want: "4.25"},
		{name: "text", raw: "abc", wantErr: true},
		{name: "empty parentheses", raw: "()", wantErr: true},
		{name: "text in parentheses", raw: "(abc)", wantErr: true},
		{name: "unbalanced parenthesis", raw: "(5", wantErr: true},
		{name: "double dash", raw: "--", wantErr: true},
		{name: "explicit plus sign", raw: "+2.5", wantKind: cellShared, want: "2.5"},
		{name: "exponent notation", raw: "1e3", wantErr: true},
		{name: "exponent notation in parentheses", raw: "(1e-5)", wantErr: true},
		{name: "huge negative exponent", raw: "1e-2000000", wantErr: true},
		{name: "trailing dot", raw: "5.", wantErr: true},
		{name: "thousands separator", raw: "1,000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, amount, err := parseCell(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assertDecimal(t, tt.want, amount)
		})
	}
}
