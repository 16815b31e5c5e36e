package totals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receipt = `CORNER GROCERY
Milk            3.49
Bread           2.99
Subtotal        6.48
Tax             0.52
TOTAL          $7.00
Cash           10.00
Change          3.00`

func TestFindHighestTotal(t *testing.T) {
	t.Run("picks largest keyword line", func(t *testing.T) {
		v, ok := FindHighestTotal(receipt)
		require.True(t, ok)
		assert.Equal(t, 7.00, v)
	})

	t.Run("thousands separator", func(t *testing.T) {
		v, ok := FindHighestTotal("Grand Total: $1,234.56")
		require.True(t, ok)
		assert.InDelta(t, 1234.56, v, 0.0001)
	})

	t.Run("largest match on a line", func(t *testing.T) {
		v, ok := FindHighestTotal("Total 2 items 45.00")
		require.True(t, ok)
		assert.Equal(t, 45.00, v)
	})

	t.Run("ignores lines without keyword", func(t *testing.T) {
		_, ok := FindHighestTotal("Cash 100.00\nChange 3.00")
		assert.False(t, ok)
	})

	t.Run("keyword without amount", func(t *testing.T) {
		_, ok := FindHighestTotal("Total\nThank you")
		assert.False(t, ok)
	})

	t.Run("empty text", func(t *testing.T) {
		_, ok := FindHighestTotal("")
		assert.False(t, ok)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		v, ok := FindHighestTotal("Item 1.00\r\nTotal 9.99\r\n")
		require.True(t, ok)
		assert.Equal(t, 9.99, v)
	})
}

func TestScannerScan(t *testing.T) {
	candidates := NewScanner().Scan(receipt)
	require.Len(t, candidates, 2)

	assert.Equal(t, 4, candidates[0].Line)
	assert.Equal(t, 6.48, candidates[0].Value)
	assert.Equal(t, 6, candidates[1].Line)
	assert.Equal(t, "TOTAL          $7.00", candidates[1].Text)
}

func TestScannerHighestTieKeepsFirstLine(t *testing.T) {
	c, ok := NewScanner().Highest("total 5.00\nsubtotal 5.00")
	require.True(t, ok)
	assert.Equal(t, 1, c.Line)
}

func TestScannerCustomKeywords(t *testing.T) {
	s := NewScanner("Amount Due", "BALANCE")
	c, ok := s.Highest("Total 10.00\nAmount due 12.00\nbalance 3.00")
	require.True(t, ok)
	assert.Equal(t, 12.00, c.Value)
	assert.Equal(t, 2, c.Line)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$7.50", FormatCurrency(7.5))
	assert.Equal(t, "$1,234.56", FormatCurrency(1234.56))
	assert.Equal(t, "-$12.00", FormatCurrency(-12))
}
