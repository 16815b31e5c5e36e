package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"billscan/pkg/services/bills"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"1"}, {"2", "x"}}, []columnAlignment{alignRight})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "x")
	assert.Equal(t, "", renderTable(nil, nil, nil))
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, bills.Summary{Message: bills.NoBillsMessage})
	assert.Equal(t, bills.NoBillsMessage+"\n", buf.String())

	buf.Reset()
	printSummary(&buf, bills.Summary{
		Bills:          []bills.Row{{Number: 1, ID: 7, Name: "Fuel", FormattedAmount: "$40.00"}},
		FormattedTotal: "$40.00",
	})
	assert.True(t, strings.HasPrefix(buf.String(), "Total value of all bills: $40.00\n"))
	assert.Contains(t, buf.String(), "Fuel")
	assert.Contains(t, buf.String(), "Bill Number")
}

func TestBillsCommandEmptyStore(t *testing.T) {
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "bills.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bills", "--env", filepath.Join(t.TempDir(), "none.env")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute(context.Background()))
	assert.Contains(t, out.String(), bills.NoBillsMessage)
}
