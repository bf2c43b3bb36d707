package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ledger", "Summary"}, f.GetSheetList())

	ledger, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, ledger, 4)
	assert.Equal(t, []string{"Date", "Description", "Category", "Debit", "Credit"}, ledger[0])
	assert.Equal(t, "Swiggy Order", ledger[1][1])
	assert.Equal(t, "250", ledger[1][3])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Debit", "400"}, summary[0])
	assert.Equal(t, []string{"Top Merchants"}, summary[4])
	assert.Equal(t, []string{"Swiggy Order", "250"}, summary[5])

	value, err := f.GetCellValue("Summary", "A13")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Spends", value)
}

func TestForPath(t *testing.T) {
	w, err := ForPath("out/ledger.CSV", true)
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)
	assert.True(t, w.(*CSVWriter).IncludeSummary)

	w, err = ForPath("report.xlsx", false)
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	_, err = ForPath("report.json", false)
	assert.Error(t, err)
}
