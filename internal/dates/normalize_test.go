package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/packing-slips/internal/types"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "workbook date cell", value: "2024-01-15 00:00:00", want: "01/15/2024"},
		{name: "year only", value: "2024", want: "01/01/2024"},
		{name: "iso date", value: "2024-01-15", want: "01/15/2024"},
		{name: "iso date with time", value: "2024-01-15 00:00:00", want: "01/15/2024"},
		{name: "already normalized", value: "01/15/2024", want: "01/15/2024"},
		{name: "short month first", value: "3/7/2024", want: "03/07/2024"},
		{name: "blank", value: "  ", want: ""},
		{name: "nan", value: "NaN", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_RewritesPresentColumns(t *testing.T) {
	rows := []types.Row{
		{"Order_number": "1001", "Ship_Date": "2024-02-01", "SO_Date": "2024-01-15 00:00:00"},
		{"Order_number": "1001", "Ship_Date": "", "SO_Date": "2024-01-16"},
	}

	require.NoError(t, Normalize(rows, DefaultColumns))

	assert.Equal(t, "02/01/2024", rows[0]["Ship_Date"])
	assert.Equal(t, "01/15/2024", rows[0]["SO_Date"])
	assert.Equal(t, "", rows[1]["Ship_Date"])
	assert.Equal(t, "01/16/2024", rows[1]["SO_Date"])
	assert.Equal(t, "1001", rows[0]["Order_number"])

	_, hasInvoiceDate := rows[0]["Invoice_Date"]
	assert.False(t, hasInvoiceDate, "absent columns must not be created")
}

func TestNormalize_Idempotent(t *testing.T) {
	rows := []types.Row{{"Date_Paid": "2024-12-31"}}

	require.NoError(t, Normalize(rows, DefaultColumns))
	require.NoError(t, Normalize(rows, DefaultColumns))

	assert.Equal(t, "12/31/2024", rows[0]["Date_Paid"])
}

func TestNormalize_UnparseableDate(t *testing.T) {
	rows := []types.Row{
		{"Invoice_Date": "2024-01-15"},
		{"Invoice_Date": "next tuesday-ish"},
	}

	err := Normalize(rows, DefaultColumns)
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Invoice_Date", formatErr.Column)
	assert.Equal(t, 1, formatErr.Row)
	assert.Equal(t, "next tuesday-ish", formatErr.Value)
}

func TestNormalize_NoDateColumns(t *testing.T) {
	rows := []types.Row{{"Order_number": "1001"}}
	assert.NoError(t, Normalize(rows, DefaultColumns))
}
