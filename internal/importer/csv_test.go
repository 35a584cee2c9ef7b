package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	input := `Date,Description,Amount,Account
2024-01-01,NETFLIX.COM,-15.49,acct-1
2024-01-15,PAYCHECK,"2,500.00",acct-1
01/02/2024,SPOTIFY USA,-9.99,acct-2
`
	parser := NewCSVParser()
	transactions, err := parser.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, "NETFLIX.COM", transactions[0].Description)
	assert.InDelta(t, -15.49, transactions[0].Amount, 1e-9)
	assert.Equal(t, "2024-01-01", transactions[0].Date.Format("2006-01-02"))
	assert.Equal(t, "acct-1", transactions[0].AccountID)
	assert.NotEmpty(t, transactions[0].ID)
	assert.NotEmpty(t, transactions[0].Hash)

	// Thousands separators and alternate date formats parse too.
	assert.InDelta(t, 2500.00, transactions[1].Amount, 1e-9)
	assert.Equal(t, "2024-01-02", transactions[2].Date.Format("2006-01-02"))
}

func TestCSVParser_HeaderAliases(t *testing.T) {
	input := `Posting Date,Payee,Amount
01/05/2024,GYM MEMBERSHIP,-40.00
`
	parser := NewCSVParser()
	transactions, err := parser.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "GYM MEMBERSHIP", transactions[0].Description)
}

func TestCSVParser_MissingColumns(t *testing.T) {
	parser := NewCSVParser()
	_, err := parser.Parse(context.Background(), strings.NewReader("Date,Memo\n2024-01-01,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestCSVParser_BadRow(t *testing.T) {
	input := `Date,Description,Amount
not-a-date,NETFLIX.COM,-15.49
`
	parser := NewCSVParser()
	_, err := parser.Parse(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestForFile(t *testing.T) {
	parser, err := ForFile("export.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, parser)

	parser, err = ForFile("statement.QFX")
	require.NoError(t, err)
	assert.IsType(t, &OFXParser{}, parser)

	_, err = ForFile("notes.txt")
	require.Error(t, err)
}
