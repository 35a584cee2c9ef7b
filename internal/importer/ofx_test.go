package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.49
<FITID>JAN01
<NAME>NETFLIX.COM
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>2500.00
<FITID>JAN02
<NAME>PAYCHECK
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestOFXParser_Parse(t *testing.T) {
	parser := NewOFXParser()
	transactions, err := parser.Parse(context.Background(), strings.NewReader(testOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	netflix := transactions[0]
	assert.Equal(t, "JAN01", netflix.ID)
	assert.Equal(t, "NETFLIX.COM", netflix.Description)
	assert.InDelta(t, -15.49, netflix.Amount, 1e-9)
	assert.Equal(t, "1234567890", netflix.AccountID)
	assert.Equal(t, "2024-01-15", netflix.Date.Format("2006-01-02"))
	assert.True(t, netflix.IsCharge())
	assert.NotEmpty(t, netflix.Hash)

	deposit := transactions[1]
	assert.False(t, deposit.IsCharge())
}

func TestOFXParser_PreprocessFixesSGMLQuirks(t *testing.T) {
	parser := NewOFXParser()

	// Mixed-case severity and leading blank lines appear in real bank
	// exports and must not break parsing.
	quirky := "\n\n" + strings.ReplaceAll(testOFX, "<SEVERITY>INFO", "<SEVERITY>Info")
	transactions, err := parser.Parse(context.Background(), strings.NewReader(quirky))
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
}

func TestOFXParser_InvalidInput(t *testing.T) {
	parser := NewOFXParser()
	_, err := parser.Parse(context.Background(), strings.NewReader("not an ofx file"))
	require.Error(t, err)
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("pos purchase"))
	assert.True(t, isGenericDescription(""))
	assert.False(t, isGenericDescription("NETFLIX.COM"))
}
