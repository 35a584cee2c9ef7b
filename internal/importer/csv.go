package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/subwatch/internal/model"
)

// CSVParser parses generic ledger CSV exports with a header row naming
// at least date, description, and amount columns (any order, any
// case). Extra columns are ignored.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

var csvDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"01-02-2006",
}

// Parse reads a CSV ledger export and returns its transactions. A
// missing required header or an unparseable row is an error so a bad
// export never half-imports.
func (p *CSVParser) Parse(_ context.Context, r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	line := 1
	for {
		record, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", readErr)
		}
		line++

		txn, rowErr := parseRow(record, cols, line)
		if rowErr != nil {
			return nil, rowErr
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

// columnMap holds the indices of the required CSV columns.
type columnMap struct {
	date        int
	description int
	amount      int
	account     int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{date: -1, description: -1, amount: -1, account: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "posting date", "transaction date":
			cols.date = i
		case "description", "payee", "merchant", "name":
			cols.description = i
		case "amount":
			cols.amount = i
		case "account", "account id":
			cols.account = i
		}
	}

	if cols.date < 0 || cols.description < 0 || cols.amount < 0 {
		return cols, fmt.Errorf("CSV header must include date, description, and amount columns, got %v", header)
	}
	return cols, nil
}

func parseRow(record []string, cols columnMap, line int) (model.Transaction, error) {
	if len(record) <= cols.date || len(record) <= cols.description || len(record) <= cols.amount {
		return model.Transaction{}, fmt.Errorf("row %d: too few fields", line)
	}

	date, err := parseDate(record[cols.date])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("row %d: %w", line, err)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(record[cols.amount], ",", ""))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("row %d: parsing amount %q: %w", line, record[cols.amount], err)
	}

	txn := model.Transaction{
		Date:        date,
		Description: strings.TrimSpace(record[cols.description]),
		Amount:      amount.InexactFloat64(),
		Type:        "CSV",
	}
	if cols.account >= 0 && len(record) > cols.account {
		txn.AccountID = strings.TrimSpace(record[cols.account])
	}

	txn.Hash = txn.GenerateHash()
	txn.ID = txn.Hash[:16]
	return txn, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, format := range csvDateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
