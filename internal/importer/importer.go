// Package importer loads exported ledger files (OFX/QFX and CSV) into
// the local transaction store. It reads files the user already
// downloaded from their bank; it never talks to a bank itself.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/subwatch/internal/model"
)

// Parser converts one exported ledger file into transactions.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error)
}

// ForFile picks a parser based on the file extension.
func ForFile(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return NewOFXParser(), nil
	case ".csv":
		return NewCSVParser(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger file type: %s", filepath.Ext(path))
	}
}

// ParseFile opens and parses a single ledger file.
func ParseFile(ctx context.Context, path string) ([]model.Transaction, error) {
	parser, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	transactions, err := parser.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return transactions, nil
}
