package importer

import (
	"io"

	"github.com/otabekj/dukon/internal/ledger"
)

// Source identifies the shape of an uploaded file.
type Source string

const (
	// SourceDaftar is a debt-book CSV: one client per row with an opening debt.
	SourceDaftar Source = "daftar"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.ClientParams, error)
}
