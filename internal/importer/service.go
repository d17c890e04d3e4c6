package importer

import (
	"fmt"
	"io"

	"github.com/otabekj/dukon/internal/importer/daftar"
	"github.com/otabekj/dukon/internal/ledger"
)

type Service struct {
	daftarImporter Importer
}

func NewService() *Service {
	return &Service{
		daftarImporter: daftar.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]ledger.ClientParams, error) {
	var imp Importer

	switch source {
	case SourceDaftar:
		imp = s.daftarImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return imp.Parse(r)
}
