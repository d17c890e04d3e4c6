package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/otabekj/dukon/internal/export"
	"github.com/otabekj/dukon/internal/ledger"
)

type stubSnapshotter struct {
	doc *ledger.Document
}

func (s stubSnapshotter) Snapshot(_ context.Context) (*ledger.Document, error) {
	return s.doc, nil
}

func sampleDoc() *ledger.Document {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka", InitialDebt: 50000}}
	doc.Products = []ledger.Product{{ID: 10, Name: "Qo'y go'shti", Price: 85000}}
	doc.Sales = []ledger.Sale{
		{ID: 100, ClientID: 1, ProductID: 10, Quantity: 2, TotalPrice: 170000, SaleDate: time.Now()},
		{ID: 101, ClientID: 1, ProductID: 10, Quantity: 1, TotalPrice: 85000, SaleDate: time.Now().AddDate(0, 0, -40)},
	}
	doc.Suppliers = []ledger.Supplier{{ID: 2, Name: "Karim chorvachi", Type: ledger.SupplierQochqor}}
	doc.Employees = []ledger.Employee{{ID: 3, Name: "Sardor", Position: "qassob"}}

	return doc
}

func TestService_Dataset_PeriodFiltering(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	ds, err := svc.Dataset(context.Background(), export.PeriodDaily)
	require.NoError(t, err)

	// The 40-day-old sale falls outside every period.
	require.Len(t, ds.Sales, 1)
	assert.Equal(t, int64(100), ds.Sales[0].ID)
	assert.Equal(t, "Ali aka", ds.Sales[0].ClientName)

	// Entity collections always export in full.
	assert.Len(t, ds.Clients, 1)
	assert.Len(t, ds.Suppliers, 1)
	assert.Len(t, ds.Employees, 1)
}

func TestService_Dataset_UnknownPeriod(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	_, err := svc.Dataset(context.Background(), "yearly")
	assert.Error(t, err)
}

func TestService_Export_Excel(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	artifact, err := svc.Export(context.Background(), export.FormatExcel, export.PeriodMonthly)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(artifact.Filename, "hisobot-monthly-"))
	assert.True(t, strings.HasSuffix(artifact.Filename, ".xlsx"))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		artifact.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		"Mijozlar", "Mahsulotlar", "Savdolar", "Mijoz To'lovlari", "Xarajatlar",
		"Chorvachilar", "Mol Xaridi", "Chorvachilarga To'lov", "Xodimlar", "Avanslar",
	}, f.GetSheetList())

	rows, err := f.GetRows("Mijozlar")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ali aka", rows[1][1])
}

func TestService_Export_PDF(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	artifact, err := svc.Export(context.Background(), export.FormatPDF, export.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.True(t, strings.HasSuffix(artifact.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF")))
	assert.True(t, bytes.HasSuffix(artifact.Data, []byte("%%EOF")))
}

func TestService_Export_Word(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	artifact, err := svc.Export(context.Background(), export.FormatWord, export.PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, "application/msword", artifact.ContentType)
	assert.True(t, strings.HasSuffix(artifact.Filename, ".doc"))
	assert.Contains(t, string(artifact.Data), "<html>")
	assert.Contains(t, string(artifact.Data), "Ali aka")
}

func TestService_Export_UnknownFormat(t *testing.T) {
	svc := export.NewService(stubSnapshotter{sampleDoc()})

	_, err := svc.Export(context.Background(), "csv", export.PeriodDaily)
	assert.Error(t, err)
}
