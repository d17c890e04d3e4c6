package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/otabekj/dukon/internal/ledger"
)

type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
	FormatWord  Format = "word"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Dataset is the exportable view of the ledger: all ten collections, with
// sales and payments pre-joined to human-readable names.
type Dataset struct {
	Clients          []ledger.Client          `json:"clients"`
	Products         []ledger.Product         `json:"products"`
	Sales            []ledger.SaleDetails     `json:"sales"`
	Payments         []ledger.PaymentDetails  `json:"payments"`
	Expenses         []ledger.Expense         `json:"expenses"`
	Suppliers        []ledger.Supplier        `json:"suppliers"`
	Purchases        []ledger.Purchase        `json:"purchases"`
	SupplierPayments []ledger.SupplierPayment `json:"supplier_payments"`
	Employees        []ledger.Employee        `json:"employees"`
	Advances         []ledger.Advance         `json:"advances"`
}

// Artifact is a rendered report ready to hand to the caller.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Snapshotter interface {
	Snapshot(ctx context.Context) (*ledger.Document, error)
}

type Service struct {
	ledger Snapshotter
}

func NewService(l Snapshotter) *Service {
	return &Service{ledger: l}
}

// periodStart returns the inclusive lower bound for a period.
// Daily covers today; weekly and monthly cover the trailing 7 and 30 days.
func periodStart(period Period, now time.Time) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodDaily:
		return midnight, nil
	case PeriodWeekly:
		return midnight.AddDate(0, 0, -6), nil
	case PeriodMonthly:
		return midnight.AddDate(0, 0, -29), nil
	}

	return time.Time{}, fmt.Errorf("unknown period: %s", period)
}

// Dataset assembles the period-scoped export. Dated collections are filtered
// to the window; clients, products, suppliers and employees always export in
// full so references stay resolvable.
func (s *Service) Dataset(ctx context.Context, period Period) (*Dataset, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	from, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Clients:          doc.Clients,
		Products:         doc.Products,
		Sales:            []ledger.SaleDetails{},
		Payments:         []ledger.PaymentDetails{},
		Expenses:         []ledger.Expense{},
		Suppliers:        doc.Suppliers,
		Purchases:        []ledger.Purchase{},
		SupplierPayments: []ledger.SupplierPayment{},
		Employees:        doc.Employees,
		Advances:         []ledger.Advance{},
	}

	for _, sale := range doc.SalesDetails() {
		if !sale.SaleDate.Before(from) {
			ds.Sales = append(ds.Sales, sale)
		}
	}

	for _, payment := range doc.PaymentsDetails() {
		if !payment.PaymentDate.Before(from) {
			ds.Payments = append(ds.Payments, payment)
		}
	}

	for _, expense := range doc.Expenses {
		if !expense.ExpenseDate.Before(from) {
			ds.Expenses = append(ds.Expenses, expense)
		}
	}

	for _, purchase := range doc.Purchases {
		if !purchase.PurchaseDate.Before(from) {
			ds.Purchases = append(ds.Purchases, purchase)
		}
	}

	for _, payment := range doc.SupplierPayments {
		if !payment.PaymentDate.Before(from) {
			ds.SupplierPayments = append(ds.SupplierPayments, payment)
		}
	}

	for _, advance := range doc.Advances {
		if !advance.AdvanceDate.Before(from) {
			ds.Advances = append(ds.Advances, advance)
		}
	}

	return ds, nil
}

// Export renders the period's dataset in the requested format.
func (s *Service) Export(ctx context.Context, format Format, period Period) (*Artifact, error) {
	ds, err := s.Dataset(ctx, period)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		ext         string
		contentType string
	)

	switch format {
	case FormatExcel:
		data, err = renderExcel(ds)
		if err != nil {
			return nil, fmt.Errorf("rendering excel: %w", err)
		}

		ext = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		content, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding dataset: %w", err)
		}

		data = renderPDF(string(content))
		ext = "pdf"
		contentType = "application/pdf"
	case FormatWord:
		content, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding dataset: %w", err)
		}

		data = renderWord(string(content))
		ext = "doc"
		contentType = "application/msword"
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("hisobot-%s-%s.%s", period, time.Now().Format(time.DateOnly), ext),
		ContentType: contentType,
		Data:        data,
	}, nil
}
