package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/otabekj/dukon/internal/ledger"
)

// Feed entry tags, kept in Uzbek as the desktop app displayed them.
const (
	TypeKirim  = "Kirim"  // cash in
	TypeChiqim = "Chiqim" // cash out
	TypeSavdo  = "Savdo"  // sale on a client statement
	TypeTolov  = "To'lov" // payment on a client statement
)

// ClientDebt is one dashboard row: what a client owes right now.
type ClientDebt struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TotalSales    float64 `json:"totalSales"`
	TotalPayments float64 `json:"totalPayments"`
	Balance       float64 `json:"balance"`
}

type SupplierDebt struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Type           ledger.SupplierType `json:"type"`
	TotalPurchases float64             `json:"totalPurchases"`
	TotalPayments  float64             `json:"totalPayments"`
	Balance        float64             `json:"balance"`
}

type EmployeeDebt struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	TotalAdvances float64 `json:"totalAdvances"`
}

// StatementEntry is one line of a client's chronological statement.
// Amount is positive for sales (debt) and negative for payments; Balance is
// the running balance after this entry.
type StatementEntry struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Balance     float64   `json:"balance"`
}

type Summary struct {
	TotalCashIn  float64 `json:"totalCashIn"`
	TotalCashOut float64 `json:"totalCashOut"`
	Kassa        float64 `json:"kassa"`
}

type TodaySummary struct {
	TodayCashIn  float64 `json:"todayCashIn"`
	TodayCashOut float64 `json:"todayCashOut"`
	TodayKassa   float64 `json:"todayKassa"`
}

// Entry is one row of the unified transaction feed. Outflows are negated.
type Entry struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

type ProductSales struct {
	Name          string  `json:"name"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}

// Snapshotter provides the current document without mutating it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*ledger.Document, error)
}

// Service folds raw ledger collections into report views. All methods are
// pure reads.
type Service struct {
	ledger Snapshotter
}

func NewService(l Snapshotter) *Service {
	return &Service{ledger: l}
}

// DateRange widens a pair of dates into an inclusive range: start at
// 00:00:00, end at the last instant of its day.
func DateRange(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())

	return from, to
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// Dashboard computes every client's balance:
// initial_debt + total sales - total payments.
func (s *Service) Dashboard(ctx context.Context) ([]ClientDebt, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	debts := make([]ClientDebt, 0, len(doc.Clients))

	for _, client := range doc.Clients {
		var totalSales, totalPayments float64

		for _, sale := range doc.Sales {
			if sale.ClientID == client.ID {
				totalSales += sale.TotalPrice
			}
		}

		for _, payment := range doc.Payments {
			if payment.ClientID == client.ID {
				totalPayments += payment.Amount
			}
		}

		debts = append(debts, ClientDebt{
			ID:            client.ID,
			Name:          client.Name,
			TotalSales:    totalSales,
			TotalPayments: totalPayments,
			Balance:       client.InitialDebt + totalSales - totalPayments,
		})
	}

	return debts, nil
}

func (s *Service) SupplierDebts(ctx context.Context) ([]SupplierDebt, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	debts := make([]SupplierDebt, 0, len(doc.Suppliers))

	for _, supplier := range doc.Suppliers {
		var totalPurchases, totalPayments float64

		for _, purchase := range doc.Purchases {
			if purchase.SupplierID == supplier.ID {
				totalPurchases += purchase.TotalPrice
			}
		}

		for _, payment := range doc.SupplierPayments {
			if payment.SupplierID == supplier.ID {
				totalPayments += payment.Amount
			}
		}

		debts = append(debts, SupplierDebt{
			ID:             supplier.ID,
			Name:           supplier.Name,
			Type:           supplier.Type,
			TotalPurchases: totalPurchases,
			TotalPayments:  totalPayments,
			Balance:        totalPurchases - totalPayments,
		})
	}

	return debts, nil
}

func (s *Service) EmployeeDebts(ctx context.Context) ([]EmployeeDebt, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	debts := make([]EmployeeDebt, 0, len(doc.Employees))

	for _, employee := range doc.Employees {
		var totalAdvances float64

		for _, advance := range doc.Advances {
			if advance.EmployeeID == employee.ID {
				totalAdvances += advance.Amount
			}
		}

		debts = append(debts, EmployeeDebt{
			ID:            employee.ID,
			Name:          employee.Name,
			Position:      employee.Position,
			TotalAdvances: totalAdvances,
		})
	}

	return debts, nil
}

// ClientStatement merges a client's sales and payments into one sequence
// sorted ascending by date, with a running balance seeded from the client's
// initial debt.
func (s *Service) ClientStatement(ctx context.Context, clientID int64) ([]StatementEntry, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var entries []StatementEntry

	for _, sale := range doc.Sales {
		if sale.ClientID != clientID {
			continue
		}

		entries = append(entries, StatementEntry{
			Date:        sale.SaleDate,
			Type:        TypeSavdo,
			Description: "Sotilgan mahsulot",
			Amount:      sale.TotalPrice,
		})
	}

	for _, payment := range doc.Payments {
		if payment.ClientID != clientID {
			continue
		}

		entries = append(entries, StatementEntry{
			Date:        payment.PaymentDate,
			Type:        TypeTolov,
			Description: "Mijoz tomonidan to'lov",
			Amount:      -payment.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := 0.0
	if client, ok := doc.ClientByID(clientID); ok {
		balance = client.InitialDebt
	}

	for i := range entries {
		balance += entries[i].Amount
		entries[i].Balance = balance
	}

	return entries, nil
}

func (s *Service) FinancialSummary(ctx context.Context) (*Summary, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var cashIn, cashOut float64

	for _, p := range doc.Payments {
		cashIn += p.Amount
	}

	for _, e := range doc.Expenses {
		cashOut += e.Amount
	}

	for _, p := range doc.SupplierPayments {
		cashOut += p.Amount
	}

	for _, a := range doc.Advances {
		cashOut += a.Amount
	}

	return &Summary{
		TotalCashIn:  cashIn,
		TotalCashOut: cashOut,
		Kassa:        cashIn - cashOut,
	}, nil
}

// TodaysFinancialSummary restricts the summary to records dated today,
// compared by local calendar date rather than a timezone-aware interval.
func (s *Service) TodaysFinancialSummary(ctx context.Context) (*TodaySummary, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(time.DateOnly)
	sameDay := func(t time.Time) bool { return t.Format(time.DateOnly) == today }

	var cashIn, cashOut float64

	for _, p := range doc.Payments {
		if sameDay(p.PaymentDate) {
			cashIn += p.Amount
		}
	}

	for _, e := range doc.Expenses {
		if sameDay(e.ExpenseDate) {
			cashOut += e.Amount
		}
	}

	for _, p := range doc.SupplierPayments {
		if sameDay(p.PaymentDate) {
			cashOut += p.Amount
		}
	}

	for _, a := range doc.Advances {
		if sameDay(a.AdvanceDate) {
			cashOut += a.Amount
		}
	}

	return &TodaySummary{
		TodayCashIn:  cashIn,
		TodayCashOut: cashOut,
		TodayKassa:   cashIn - cashOut,
	}, nil
}

// Transactions unions payments, expenses, supplier payments and advances
// into one feed, filters it to the inclusive range and sorts it descending
// by date. Outflow amounts come back negated.
func (s *Service) Transactions(ctx context.Context, start, end time.Time) ([]Entry, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	from, to := DateRange(start, end)

	var entries []Entry

	for _, p := range doc.Payments {
		if !within(p.PaymentDate, from, to) {
			continue
		}

		name := "Noma'lum mijoz"
		if c, ok := doc.ClientByID(p.ClientID); ok {
			name = c.Name
		}

		entries = append(entries, Entry{
			Date:        p.PaymentDate,
			Type:        TypeKirim,
			Description: fmt.Sprintf("To'lov: %s", name),
			Amount:      p.Amount,
		})
	}

	for _, e := range doc.Expenses {
		if !within(e.ExpenseDate, from, to) {
			continue
		}

		entries = append(entries, Entry{
			Date:        e.ExpenseDate,
			Type:        TypeChiqim,
			Description: fmt.Sprintf("Xarajat: %s", e.Description),
			Amount:      -e.Amount,
		})
	}

	for _, p := range doc.SupplierPayments {
		if !within(p.PaymentDate, from, to) {
			continue
		}

		name := "Noma'lum chorvachi"
		if sup, ok := doc.SupplierByID(p.SupplierID); ok {
			name = sup.Name
		}

		entries = append(entries, Entry{
			Date:        p.PaymentDate,
			Type:        TypeChiqim,
			Description: fmt.Sprintf("To'lov: %s", name),
			Amount:      -p.Amount,
		})
	}

	for _, a := range doc.Advances {
		if !within(a.AdvanceDate, from, to) {
			continue
		}

		name := "Noma'lum xodim"
		if emp, ok := doc.EmployeeByID(a.EmployeeID); ok {
			name = emp.Name
		}

		entries = append(entries, Entry{
			Date:        a.AdvanceDate,
			Type:        TypeChiqim,
			Description: fmt.Sprintf("Avans: %s", name),
			Amount:      -a.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// SalesReport groups sales in the range by product, in first-seen order.
func (s *Service) SalesReport(ctx context.Context, start, end time.Time) ([]ProductSales, error) {
	doc, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	from, to := DateRange(start, end)

	var order []int64

	totals := make(map[int64]*ProductSales)

	for _, sale := range doc.Sales {
		if !within(sale.SaleDate, from, to) {
			continue
		}

		row, ok := totals[sale.ProductID]
		if !ok {
			name := "Noma'lum mahsulot"
			if p, found := doc.ProductByID(sale.ProductID); found {
				name = p.Name
			}

			row = &ProductSales{Name: name}
			totals[sale.ProductID] = row
			order = append(order, sale.ProductID)
		}

		row.TotalQuantity += sale.Quantity
		row.TotalAmount += sale.TotalPrice
	}

	rows := make([]ProductSales, 0, len(order))
	for _, id := range order {
		rows = append(rows, *totals[id])
	}

	return rows, nil
}
