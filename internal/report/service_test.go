package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otabekj/dukon/internal/ledger"
	"github.com/otabekj/dukon/internal/report"
)

type stubSnapshotter struct {
	doc *ledger.Document
}

func (s stubSnapshotter) Snapshot(_ context.Context) (*ledger.Document, error) {
	return s.doc, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestService_Dashboard(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{
		{ID: 1, Name: "Ali aka", InitialDebt: 0},
		{ID: 2, Name: "Vali aka", InitialDebt: 30000},
	}
	doc.Sales = []ledger.Sale{
		{ID: 100, ClientID: 1, TotalPrice: 170000},
		{ID: 101, ClientID: 2, TotalPrice: 50000},
	}
	doc.Payments = []ledger.Payment{
		{ID: 200, ClientID: 1, Amount: 70000},
	}

	svc := report.NewService(stubSnapshotter{doc})

	debts, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, debts, 2)

	assert.Equal(t, 170000.0, debts[0].TotalSales)
	assert.Equal(t, 70000.0, debts[0].TotalPayments)
	assert.Equal(t, 100000.0, debts[0].Balance)

	// Initial debt carried from the paper book counts into the balance.
	assert.Equal(t, 80000.0, debts[1].Balance)
}

func TestService_SupplierDebts(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Suppliers = []ledger.Supplier{
		{ID: 1, Name: "Karim chorvachi", Type: ledger.SupplierQoramol},
	}
	doc.Purchases = []ledger.Purchase{
		{ID: 100, SupplierID: 1, TotalPrice: 7200000},
	}
	doc.SupplierPayments = []ledger.SupplierPayment{
		{ID: 200, SupplierID: 1, Amount: 5000000},
	}

	svc := report.NewService(stubSnapshotter{doc})

	debts, err := svc.SupplierDebts(context.Background())
	require.NoError(t, err)
	require.Len(t, debts, 1)

	assert.Equal(t, ledger.SupplierQoramol, debts[0].Type)
	assert.Equal(t, 2200000.0, debts[0].Balance)
}

func TestService_EmployeeDebts(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Employees = []ledger.Employee{{ID: 1, Name: "Sardor", Position: "qassob"}}
	doc.Advances = []ledger.Advance{
		{ID: 100, EmployeeID: 1, Amount: 200000},
		{ID: 101, EmployeeID: 1, Amount: 150000},
	}

	svc := report.NewService(stubSnapshotter{doc})

	debts, err := svc.EmployeeDebts(context.Background())
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, 350000.0, debts[0].TotalAdvances)
}

func TestService_ClientStatement(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka", InitialDebt: 20000}}
	doc.Sales = []ledger.Sale{
		{ID: 100, ClientID: 1, TotalPrice: 170000, SaleDate: day(2024, 1, 10)},
		{ID: 102, ClientID: 2, TotalPrice: 99999, SaleDate: day(2024, 1, 11)},
	}
	doc.Payments = []ledger.Payment{
		{ID: 200, ClientID: 1, Amount: 70000, PaymentDate: day(2024, 1, 12)},
	}

	svc := report.NewService(stubSnapshotter{doc})

	entries, err := svc.ClientStatement(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ascending by date, running balance seeded with the initial debt.
	assert.Equal(t, report.TypeSavdo, entries[0].Type)
	assert.Equal(t, 170000.0, entries[0].Amount)
	assert.Equal(t, 190000.0, entries[0].Balance)

	assert.Equal(t, report.TypeTolov, entries[1].Type)
	assert.Equal(t, -70000.0, entries[1].Amount)
	assert.Equal(t, 120000.0, entries[1].Balance)
}

func TestService_FinancialSummary(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Payments = []ledger.Payment{{ID: 1, Amount: 500000}}
	doc.Expenses = []ledger.Expense{{ID: 2, Amount: 100000}}
	doc.SupplierPayments = []ledger.SupplierPayment{{ID: 3, Amount: 150000}}
	doc.Advances = []ledger.Advance{{ID: 4, Amount: 50000}}

	svc := report.NewService(stubSnapshotter{doc})

	summary, err := svc.FinancialSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 500000.0, summary.TotalCashIn)
	assert.Equal(t, 300000.0, summary.TotalCashOut)
	assert.Equal(t, 200000.0, summary.Kassa)
}

func TestService_TodaysFinancialSummary(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Payments = []ledger.Payment{
		{ID: 1, Amount: 80000, PaymentDate: time.Now()},
		{ID: 2, Amount: 999999, PaymentDate: time.Now().AddDate(0, 0, -1)},
	}
	doc.Expenses = []ledger.Expense{
		{ID: 3, Amount: 30000, ExpenseDate: time.Now()},
	}

	svc := report.NewService(stubSnapshotter{doc})

	summary, err := svc.TodaysFinancialSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 80000.0, summary.TodayCashIn)
	assert.Equal(t, 30000.0, summary.TodayCashOut)
	assert.Equal(t, 50000.0, summary.TodayKassa)
}

func TestService_Transactions(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
	doc.Suppliers = []ledger.Supplier{{ID: 2, Name: "Karim chorvachi"}}
	doc.Employees = []ledger.Employee{{ID: 3, Name: "Sardor"}}

	doc.Payments = []ledger.Payment{
		// Late on the end day; the range widens to the end of that day.
		{ID: 10, ClientID: 1, Amount: 70000, PaymentDate: time.Date(2024, 1, 1, 23, 30, 0, 0, time.Local)},
		// Outside the range, must not appear.
		{ID: 11, ClientID: 1, Amount: 999999, PaymentDate: day(2024, 1, 2)},
	}
	doc.Expenses = []ledger.Expense{
		{ID: 20, Description: "benzin", Amount: 40000, ExpenseDate: day(2024, 1, 1)},
	}
	doc.SupplierPayments = []ledger.SupplierPayment{
		{ID: 30, SupplierID: 2, Amount: 100000, PaymentDate: day(2024, 1, 1)},
	}
	doc.Advances = []ledger.Advance{
		{ID: 40, EmployeeID: 99, Amount: 50000, AdvanceDate: day(2024, 1, 1)},
	}

	svc := report.NewService(stubSnapshotter{doc})

	entries, err := svc.Transactions(context.Background(), day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Descending by date: the 23:30 payment comes first.
	assert.Equal(t, report.TypeKirim, entries[0].Type)
	assert.Equal(t, "To'lov: Ali aka", entries[0].Description)
	assert.Equal(t, 70000.0, entries[0].Amount)

	byDescription := make(map[string]report.Entry, len(entries))
	for _, e := range entries {
		byDescription[e.Description] = e
	}

	assert.Equal(t, -40000.0, byDescription["Xarajat: benzin"].Amount)
	assert.Equal(t, -100000.0, byDescription["To'lov: Karim chorvachi"].Amount)

	// Dangling employee reference renders the placeholder.
	advance, ok := byDescription["Avans: Noma'lum xodim"]
	require.True(t, ok)
	assert.Equal(t, report.TypeChiqim, advance.Type)
	assert.Equal(t, -50000.0, advance.Amount)
}

func TestService_SalesReport(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Products = []ledger.Product{
		{ID: 10, Name: "Qo'y go'shti", Price: 85000},
		{ID: 11, Name: "Mol go'shti", Price: 75000},
	}
	doc.Sales = []ledger.Sale{
		{ID: 100, ProductID: 10, Quantity: 2, TotalPrice: 170000, SaleDate: day(2024, 1, 5)},
		{ID: 101, ProductID: 11, Quantity: 1, TotalPrice: 75000, SaleDate: day(2024, 1, 6)},
		{ID: 102, ProductID: 10, Quantity: 1, TotalPrice: 85000, SaleDate: day(2024, 1, 7)},
		// Deleted product keeps selling history under a placeholder.
		{ID: 103, ProductID: 99, Quantity: 3, TotalPrice: 30000, SaleDate: day(2024, 1, 7)},
		// Outside the range.
		{ID: 104, ProductID: 10, Quantity: 9, TotalPrice: 765000, SaleDate: day(2024, 2, 1)},
	}

	svc := report.NewService(stubSnapshotter{doc})

	rows, err := svc.SalesReport(context.Background(), day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// First-seen order.
	assert.Equal(t, "Qo'y go'shti", rows[0].Name)
	assert.Equal(t, 3.0, rows[0].TotalQuantity)
	assert.Equal(t, 255000.0, rows[0].TotalAmount)

	assert.Equal(t, "Mol go'shti", rows[1].Name)
	assert.Equal(t, "Noma'lum mahsulot", rows[2].Name)
}
