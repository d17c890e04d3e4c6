package export

import (
	"bytes"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names match the ones the desktop app wrote, so existing spreadsheets
// and the new ones line up.
type sheet struct {
	name   string
	header []any
	rows   [][]any
}

func excelDate(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func buildSheets(ds *Dataset) []sheet {
	clients := sheet{name: "Mijozlar", header: []any{"id", "name", "phone", "address", "initial_debt"}}
	for _, c := range ds.Clients {
		clients.rows = append(clients.rows, []any{c.ID, c.Name, c.Phone, c.Address, c.InitialDebt})
	}

	products := sheet{name: "Mahsulotlar", header: []any{"id", "name", "price"}}
	for _, p := range ds.Products {
		products.rows = append(products.rows, []any{p.ID, p.Name, p.Price})
	}

	sales := sheet{name: "Savdolar", header: []any{"id", "client", "product", "quantity", "total_price", "sale_date"}}
	for _, s := range ds.Sales {
		sales.rows = append(sales.rows, []any{s.ID, s.ClientName, s.ProductName, s.Quantity, s.TotalPrice, excelDate(s.SaleDate)})
	}

	payments := sheet{name: "Mijoz To'lovlari", header: []any{"id", "client", "amount", "payment_date"}}
	for _, p := range ds.Payments {
		payments.rows = append(payments.rows, []any{p.ID, p.ClientName, p.Amount, excelDate(p.PaymentDate)})
	}

	expenses := sheet{name: "Xarajatlar", header: []any{"id", "description", "amount", "expense_date"}}
	for _, e := range ds.Expenses {
		expenses.rows = append(expenses.rows, []any{e.ID, e.Description, e.Amount, excelDate(e.ExpenseDate)})
	}

	suppliers := sheet{name: "Chorvachilar", header: []any{"id", "name", "type"}}
	for _, s := range ds.Suppliers {
		suppliers.rows = append(suppliers.rows, []any{s.ID, s.Name, string(s.Type)})
	}

	purchases := sheet{name: "Mol Xaridi", header: []any{"id", "supplier_id", "weight", "price_per_kg", "total_price", "purchase_date"}}
	for _, p := range ds.Purchases {
		purchases.rows = append(purchases.rows, []any{p.ID, p.SupplierID, p.Weight, p.PricePerKg, p.TotalPrice, excelDate(p.PurchaseDate)})
	}

	supplierPayments := sheet{name: "Chorvachilarga To'lov", header: []any{"id", "supplier_id", "amount", "payment_date"}}
	for _, p := range ds.SupplierPayments {
		supplierPayments.rows = append(supplierPayments.rows, []any{p.ID, p.SupplierID, p.Amount, excelDate(p.PaymentDate)})
	}

	employees := sheet{name: "Xodimlar", header: []any{"id", "name", "position"}}
	for _, e := range ds.Employees {
		employees.rows = append(employees.rows, []any{e.ID, e.Name, e.Position})
	}

	advances := sheet{name: "Avanslar", header: []any{"id", "employee_id", "amount", "advance_date"}}
	for _, a := range ds.Advances {
		advances.rows = append(advances.rows, []any{a.ID, a.EmployeeID, a.Amount, excelDate(a.AdvanceDate)})
	}

	return []sheet{
		clients, products, sales, payments, expenses,
		suppliers, purchases, supplierPayments, employees, advances,
	}
}

func renderExcel(ds *Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range buildSheets(ds) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sh.name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sh.name); err != nil {
				return nil, err
			}
		}

		if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return nil, err
		}

		for rowIdx, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return nil, err
			}

			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
