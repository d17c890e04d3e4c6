package ledger

import "time"

// SupplierType categorizes a livestock provider by animal kind.
type SupplierType string

const (
	SupplierQoramol SupplierType = "qoramol"
	SupplierQochqor SupplierType = "qochqor"
)

// Placeholder names shown when a joined record references a deleted entity.
const (
	UnknownClient   = "Noma'lum Mijoz"
	UnknownProduct  = "Noma'lum Mahsulot"
	UnknownSupplier = "Noma'lum chorvachi"
	UnknownEmployee = "Noma'lum xodim"
)

// Client is a buyer with an optional opening debt carried over from the paper book.
type Client struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	InitialDebt float64 `json:"initial_debt"`
}

// Product carries the current price per unit. Sales freeze the price at sale time.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Sale struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   float64   `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	SaleDate   time.Time `json:"sale_date"`
}

// Payment is a cash inflow reducing a client's balance.
type Payment struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}

// Expense is a generic cash outflow with no related entity.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
}

type Supplier struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type SupplierType `json:"type"`
}

// Purchase records livestock bought from a supplier. TotalPrice is frozen
// at creation as weight times price per kilo.
type Purchase struct {
	ID           int64     `json:"id"`
	SupplierID   int64     `json:"supplier_id"`
	Weight       float64   `json:"weight"`
	PricePerKg   float64   `json:"price_per_kg"`
	TotalPrice   float64   `json:"total_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

type SupplierPayment struct {
	ID          int64     `json:"id"`
	SupplierID  int64     `json:"supplier_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}

type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Advance is a salary advance paid out to an employee.
type Advance struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	Amount      float64   `json:"amount"`
	AdvanceDate time.Time `json:"advance_date"`
}

// SaleDetails is a sale joined with human-readable client and product names.
type SaleDetails struct {
	Sale
	ClientName  string `json:"clientName"`
	ProductName string `json:"productName"`
}

// PaymentDetails is a payment joined with the client name.
type PaymentDetails struct {
	Payment
	ClientName string `json:"clientName"`
}

// Document is the entire persisted ledger state. The store reads and writes
// it as a whole; collections are independent and never updated partially.
type Document struct {
	Clients          []Client          `json:"clients"`
	Products         []Product         `json:"products"`
	Sales            []Sale            `json:"sales"`
	Payments         []Payment         `json:"payments"`
	Expenses         []Expense         `json:"expenses"`
	Suppliers        []Supplier        `json:"suppliers"`
	Purchases        []Purchase        `json:"purchases"`
	SupplierPayments []SupplierPayment `json:"supplier_payments"`
	Employees        []Employee        `json:"employees"`
	Advances         []Advance         `json:"advances"`
}

// NewDocument returns a document with every collection present and empty.
func NewDocument() *Document {
	return &Document{
		Clients:          []Client{},
		Products:         []Product{},
		Sales:            []Sale{},
		Payments:         []Payment{},
		Expenses:         []Expense{},
		Suppliers:        []Supplier{},
		Purchases:        []Purchase{},
		SupplierPayments: []SupplierPayment{},
		Employees:        []Employee{},
		Advances:         []Advance{},
	}
}

// Normalize backfills collections a loaded file may be missing without
// discarding the ones that are present.
func (d *Document) Normalize() {
	if d.Clients == nil {
		d.Clients = []Client{}
	}

	if d.Products == nil {
		d.Products = []Product{}
	}

	if d.Sales == nil {
		d.Sales = []Sale{}
	}

	if d.Payments == nil {
		d.Payments = []Payment{}
	}

	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}

	if d.Suppliers == nil {
		d.Suppliers = []Supplier{}
	}

	if d.Purchases == nil {
		d.Purchases = []Purchase{}
	}

	if d.SupplierPayments == nil {
		d.SupplierPayments = []SupplierPayment{}
	}

	if d.Employees == nil {
		d.Employees = []Employee{}
	}

	if d.Advances == nil {
		d.Advances = []Advance{}
	}
}

// ClientByID looks up a client. The second return value reports whether the
// reference resolved; dependent records may carry ids of deleted clients.
func (d *Document) ClientByID(id int64) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}

	return Client{}, false
}

func (d *Document) ProductByID(id int64) (Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}

func (d *Document) SupplierByID(id int64) (Supplier, bool) {
	for _, s := range d.Suppliers {
		if s.ID == id {
			return s, true
		}
	}

	return Supplier{}, false
}

func (d *Document) EmployeeByID(id int64) (Employee, bool) {
	for _, e := range d.Employees {
		if e.ID == id {
			return e, true
		}
	}

	return Employee{}, false
}

// SalesDetails joins every sale with client and product names, in file order.
func (d *Document) SalesDetails() []SaleDetails {
	details := make([]SaleDetails, 0, len(d.Sales))

	for _, sale := range d.Sales {
		det := SaleDetails{Sale: sale, ClientName: UnknownClient, ProductName: UnknownProduct}

		if c, ok := d.ClientByID(sale.ClientID); ok {
			det.ClientName = c.Name
		}

		if p, ok := d.ProductByID(sale.ProductID); ok {
			det.ProductName = p.Name
		}

		details = append(details, det)
	}

	return details
}

// PaymentsDetails joins every payment with the client name, in file order.
func (d *Document) PaymentsDetails() []PaymentDetails {
	details := make([]PaymentDetails, 0, len(d.Payments))

	for _, payment := range d.Payments {
		det := PaymentDetails{Payment: payment, ClientName: UnknownClient}

		if c, ok := d.ClientByID(payment.ClientID); ok {
			det.ClientName = c.Name
		}

		details = append(details, det)
	}

	return details
}
