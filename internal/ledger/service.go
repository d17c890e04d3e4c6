package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=ledger
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Persist(ctx context.Context, doc *Document) error
}

// Service implements every ledger operation as load, mutate, persist over the
// whole document. A mutex serializes mutations so overlapping calls cannot
// lose writes; the original host serialized them implicitly.
type Service struct {
	mu    sync.Mutex
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Snapshot returns the current document without mutating it. Reports and
// exports read through this.
func (s *Service) Snapshot(ctx context.Context) (*Document, error) {
	return s.store.Load(ctx)
}

// Reset replaces the persisted document with empty collections. Irreversible;
// confirmation is the calling surface's job.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Persist(ctx, NewDocument())
}

func (s *Service) mutate(ctx context.Context, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.store.Persist(ctx, doc)
}

// nextID derives a new id from the wall clock but bumps it past the
// collection's current maximum, so rapid successive creates stay unique.
func nextID[T any](items []T, idOf func(T) int64) int64 {
	id := time.Now().UnixMilli()
	for _, it := range items {
		if v := idOf(it); v >= id {
			id = v + 1
		}
	}

	return id
}

// removeByID filters one record out of a collection.
// Dependent records in other collections are never touched.
func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	kept := make([]T, 0, len(items))
	found := false

	for _, it := range items {
		if idOf(it) == id {
			found = true
			continue
		}

		kept = append(kept, it)
	}

	return kept, found
}

// reversed returns a newest-first copy of an append-ordered collection.
func reversed[T any](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}

	return out
}

// Clients

type ClientParams struct {
	Name        string
	Phone       string
	Address     string
	InitialDebt float64
}

type ClientUpdate struct {
	Name        *string
	Phone       *string
	Address     *string
	InitialDebt *float64
}

func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Clients, nil
}

func (s *Service) CreateClient(ctx context.Context, params ClientParams) (*Client, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	var client Client

	err := s.mutate(ctx, func(doc *Document) error {
		client = Client{
			ID:          nextID(doc.Clients, func(c Client) int64 { return c.ID }),
			Name:        params.Name,
			Phone:       params.Phone,
			Address:     params.Address,
			InitialDebt: params.InitialDebt,
		}
		doc.Clients = append(doc.Clients, client)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &client, nil
}

// CreateClients appends a batch of clients in one write. Used by the
// debt-book importer.
func (s *Service) CreateClients(ctx context.Context, params []ClientParams) ([]Client, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
	}

	var created []Client

	err := s.mutate(ctx, func(doc *Document) error {
		for _, p := range params {
			client := Client{
				ID:          nextID(doc.Clients, func(c Client) int64 { return c.ID }),
				Name:        p.Name,
				Phone:       p.Phone,
				Address:     p.Address,
				InitialDebt: p.InitialDebt,
			}
			doc.Clients = append(doc.Clients, client)
			created = append(created, client)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating clients: %w", err)
	}

	return created, nil
}

func (s *Service) UpdateClient(ctx context.Context, id int64, update ClientUpdate) (*Client, error) {
	var updated Client

	err := s.mutate(ctx, func(doc *Document) error {
		for i := range doc.Clients {
			if doc.Clients[i].ID != id {
				continue
			}

			c := &doc.Clients[i]
			if update.Name != nil {
				c.Name = *update.Name
			}

			if update.Phone != nil {
				c.Phone = *update.Phone
			}

			if update.Address != nil {
				c.Address = *update.Address
			}

			if update.InitialDebt != nil {
				c.InitialDebt = *update.InitialDebt
			}

			updated = *c

			return nil
		}

		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Clients, id, func(c Client) int64 { return c.ID })
		if !found {
			return ErrNotFound
		}

		doc.Clients = kept

		return nil
	})
}

// Products

type ProductParams struct {
	Name  string
	Price float64
}

type ProductUpdate struct {
	Name  *string
	Price *float64
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Products, nil
}

func (s *Service) CreateProduct(ctx context.Context, params ProductParams) (*Product, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if params.Price <= 0 {
		return nil, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}

	var product Product

	err := s.mutate(ctx, func(doc *Document) error {
		product = Product{
			ID:    nextID(doc.Products, func(p Product) int64 { return p.ID }),
			Name:  params.Name,
			Price: params.Price,
		}
		doc.Products = append(doc.Products, product)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return &product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (*Product, error) {
	var updated Product

	err := s.mutate(ctx, func(doc *Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID != id {
				continue
			}

			p := &doc.Products[i]
			if update.Name != nil {
				p.Name = *update.Name
			}

			if update.Price != nil {
				p.Price = *update.Price
			}

			updated = *p

			return nil
		}

		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Products, id, func(p Product) int64 { return p.ID })
		if !found {
			return ErrNotFound
		}

		doc.Products = kept

		return nil
	})
}

// Sales

type SaleParams struct {
	ClientID  int64
	ProductID int64
	Quantity  float64
}

// ListSales returns sales newest-first with client and product names joined.
// A sale whose referent was deleted keeps its stale id and shows a
// placeholder name.
func (s *Service) ListSales(ctx context.Context) ([]SaleDetails, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return reversed(doc.SalesDetails()), nil
}

// CreateSale freezes total_price as the product's current price times the
// quantity. The price never gets recalculated afterwards.
func (s *Service) CreateSale(ctx context.Context, params SaleParams) (*Sale, error) {
	if params.ClientID == 0 || params.ProductID == 0 {
		return nil, fmt.Errorf("%w: client and product are required", ErrInvalidInput)
	}

	if params.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity is required", ErrInvalidInput)
	}

	var sale Sale

	err := s.mutate(ctx, func(doc *Document) error {
		product, ok := doc.ProductByID(params.ProductID)
		if !ok {
			return ErrProductNotFound
		}

		sale = Sale{
			ID:         nextID(doc.Sales, func(s Sale) int64 { return s.ID }),
			ClientID:   params.ClientID,
			ProductID:  params.ProductID,
			Quantity:   params.Quantity,
			TotalPrice: product.Price * params.Quantity,
			SaleDate:   time.Now(),
		}
		doc.Sales = append(doc.Sales, sale)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Sales, id, func(s Sale) int64 { return s.ID })
		if !found {
			return ErrNotFound
		}

		doc.Sales = kept

		return nil
	})
}

// Payments

type PaymentParams struct {
	ClientID int64
	Amount   float64
}

func (s *Service) ListPayments(ctx context.Context) ([]PaymentDetails, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return reversed(doc.PaymentsDetails()), nil
}

func (s *Service) CreatePayment(ctx context.Context, params PaymentParams) (*Payment, error) {
	if params.ClientID == 0 {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	var payment Payment

	err := s.mutate(ctx, func(doc *Document) error {
		payment = Payment{
			ID:          nextID(doc.Payments, func(p Payment) int64 { return p.ID }),
			ClientID:    params.ClientID,
			Amount:      params.Amount,
			PaymentDate: time.Now(),
		}
		doc.Payments = append(doc.Payments, payment)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	return &payment, nil
}

func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Payments, id, func(p Payment) int64 { return p.ID })
		if !found {
			return ErrNotFound
		}

		doc.Payments = kept

		return nil
	})
}

// Expenses

type ExpenseParams struct {
	Description string
	Amount      float64
}

func (s *Service) ListExpenses(ctx context.Context) ([]Expense, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return reversed(doc.Expenses), nil
}

func (s *Service) CreateExpense(ctx context.Context, params ExpenseParams) (*Expense, error) {
	if params.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	var expense Expense

	err := s.mutate(ctx, func(doc *Document) error {
		expense = Expense{
			ID:          nextID(doc.Expenses, func(e Expense) int64 { return e.ID }),
			Description: params.Description,
			Amount:      params.Amount,
			ExpenseDate: time.Now(),
		}
		doc.Expenses = append(doc.Expenses, expense)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	return &expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Expenses, id, func(e Expense) int64 { return e.ID })
		if !found {
			return ErrNotFound
		}

		doc.Expenses = kept

		return nil
	})
}

// Suppliers

type SupplierParams struct {
	Name string
	Type SupplierType
}

func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Suppliers, nil
}

func (s *Service) CreateSupplier(ctx context.Context, params SupplierParams) (*Supplier, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if params.Type != SupplierQoramol && params.Type != SupplierQochqor {
		return nil, fmt.Errorf("%w: unknown supplier type %q", ErrInvalidInput, params.Type)
	}

	var supplier Supplier

	err := s.mutate(ctx, func(doc *Document) error {
		supplier = Supplier{
			ID:   nextID(doc.Suppliers, func(s Supplier) int64 { return s.ID }),
			Name: params.Name,
			Type: params.Type,
		}
		doc.Suppliers = append(doc.Suppliers, supplier)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}

	return &supplier, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Suppliers, id, func(s Supplier) int64 { return s.ID })
		if !found {
			return ErrNotFound
		}

		doc.Suppliers = kept

		return nil
	})
}

// Purchases

type PurchaseParams struct {
	SupplierID int64
	Weight     float64
	PricePerKg float64
}

func (s *Service) ListPurchases(ctx context.Context) ([]Purchase, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Purchases, nil
}

func (s *Service) CreatePurchase(ctx context.Context, params PurchaseParams) (*Purchase, error) {
	if params.SupplierID == 0 {
		return nil, fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}

	if params.Weight <= 0 || params.PricePerKg <= 0 {
		return nil, fmt.Errorf("%w: weight and price per kg are required", ErrInvalidInput)
	}

	var purchase Purchase

	err := s.mutate(ctx, func(doc *Document) error {
		purchase = Purchase{
			ID:           nextID(doc.Purchases, func(p Purchase) int64 { return p.ID }),
			SupplierID:   params.SupplierID,
			Weight:       params.Weight,
			PricePerKg:   params.PricePerKg,
			TotalPrice:   params.Weight * params.PricePerKg,
			PurchaseDate: time.Now(),
		}
		doc.Purchases = append(doc.Purchases, purchase)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating purchase: %w", err)
	}

	return &purchase, nil
}

func (s *Service) DeletePurchase(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Purchases, id, func(p Purchase) int64 { return p.ID })
		if !found {
			return ErrNotFound
		}

		doc.Purchases = kept

		return nil
	})
}

// Supplier payments

type SupplierPaymentParams struct {
	SupplierID int64
	Amount     float64
}

func (s *Service) ListSupplierPayments(ctx context.Context) ([]SupplierPayment, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.SupplierPayments, nil
}

func (s *Service) CreateSupplierPayment(ctx context.Context, params SupplierPaymentParams) (*SupplierPayment, error) {
	if params.SupplierID == 0 {
		return nil, fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	var payment SupplierPayment

	err := s.mutate(ctx, func(doc *Document) error {
		payment = SupplierPayment{
			ID:          nextID(doc.SupplierPayments, func(p SupplierPayment) int64 { return p.ID }),
			SupplierID:  params.SupplierID,
			Amount:      params.Amount,
			PaymentDate: time.Now(),
		}
		doc.SupplierPayments = append(doc.SupplierPayments, payment)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating supplier payment: %w", err)
	}

	return &payment, nil
}

func (s *Service) DeleteSupplierPayment(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.SupplierPayments, id, func(p SupplierPayment) int64 { return p.ID })
		if !found {
			return ErrNotFound
		}

		doc.SupplierPayments = kept

		return nil
	})
}

// Employees

type EmployeeParams struct {
	Name     string
	Position string
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Employees, nil
}

func (s *Service) CreateEmployee(ctx context.Context, params EmployeeParams) (*Employee, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	var employee Employee

	err := s.mutate(ctx, func(doc *Document) error {
		employee = Employee{
			ID:       nextID(doc.Employees, func(e Employee) int64 { return e.ID }),
			Name:     params.Name,
			Position: params.Position,
		}
		doc.Employees = append(doc.Employees, employee)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	return &employee, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Employees, id, func(e Employee) int64 { return e.ID })
		if !found {
			return ErrNotFound
		}

		doc.Employees = kept

		return nil
	})
}

// Advances

type AdvanceParams struct {
	EmployeeID int64
	Amount     float64
}

func (s *Service) ListAdvances(ctx context.Context) ([]Advance, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Advances, nil
}

func (s *Service) CreateAdvance(ctx context.Context, params AdvanceParams) (*Advance, error) {
	if params.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: employee is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	var advance Advance

	err := s.mutate(ctx, func(doc *Document) error {
		advance = Advance{
			ID:          nextID(doc.Advances, func(a Advance) int64 { return a.ID }),
			EmployeeID:  params.EmployeeID,
			Amount:      params.Amount,
			AdvanceDate: time.Now(),
		}
		doc.Advances = append(doc.Advances, advance)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating advance: %w", err)
	}

	return &advance, nil
}

func (s *Service) DeleteAdvance(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(doc *Document) error {
		kept, found := removeByID(doc.Advances, id, func(a Advance) int64 { return a.ID })
		if !found {
			return ErrNotFound
		}

		doc.Advances = kept

		return nil
	})
}
