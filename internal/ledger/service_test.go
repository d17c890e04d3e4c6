package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/otabekj/dukon/internal/ledger"
)

// docStore wires a MockStore to a shared in-memory document so mutations
// survive across calls within a test.
func docStore(t *testing.T, doc *ledger.Document) *ledger.MockStore {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any()).
		DoAndReturn(func(_ context.Context) (*ledger.Document, error) {
			return doc, nil
		}).
		AnyTimes()

	store.EXPECT().
		Persist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *ledger.Document) error {
			*doc = *d
			return nil
		}).
		AnyTimes()

	return store
}

func TestService_CreateClient(t *testing.T) {
	type testCase struct {
		name    string
		params  ledger.ClientParams
		wantErr error
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.ClientParams{
				Name:        "Ali aka",
				Phone:       "+998901234567",
				InitialDebt: 50000,
			},
		},
		{
			name:    "MissingName",
			params:  ledger.ClientParams{Phone: "+998901234567"},
			wantErr: ledger.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ledger.NewDocument()
			svc := ledger.NewService(docStore(t, doc))

			got, err := svc.CreateClient(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
			assert.Equal(t, tt.params.InitialDebt, got.InitialDebt)
			assert.Len(t, doc.Clients, 1)
		})
	}
}

func TestService_CreateClients_UniqueIDs(t *testing.T) {
	doc := ledger.NewDocument()
	svc := ledger.NewService(docStore(t, doc))

	created, err := svc.CreateClients(context.Background(), []ledger.ClientParams{
		{Name: "Ali aka"},
		{Name: "Vali aka"},
		{Name: "G'ani aka"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Greater(t, created[1].ID, created[0].ID)
	assert.Greater(t, created[2].ID, created[1].ID)
}

func TestService_UpdateClient(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{
		{ID: 1, Name: "Ali aka", Phone: "111"},
		{ID: 2, Name: "Vali aka", Phone: "222"},
	}

	svc := ledger.NewService(docStore(t, doc))

	newName := "Alisher aka"
	got, err := svc.UpdateClient(context.Background(), 1, ledger.ClientUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alisher aka", got.Name)
	assert.Equal(t, "111", got.Phone)

	// The other client is untouched.
	assert.Equal(t, "Vali aka", doc.Clients[1].Name)
}

func TestService_UpdateClient_NotFound(t *testing.T) {
	doc := ledger.NewDocument()
	svc := ledger.NewService(docStore(t, doc))

	name := "Ali aka"
	_, err := svc.UpdateClient(context.Background(), 42, ledger.ClientUpdate{Name: &name})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_DeleteClient(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}

	svc := ledger.NewService(docStore(t, doc))

	require.NoError(t, svc.DeleteClient(context.Background(), 1))
	assert.Empty(t, doc.Clients)

	assert.ErrorIs(t, svc.DeleteClient(context.Background(), 1), ledger.ErrNotFound)
}

func TestService_CreateSale(t *testing.T) {
	type testCase struct {
		name    string
		params  ledger.SaleParams
		wantErr error
	}

	tests := []testCase{
		{
			name:   "FreezesTotalPrice",
			params: ledger.SaleParams{ClientID: 1, ProductID: 10, Quantity: 2},
		},
		{
			name:    "UnknownProduct",
			params:  ledger.SaleParams{ClientID: 1, ProductID: 99, Quantity: 2},
			wantErr: ledger.ErrProductNotFound,
		},
		{
			name:    "ZeroQuantity",
			params:  ledger.SaleParams{ClientID: 1, ProductID: 10},
			wantErr: ledger.ErrInvalidInput,
		},
		{
			name:    "MissingClient",
			params:  ledger.SaleParams{ProductID: 10, Quantity: 2},
			wantErr: ledger.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ledger.NewDocument()
			doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
			doc.Products = []ledger.Product{{ID: 10, Name: "Qo'y go'shti", Price: 85000}}

			svc := ledger.NewService(docStore(t, doc))

			got, err := svc.CreateSale(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Empty(t, doc.Sales)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 170000.0, got.TotalPrice)
			assert.WithinDuration(t, time.Now(), got.SaleDate, time.Minute)
		})
	}
}

func TestService_CreateSale_PriceSurvivesProductChange(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
	doc.Products = []ledger.Product{{ID: 10, Name: "Qo'y go'shti", Price: 85000}}

	svc := ledger.NewService(docStore(t, doc))

	sale, err := svc.CreateSale(context.Background(), ledger.SaleParams{
		ClientID: 1, ProductID: 10, Quantity: 2,
	})
	require.NoError(t, err)

	newPrice := 90000.0
	_, err = svc.UpdateProduct(context.Background(), 10, ledger.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	sales, err := svc.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.TotalPrice, sales[0].TotalPrice)
}

func TestService_ListSales(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
	doc.Products = []ledger.Product{{ID: 10, Name: "Qo'y go'shti", Price: 85000}}
	doc.Sales = []ledger.Sale{
		{ID: 100, ClientID: 1, ProductID: 10, Quantity: 1, TotalPrice: 85000},
		{ID: 101, ClientID: 7, ProductID: 99, Quantity: 2, TotalPrice: 170000},
	}

	svc := ledger.NewService(docStore(t, doc))

	sales, err := svc.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)

	// Newest first.
	assert.Equal(t, int64(101), sales[0].ID)
	assert.Equal(t, int64(100), sales[1].ID)

	// Dangling references render placeholders, the stale ids stay.
	assert.Equal(t, ledger.UnknownClient, sales[0].ClientName)
	assert.Equal(t, ledger.UnknownProduct, sales[0].ProductName)
	assert.Equal(t, int64(7), sales[0].ClientID)

	assert.Equal(t, "Ali aka", sales[1].ClientName)
	assert.Equal(t, "Qo'y go'shti", sales[1].ProductName)
}

func TestService_CreatePurchase(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Suppliers = []ledger.Supplier{{ID: 1, Name: "Karim chorvachi", Type: ledger.SupplierQoramol}}

	svc := ledger.NewService(docStore(t, doc))

	got, err := svc.CreatePurchase(context.Background(), ledger.PurchaseParams{
		SupplierID: 1,
		Weight:     120,
		PricePerKg: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, 7200000.0, got.TotalPrice)

	_, err = svc.CreatePurchase(context.Background(), ledger.PurchaseParams{SupplierID: 1})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestService_CreateSupplier_InvalidType(t *testing.T) {
	doc := ledger.NewDocument()
	svc := ledger.NewService(docStore(t, doc))

	_, err := svc.CreateSupplier(context.Background(), ledger.SupplierParams{
		Name: "Karim chorvachi",
		Type: "tovuq",
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestService_Reset(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
	doc.Sales = []ledger.Sale{{ID: 100, ClientID: 1}}

	svc := ledger.NewService(docStore(t, doc))

	require.NoError(t, svc.Reset(context.Background()))
	assert.Empty(t, doc.Clients)
	assert.Empty(t, doc.Sales)
	assert.NotNil(t, doc.Products)
}

func TestService_DeleteSale_KeepsOtherCollections(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka"}}
	doc.Sales = []ledger.Sale{{ID: 100, ClientID: 1}, {ID: 101, ClientID: 1}}

	svc := ledger.NewService(docStore(t, doc))

	require.NoError(t, svc.DeleteSale(context.Background(), 100))
	require.Len(t, doc.Sales, 1)
	assert.Equal(t, int64(101), doc.Sales[0].ID)
	assert.Len(t, doc.Clients, 1)
}
