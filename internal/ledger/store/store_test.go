package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otabekj/dukon/internal/ledger"
	"github.com/otabekj/dukon/internal/ledger/store"
)

func TestStore_Load_MissingFile(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "db.json"))

	doc, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, doc.Clients)
	assert.Empty(t, doc.Clients)
	assert.NotNil(t, doc.Advances)
}

func TestStore_Load_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	doc, err := store.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Clients)
}

func TestStore_Load_BackfillsMissingCollections(t *testing.T) {
	// A db.json written before suppliers existed only carries the older keys.
	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `{"clients":[{"id":1,"name":"Ali aka","initial_debt":50000}],"products":[]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	doc, err := store.New(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, doc.Clients, 1)
	assert.Equal(t, "Ali aka", doc.Clients[0].Name)
	assert.NotNil(t, doc.Suppliers)
	assert.NotNil(t, doc.SupplierPayments)
	assert.NotNil(t, doc.Advances)
}

func TestStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.New(path).Load(context.Background())
	assert.ErrorIs(t, err, ledger.ErrStorageUnavailable)
}

func TestStore_PersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	s := store.New(path)

	doc := ledger.NewDocument()
	doc.Clients = []ledger.Client{{ID: 1, Name: "Ali aka", InitialDebt: 50000}}
	doc.Sales = []ledger.Sale{{
		ID:         100,
		ClientID:   1,
		ProductID:  10,
		Quantity:   2,
		TotalPrice: 170000,
		SaleDate:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}}

	require.NoError(t, s.Persist(context.Background(), doc))

	got, err := s.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Clients, 1)
	assert.Equal(t, "Ali aka", got.Clients[0].Name)
	require.Len(t, got.Sales, 1)
	assert.Equal(t, 170000.0, got.Sales[0].TotalPrice)
	assert.True(t, got.Sales[0].SaleDate.Equal(doc.Sales[0].SaleDate))
}

func TestStore_Init_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := store.New(path)

	require.NoError(t, s.Init(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"clients"`)
	assert.Contains(t, string(data), `"supplier_payments"`)
}
