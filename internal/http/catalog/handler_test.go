package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/otabekj/dukon/internal/http/catalog"
	"github.com/otabekj/dukon/internal/ledger"
)

func newServer(t *testing.T, doc *ledger.Document) *httptest.Server {
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

	handler := catalog.NewHandler(ledger.NewService(store))

	router := chi.NewRouter()
	router.Route("/products", handler.Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func TestHandler_Create(t *testing.T) {
	doc := ledger.NewDocument()
	srv := newServer(t, doc)

	resp, err := http.Post(srv.URL+"/products", "application/json",
		strings.NewReader(`{"name":"Qo'y go'shti","price":85000}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got ledger.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Qo'y go'shti", got.Name)
	assert.Equal(t, 85000.0, got.Price)
	assert.Len(t, doc.Products, 1)
}

func TestHandler_Create_Invalid(t *testing.T) {
	srv := newServer(t, ledger.NewDocument())

	resp, err := http.Post(srv.URL+"/products", "application/json",
		strings.NewReader(`{"name":"","price":0}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_List(t *testing.T) {
	doc := ledger.NewDocument()
	doc.Products = []ledger.Product{{ID: 10, Name: "Qo'y go'shti", Price: 85000}}

	srv := newServer(t, doc)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []ledger.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Qo'y go'shti", got[0].Name)
}

func TestHandler_Delete_NotFound(t *testing.T) {
	srv := newServer(t, ledger.NewDocument())

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/products/42", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
