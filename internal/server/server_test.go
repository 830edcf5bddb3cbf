package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fekuna/omnipos-portal/config"
	"github.com/fekuna/omnipos-portal/internal/auth"
	"github.com/fekuna/omnipos-portal/internal/broker"
	clientUCPkg "github.com/fekuna/omnipos-portal/internal/client/usecase"
	"github.com/fekuna/omnipos-portal/internal/database/dbtest"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/metrics"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	clientUCPkg.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type unknownRates struct{}

func (unknownRates) Current(context.Context) model.Rates { return model.Rates{Base: "RUB"} }

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, limiter *IPRateLimiter) *testServer {
	t.Helper()
	db := dbtest.New(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpw"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	log := logger.NewNop()
	handlers := Wire(db, Deps{
		Tokens:    tokens,
		Rates:     unknownRates{},
		Publisher: broker.NopPublisher{},
		Admin:     config.AdminConfig{Login: "admin", PasswordHash: string(hash)},
		Logger:    log,
	})

	router := NewRouter(handlers, RouterOptions{
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: metrics.New(),
		DB:      db,
		Logger:  log,
	})
	return &testServer{t: t, router: router}
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (s *testServer) do(method, path, token string, body, out interface{}) int {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (s *testServer) login(path, login, password string) string {
	s.t.Helper()
	var tok auth.Token
	code := s.do(http.MethodPost, path, "", map[string]string{"login": login, "password": password}, &tok)
	require.Equal(s.t, http.StatusOK, code)
	return tok.AccessToken
}

type idBody struct {
	ID string `json:"id"`
}

func TestClientSeesPersonalisedCatalog(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login("/api/v1/auth/admin/login", "admin", "adminpw")

	var filters, paints, filterA, paintX, acme idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/categories", admin, map[string]string{"name": "Filters"}, &filters))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/categories", admin, map[string]string{"name": "Paints"}, &paints))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/products", admin,
		map[string]string{"category_id": filters.ID, "name": "Filter A", "cost_price": "45.00"}, &filterA))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/products", admin,
		map[string]string{"category_id": paints.ID, "name": "Paint X", "cost_price": "12.00"}, &paintX))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/clients", admin,
		map[string]string{"login": "acme", "password": "acme-pw"}, &acme))
	require.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/api/v1/admin/clients/"+acme.ID+"/categories", admin,
		map[string]string{"category_id": filters.ID}, nil))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/coefficients", admin,
		map[string]string{"client_id": acme.ID, "product_id": filterA.ID, "coefficient": "1.20"}, nil))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/coefficients", admin,
		map[string]string{"client_id": acme.ID, "product_id": paintX.ID, "coefficient": "3"}, nil))

	// The same pair again is a conflict, not an update.
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/admin/coefficients", admin,
		map[string]string{"client_id": acme.ID, "product_id": filterA.ID, "coefficient": "1.50"}, nil))

	client := s.login("/api/v1/auth/login", "acme", "acme-pw")

	var list struct {
		Currency string `json:"currency"`
		Items    []struct {
			Name        string          `json:"name"`
			Price       decimal.Decimal `json:"price"`
			HasOverride bool            `json:"has_override"`
		} `json:"items"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/catalog", client, nil, &list))
	assert.Equal(t, "RUB", list.Currency)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Filter A", list.Items[0].Name)
	assert.Equal(t, "54.00", list.Items[0].Price.StringFixed(2))
	assert.True(t, list.Items[0].HasOverride)
	require.Len(t, list.Categories, 1)
	assert.Equal(t, "Filters", list.Categories[0].Name)

	// Deleting the category empties the catalog.
	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/admin/categories/"+filters.ID, admin, nil, nil))
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/catalog", client, nil, &list))
	assert.Empty(t, list.Items)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/admin/categories/"+filters.ID, admin, nil, nil))
}

func TestAdminPricePreview(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login("/api/v1/auth/admin/login", "admin", "adminpw")

	var cat, prod idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/categories", admin, map[string]string{"name": "Filters"}, &cat))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/products", admin,
		map[string]string{"category_id": cat.ID, "name": "Filter A", "cost_price": "45.00"}, &prod))

	var items []struct {
		Coefficient decimal.Decimal `json:"coefficient"`
		Price       decimal.Decimal `json:"price"`
	}
	code := s.do(http.MethodGet, "/api/v1/admin/clients/no-such-client/prices?product_id="+prod.ID, admin, nil, &items)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, items, 1)
	assert.True(t, items[0].Coefficient.Equal(decimal.NewFromInt(1)))
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(45)))

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/admin/clients/x/prices", admin, nil, nil))
}

func TestAuthBoundaries(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login("/api/v1/auth/admin/login", "admin", "adminpw")

	var acme idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/clients", admin,
		map[string]string{"login": "acme", "password": "acme-pw"}, &acme))
	client := s.login("/api/v1/auth/login", "acme", "acme-pw")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"catalog anonymous", http.MethodGet, "/api/v1/catalog", "", nil, http.StatusUnauthorized},
		{"catalog as admin", http.MethodGet, "/api/v1/catalog", admin, nil, http.StatusForbidden},
		{"admin as client", http.MethodGet, "/api/v1/admin/clients", client, nil, http.StatusForbidden},
		{"wrong password", http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "acme", "password": "nope"}, http.StatusUnauthorized},
		{"missing fields", http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "acme"}, http.StatusBadRequest},
		{"bad admin password", http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{"login": "admin", "password": "x"}, http.StatusUnauthorized},
		{"catalog as client", http.MethodGet, "/api/v1/catalog", client, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.do(tt.method, tt.path, tt.token, tt.body, nil))
		})
	}

	// A token outliving its client resolves to not-found, not to an empty catalog.
	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/admin/clients/"+acme.ID, admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/catalog", client, nil, nil))
}

func TestGreetingFlow(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login("/api/v1/auth/admin/login", "admin", "adminpw")

	var page idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/admin/greetings", admin,
		map[string]string{"slug": "expo", "title": "Welcome"}, &page))

	var public map[string]string
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/greetings/expo", "", nil, &public))
	assert.Equal(t, "Welcome", public["title"])
	assert.NotContains(t, public, "id")

	lead := map[string]string{"email": "buyer@example.com"}
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/greetings/expo/leads", "", lead, nil))
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/greetings/expo/leads", "", lead, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/greetings/expo/leads", "", map[string]string{"email": "nope"}, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/greetings/missing", "", nil, nil))

	var leads struct {
		Total int `json:"total"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/admin/greetings/"+page.ID+"/leads", admin, nil, &leads))
	assert.Equal(t, 1, leads.Total)
}

func TestPublicRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, NewIPRateLimiter(0.001, 2, nil))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/greetings/expo", "", nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/greetings/expo", "", nil, nil))
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/api/v1/greetings/expo", "", nil, nil))

	// Login sits outside the limited group.
	for i := 0; i < 3; i++ {
		s.login("/api/v1/auth/admin/login", "admin", "adminpw")
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	var body map[string]string
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login("/api/v1/auth/admin/login", "admin", "adminpw")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"delete category", http.MethodDelete, "/api/v1/admin/categories/foo", nil},
		{"get product", http.MethodGet, "/api/v1/admin/products/abc", nil},
		{"get client", http.MethodGet, "/api/v1/admin/clients/acme", nil},
		{"delete greeting", http.MethodDelete, "/api/v1/admin/greetings/expo", nil},
		{"create coefficient", http.MethodPost, "/api/v1/admin/coefficients",
			map[string]string{"client_id": "x", "product_id": "y", "coefficient": "1.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, s.do(tt.method, tt.path, admin, tt.body, nil))
		})
	}
}
