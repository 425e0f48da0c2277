package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/meustock-api/internal/application/auth"
	"github.com/jhoicas/meustock-api/internal/application/sales"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
	"github.com/jhoicas/meustock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/meustock-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/meustock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/meustock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "meustock-test"
	testPassword  = "secret"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// testServer app completa sobre el store en memoria.
type testServer struct {
	app    *fiber.App
	store  *memory.Store
	clock  *fakeClock
	tokens *pkgjwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clock := &fakeClock{t: time.Now()}
	tokens, err := pkgjwt.NewService(testJWTSecret, testIssuer, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)

	store := memory.New()
	users, products, salesRepo := store.Users(), store.Products(), store.Sales()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, tokens),
		UserUC:      usecase.NewUserUseCase(users).WithCost(bcrypt.MinCost),
		ProductUC:   usecase.NewProductUseCase(products),
		DashboardUC: usecase.NewDashboardUseCase(products, salesRepo, 5),
		SaleUC:      sales.NewSaleUseCase(store, salesRepo, sales.Config{VerifyTotals: true, DecrementStock: true}),
		ReceiptUC:   sales.NewReceiptUseCase(salesRepo, users, infrapdf.NewReceiptGenerator()),
		Tokens:      tokens,
	})
	return &testServer{app: app, store: store, clock: clock, tokens: tokens}
}

// envelope cuerpo de respuesta decodificado.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Errors  []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

// signUp crea un usuario vía POST /users y devuelve su id.
func (s *testServer) signUp(t *testing.T, email string) string {
	t.Helper()
	resp, env := s.do(t, http.MethodPost, "/users", "", map[string]any{
		"name":       "Maria",
		"store_name": "Mercadinho da Maria",
		"email":      email,
		"password":   testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	return user.ID
}

// login devuelve el token de la sesión.
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	resp, env := s.do(t, http.MethodPost, "/login", "", map[string]any{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
