package http_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	srv := newTestServer(t)
	id := srv.signUp(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPost, "/login", "", map[string]any{"email": "a@b.com", "password": "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotEmpty(t, env.Token)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	identity, err := srv.tokens.Verify(env.Token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPost, "/login", "", map[string]any{"email": "a@b.com", "password": "errada"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Senha incorreta", env.Message)
	assert.Empty(t, env.Token)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	srv := newTestServer(t)

	resp, env := srv.do(t, http.MethodPost, "/login", "", map[string]any{"email": "nadie@b.com", "password": "secret"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Usuário não encontrado", env.Message)
}

func TestLogin_BodyInvalido(t *testing.T) {
	srv := newTestServer(t)

	resp, env := srv.do(t, http.MethodPost, "/login", "", map[string]any{"email": "no-es-email", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	paths := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, paths)
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_EmailDuplicado(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Outra", "store_name": "Outra loja", "email": "A@B.com", "password": "secret",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "E-mail já cadastrado", env.Message)
}

func TestUsers_SoloPuedeModificarseASiMismo(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	otherID := srv.signUp(t, "c@d.com")
	tok := srv.login(t, "a@b.com")

	body := map[string]any{"name": "Hacker", "store_name": "Loja", "email": "c@d.com"}
	resp, env := srv.do(t, http.MethodPut, "/users/"+otherID, tok, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Acesso negado", env.Message)

	resp, _ = srv.do(t, http.MethodDelete, "/users/"+otherID, tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = srv.do(t, http.MethodGet, "/users/"+otherID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user struct {
		Name string `json:"name"`
	}
	decodeData(t, env, &user)
	assert.Equal(t, "Maria", user.Name)
}

func TestUsers_IDNoUUID(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	calls := srv.store.Calls()

	resp, env := srv.do(t, http.MethodGet, "/users/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Usuário não encontrado", env.Message)

	resp, _ = srv.do(t, http.MethodDelete, "/users/abc", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Equal(t, calls, srv.store.Calls(), "no debe llegar al store")
}

func TestUsers_ActualizarYExcluirPropio(t *testing.T) {
	srv := newTestServer(t)
	id := srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPut, "/users/"+id, tok, map[string]any{
		"name": "Maria Souza", "store_name": "Mercadinho", "email": "a@b.com", "password": "nova-senha",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user struct {
		Name      string `json:"name"`
		StoreName string `json:"store_name"`
	}
	decodeData(t, env, &user)
	assert.Equal(t, "Maria Souza", user.Name)
	assert.Equal(t, "Mercadinho", user.StoreName)

	resp, _ = srv.do(t, http.MethodPost, "/login", "", map[string]any{"email": "a@b.com", "password": "nova-senha"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = srv.do(t, http.MethodDelete, "/users/"+id, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = srv.do(t, http.MethodGet, "/users/"+id, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Usuário não encontrado", env.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

type productBody struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	URLImage    string          `json:"url_image"`
}

func newProduct(code, name string, qty int) map[string]any {
	return map[string]any{
		"code":        code,
		"name":        name,
		"description": "Produto de teste da loja",
		"price":       "7.90",
		"quantity":    qty,
	}
}

func createProduct(t *testing.T, srv *testServer, tok string, body map[string]any) productBody {
	t.Helper()
	resp, env := srv.do(t, http.MethodPost, "/products", tok, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p productBody
	decodeData(t, env, &p)
	return p
}

func TestProducts_CrearObtenerRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	body := newProduct("7891000100103", "Arroz Tipo 1", 10)
	body["url_image"] = "https://cdn.example.com/arroz.png"
	created := createProduct(t, srv, tok, body)

	resp, env := srv.do(t, http.MethodGet, "/products/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got productBody
	decodeData(t, env, &got)
	assert.Equal(t, "7891000100103", got.Code)
	assert.Equal(t, "Arroz Tipo 1", got.Name)
	assert.Equal(t, "Produto de teste da loja", got.Description)
	assert.True(t, decimal.RequireFromString("7.90").Equal(got.Price))
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, "https://cdn.example.com/arroz.png", got.URLImage)

	resp, env = srv.do(t, http.MethodGet, "/products/code/7891000100103", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, env, &got)
	assert.Equal(t, created.ID, got.ID)
}

func TestProducts_Validacion(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPost, "/products", tok, map[string]any{
		"code": "123", "name": "A", "description": "curta", "price": 0, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	paths := map[string]bool{}
	for _, e := range env.Errors {
		paths[e.Path] = true
	}
	for _, p := range []string{"code", "name", "description", "price", "quantity"} {
		assert.True(t, paths[p], "falta error en %s", p)
	}
}

func TestProducts_NormalizaYValidaPrecio(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	cases := []struct {
		field, value, path string
	}{
		{"code", " 123456789012", "code"},
		{"name", " a", "name"},
		{"price", "9.999", "price"},
		{"price", "10000000000", "price"},
	}
	for _, tc := range cases {
		body := newProduct("7891000100103", "Arroz", 10)
		body[tc.field] = tc.value
		resp, env := srv.do(t, http.MethodPost, "/products", tok, body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.value)
		require.Len(t, env.Errors, 1, tc.value)
		assert.Equal(t, tc.path, env.Errors[0].Path)
	}

	body := newProduct(" 7891000100103 ", "  Arroz  ", 10)
	created := createProduct(t, srv, tok, body)
	assert.Equal(t, "7891000100103", created.Code)
	assert.Equal(t, "Arroz", created.Name)
}

func TestProducts_IDNoUUID(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	calls := srv.store.Calls()

	resp, env := srv.do(t, http.MethodGet, "/products/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Produto não encontrado", env.Message)

	resp, _ = srv.do(t, http.MethodPut, "/products/abc", tok, newProduct("7891000100103", "Arroz", 1))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodDelete, "/products/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, calls, srv.store.Calls(), "no debe llegar al store")
}

func TestProducts_CodigoDuplicado(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	createProduct(t, srv, tok, newProduct("7891000100103", "Arroz", 10))

	resp, env := srv.do(t, http.MethodPost, "/products", tok, newProduct("7891000100103", "Outro", 1))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Já existe um produto com este código", env.Message)
}

func TestProducts_ListarActualizarExcluir(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	arroz := createProduct(t, srv, tok, newProduct("7891000100103", "Arroz", 10))
	createProduct(t, srv, tok, newProduct("7892000200206", "Feijão Preto", 3))

	resp, env := srv.do(t, http.MethodGet, "/products?search=feijao", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []productBody
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Feijão Preto", list[0].Name)

	resp, env = srv.do(t, http.MethodGet, "/products?search=7891", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, arroz.ID, list[0].ID)

	upd := newProduct("7891000100103", "Arroz Integral", 12)
	resp, env = srv.do(t, http.MethodPut, "/products/"+arroz.ID, tok, upd)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got productBody
	decodeData(t, env, &got)
	assert.Equal(t, "Arroz Integral", got.Name)
	assert.Equal(t, 12, got.Quantity)

	resp, env = srv.do(t, http.MethodDelete, "/products/"+arroz.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Produto excluído com sucesso", env.Message)

	resp, env = srv.do(t, http.MethodGet, "/products/"+arroz.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Produto não encontrado", env.Message)
}

func TestProducts_AisladosPorDueno(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	srv.signUp(t, "c@d.com")
	tokA := srv.login(t, "a@b.com")
	tokC := srv.login(t, "c@d.com")
	p := createProduct(t, srv, tokA, newProduct("7891000100103", "Arroz", 10))

	resp, _ := srv.do(t, http.MethodGet, "/products/"+p.ID, tokC, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodDelete, "/products/"+p.ID, tokC, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env := srv.do(t, http.MethodGet, "/products", tokC, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []productBody
	decodeData(t, env, &list)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sales
// ──────────────────────────────────────────────────────────────────────────────

type saleBody struct {
	ID            string          `json:"id"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Items         []struct {
		Order int    `json:"order"`
		Cod   string `json:"cod"`
	} `json:"items"`
}

func scenarioSale() map[string]any {
	return map[string]any{
		"items": []map[string]any{{
			"order": 1, "cod": "1234567890123", "name_product": "X",
			"unit_value": 10, "quantity": 2, "total": 20,
		}},
		"sub_total":      20,
		"total":          20,
		"payment_method": "pix",
	}
}

func TestSales_CrearVentaDocumentada(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	resp, env := srv.do(t, http.MethodPost, "/sales", tok, scenarioSale())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var sale saleBody
	decodeData(t, env, &sale)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "1234567890123", sale.Items[0].Cod)
	assert.True(t, decimal.NewFromInt(20).Equal(sale.Total))
	assert.Equal(t, "pix", sale.PaymentMethod)

	resp, env = srv.do(t, http.MethodGet, "/sales/"+sale.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got saleBody
	decodeData(t, env, &got)
	assert.Len(t, got.Items, 1)
}

func TestSales_SinItems(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	before := srv.store.Calls()

	body := scenarioSale()
	delete(body, "items")
	resp, env := srv.do(t, http.MethodPost, "/sales", tok, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "items", env.Errors[0].Path)
	assert.Equal(t, before, srv.store.Calls(), "validación antes de tocar el store")
}

func TestSales_TotalesNoCuadran(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	body := scenarioSale()
	body["total"] = 25
	resp, env := srv.do(t, http.MethodPost, "/sales", tok, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "total", env.Errors[0].Path)
}

func TestSales_DescuentaStockYRechazaSinStock(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	p := createProduct(t, srv, tok, newProduct("1234567890123", "Arroz", 10))

	resp, _ := srv.do(t, http.MethodPost, "/sales", tok, scenarioSale())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := srv.do(t, http.MethodGet, "/products/"+p.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got productBody
	decodeData(t, env, &got)
	assert.Equal(t, 8, got.Quantity)

	big := scenarioSale()
	big["items"] = []map[string]any{{
		"order": 1, "cod": "1234567890123", "name_product": "Arroz",
		"unit_value": 10, "quantity": 9, "total": 90,
	}}
	big["sub_total"] = 90
	big["total"] = 90
	resp, env = srv.do(t, http.MethodPost, "/sales", tok, big)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Estoque insuficiente", env.Message)

	resp, env = srv.do(t, http.MethodGet, "/sales", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []saleBody
	decodeData(t, env, &list)
	assert.Len(t, list, 1, "la venta rechazada no deja rastro")
}

func TestSales_Excluir(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	_, env := srv.do(t, http.MethodPost, "/sales", tok, scenarioSale())
	var sale saleBody
	decodeData(t, env, &sale)

	resp, env := srv.do(t, http.MethodDelete, "/sales/"+sale.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Venda excluída com sucesso", env.Message)
	var deleted saleBody
	decodeData(t, env, &deleted)
	assert.Equal(t, sale.ID, deleted.ID)

	resp, env = srv.do(t, http.MethodGet, "/sales/"+sale.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Venda não encontrada", env.Message)

	resp, _ = srv.do(t, http.MethodDelete, "/sales/"+sale.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSales_IDNoUUID(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	calls := srv.store.Calls()

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/sales/abc"},
		{http.MethodDelete, "/sales/abc"},
		{http.MethodGet, "/sales/abc/receipt"},
	} {
		resp, env := srv.do(t, req.method, req.path, tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, req.path)
		assert.Equal(t, "Venda não encontrada", env.Message, req.path)
	}
	assert.Equal(t, calls, srv.store.Calls(), "no debe llegar al store")
}

func TestSales_MasDeDosDecimales(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	body := scenarioSale()
	body["discounts"] = "0.001"
	resp, env := srv.do(t, http.MethodPost, "/sales", tok, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "discounts", env.Errors[0].Path)
}

func TestSales_ComprobantePDF(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")

	_, env := srv.do(t, http.MethodPost, "/sales", tok, scenarioSale())
	var sale saleBody
	decodeData(t, env, &sale)

	resp, _ := srv.do(t, http.MethodGet, "/sales/"+sale.ID+"/receipt", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "recibo_"+sale.ID[:8]+".pdf")
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	srv.signUp(t, "c@d.com")
	other := srv.login(t, "c@d.com")
	resp, _ = srv.do(t, http.MethodGet, "/sales/"+sale.ID+"/receipt", other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "a@b.com")
	tok := srv.login(t, "a@b.com")
	createProduct(t, srv, tok, newProduct("1234567890123", "Arroz", 10))
	createProduct(t, srv, tok, newProduct("7892000200206", "Feijão", 2))
	srv.do(t, http.MethodPost, "/sales", tok, scenarioSale())

	resp, env := srv.do(t, http.MethodGet, "/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		Products int             `json:"products"`
		Sales    int             `json:"sales"`
		Revenue  decimal.Decimal `json:"revenue"`
		LowStock int             `json:"low_stock"`
	}
	decodeData(t, env, &dash)
	assert.Equal(t, 2, dash.Products)
	assert.Equal(t, 1, dash.Sales)
	assert.True(t, decimal.NewFromInt(20).Equal(dash.Revenue))
	assert.Equal(t, 1, dash.LowStock)
}
