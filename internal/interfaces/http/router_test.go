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
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	appcart "github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const (
	adminEmail    = "admin@tienda.test"
	adminPassword = "clave-admin"
)

type testServer struct {
	app    *fiber.App
	items  *memory.ItemRepo
	cookie *http.Cookie
}

func newTestServer(t *testing.T, seed ...*entity.Item) *testServer {
	t.Helper()
	items := memory.NewItemRepository(seed...)
	carts := memory.NewCartStore(time.Hour)
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{Immutable: true})
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: catalog.NewUseCase(items),
		CartUC: appcart.NewUseCase(carts, items, pdf.NewMarotoQuoteGenerator(), appcart.CheckoutConfig{
			WhatsAppNumber: "573001234567",
			StoreName:      "Tienda Test",
		}, logger.Nop()),
		AuthUC: auth.NewAuthUseCase(
			auth.AdminCredentials{Email: adminEmail, PasswordHash: string(hash)},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer},
		),
		Sessions:  session.New(session.Config{Expiration: time.Hour}),
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, items: items}
}

// do lanza la petición reutilizando la cookie de sesión, como haría el navegador.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			s.cookie = ck
		}
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func item(id, name string, price string, stock int) *entity.Item {
	return &entity.Item{
		ID: id, Name: name, Category: "Accesorios",
		Price: decimal.RequireFromString(price), Stock: stock, Active: true,
	}
}

func TestCart_AgregarYVer(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 3))

	resp := s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NotNil(t, s.cookie, "la respuesta debe emitir la cookie de sesión")

	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()

	out := decode[dto.CartResponse](t, s.do(t, http.MethodGet, "/api/cart", nil))
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 2, out.Lines[0].Quantity)
	assert.Equal(t, 2, out.ItemCount)
	assert.True(t, decimal.RequireFromString("40000").Equal(out.Total))
}

func TestCart_SesionesAisladas(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 3))
	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()

	// Otro visitante, sin cookie.
	s.cookie = nil
	out := decode[dto.CartResponse](t, s.do(t, http.MethodGet, "/api/cart", nil))
	assert.Empty(t, out.Lines)
}

func TestCart_StockInsuficiente_409(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 1))
	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()

	resp := s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
}

func TestCart_ProductoInexistente_409(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "nope"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ITEM_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCart_ActualizarCantidad(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 5), item("b", "Bolso", "50000", 2))
	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()

	out := decode[dto.CartResponse](t, s.do(t, http.MethodPost, "/api/cart/update", dto.UpdateCartRequest{ItemID: "a", Quantity: 4}))
	assert.Equal(t, 4, out.ItemCount)

	resp := s.do(t, http.MethodPost, "/api/cart/update", dto.UpdateCartRequest{ItemID: "b", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_IN_CART", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPost, "/api/cart/update", dto.UpdateCartRequest{ItemID: "a", Quantity: -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)

	out = decode[dto.CartResponse](t, s.do(t, http.MethodPost, "/api/cart/update", dto.UpdateCartRequest{ItemID: "a", Quantity: 0}))
	assert.Empty(t, out.Lines)
}

// form envía un cuerpo application/x-www-form-urlencoded con la cookie de sesión actual.
func (s *testServer) form(t *testing.T, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			s.cookie = ck
		}
	}
	return resp
}

func TestCart_FormularioConservaItemID(t *testing.T) {
	s := newTestServer(t, item("aa", "Aretes", "20000", 5), item("zz", "Bolso", "50000", 5))

	resp := s.form(t, "/api/cart/add", "item_id=aa")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	visitante := s.cookie

	// Otros visitantes reutilizan los buffers de petición.
	for i := 0; i < 5; i++ {
		s.cookie = nil
		s.form(t, "/api/cart/add", "item_id=zz").Body.Close()
		s.form(t, "/api/cart/update", "item_id=zz&quantity=2").Body.Close()
	}

	s.cookie = visitante
	out := decode[dto.CartResponse](t, s.do(t, http.MethodGet, "/api/cart", nil))
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "aa", out.Lines[0].ItemID)
	assert.Equal(t, 1, out.Lines[0].Quantity)
}

func TestCart_CuerpoInvalido_400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/cart/add", nil, "Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCart_ReconciliaTrasCambioDeStock(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 5))
	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()
	s.do(t, http.MethodPost, "/api/cart/update", dto.UpdateCartRequest{ItemID: "a", Quantity: 5}).Body.Close()

	it := item("a", "Aretes", "20000", 2)
	require.NoError(t, s.items.Update(t.Context(), it))

	out := decode[dto.CartResponse](t, s.do(t, http.MethodGet, "/api/cart", nil))
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 2, out.Lines[0].Quantity)
}

func TestCheckoutLink(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 3))

	resp := s.do(t, http.MethodPost, "/api/checkout-link", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode[dto.ErrorResponse](t, resp).Code)

	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()
	out := decode[dto.CheckoutLinkResponse](t, s.do(t, http.MethodPost, "/api/checkout-link", nil))
	assert.True(t, strings.HasPrefix(out.Link, "https://wa.me/573001234567?text="))
	assert.Contains(t, out.Message, "- Aretes (Accesorios) x1 - $ 20.000,00 c/u = $ 20.000,00")
	assert.Equal(t, 1, out.Cart.ItemCount)
}

func TestCart_VaciarYCotizacionPDF(t *testing.T) {
	s := newTestServer(t, item("a", "Aretes", "20000", 3))
	s.do(t, http.MethodPost, "/api/cart/add", dto.AddToCartRequest{ItemID: "a"}).Body.Close()

	resp := s.do(t, http.MethodGet, "/api/cart/quote.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	out := decode[dto.CartResponse](t, s.do(t, http.MethodPost, "/api/cart/clear", nil))
	assert.Empty(t, out.Lines)

	resp = s.do(t, http.MethodGet, "/api/cart/quote.pdf", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalog_PublicoOcultaInactivos(t *testing.T) {
	inactivo := item("x", "Oculto", "1000", 5)
	inactivo.Active = false
	s := newTestServer(t, item("a", "Aretes", "20000", 3), inactivo)

	out := decode[dto.CatalogResponse](t, s.do(t, http.MethodGet, "/api/catalog", nil))
	require.Len(t, out.Categories, 1)
	require.Len(t, out.Categories[0].Items, 1)
	assert.Equal(t, "a", out.Categories[0].Items[0].ID)

	resp := s.do(t, http.MethodGet, "/api/catalog/x", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdmin_LoginYCrud(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: adminEmail, Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/admin/items", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	login := decode[dto.LoginResponse](t, s.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: adminEmail, Password: adminPassword}))
	require.NotEmpty(t, login.Token)
	bearer := "Bearer " + login.Token

	resp = s.do(t, http.MethodPost, "/api/admin/items", dto.CreateItemRequest{
		Name: "Bolso", Category: "Bolsos", Price: decimal.NewFromInt(50000), Stock: 2,
	}, "Authorization", bearer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.True(t, created.Available)

	stock := 0
	updated := decode[dto.ItemResponse](t, s.do(t, http.MethodPut, "/api/admin/items/"+created.ID,
		dto.UpdateItemRequest{Stock: &stock}, "Authorization", bearer))
	assert.False(t, updated.Available)

	list := decode[dto.ItemListResponse](t, s.do(t, http.MethodGet, "/api/admin/items", nil, "Authorization", bearer))
	assert.Equal(t, 1, list.Total)

	resp = s.do(t, http.MethodDelete, "/api/admin/items/"+created.ID, nil, "Authorization", bearer)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPut, "/api/admin/items/"+created.ID, dto.UpdateItemRequest{Stock: &stock}, "Authorization", bearer)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
