package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backofficeapp "github.com/nordiclux/storefront/internal/backoffice/app"
	cartapp "github.com/nordiclux/storefront/internal/cart/app"
	catalogapp "github.com/nordiclux/storefront/internal/catalog/app"
	"github.com/nordiclux/storefront/internal/chat"
	checkoutapp "github.com/nordiclux/storefront/internal/checkout/app"
	"github.com/nordiclux/storefront/internal/checkout/infra/adapter"
	"github.com/nordiclux/storefront/internal/importer"
	orderapp "github.com/nordiclux/storefront/internal/order/app"
	orderdomain "github.com/nordiclux/storefront/internal/order/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
	"github.com/nordiclux/storefront/pkg/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := kvstore.NewMemory()
	log := logger.Nop()

	catalog := catalogapp.NewService(store, log)
	cart := cartapp.NewService(store, log)
	orders := orderapp.NewService(store, log)
	categories := backofficeapp.NewCategories(store, log)
	customers := backofficeapp.NewCustomers(store, log)
	seo := backofficeapp.NewSEO(store, log)
	users := backofficeapp.NewUsers(store, log)
	auth := backofficeapp.NewAuth(users, store, log)

	for _, load := range []func() error{
		catalog.Load, cart.Load, orders.Load,
		categories.Load, customers.Load, seo.Load, users.Load, auth.Load,
	} {
		require.NoError(t, load())
	}

	cartReader := adapter.NewCartServiceReader(cart)
	wizard := checkoutapp.NewWizard(cartReader, store, log)
	payment := checkoutapp.NewPayment(store, orders, adapter.NewCustomerRoster(customers), cartReader, log)

	return New(Services{
		Catalog:    catalog,
		Cart:       cart,
		Wizard:     wizard,
		Payment:    payment,
		Importer:   importer.New(catalog, log),
		Orders:     orders,
		Categories: categories,
		Customers:  customers,
		SEO:        seo,
		Users:      users,
		Auth:       auth,
		Chat:       chat.New(""),
	}, log)
}

func jsonReq(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signIn(t *testing.T, s *Server) string {
	t.Helper()
	resp, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/admin/login", fiber.Map{
		"email":    "admin@nordiclux.com",
		"password": "admin123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sess struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &sess)
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListProductsSeeded(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/api/products", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.Total)
}

func TestProductSearchQuery(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/api/products?q=cerave", nil))
	require.NoError(t, err)

	var body struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 1, body.Total)
}

func TestGetUnknownProduct(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/api/products/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRoundTrip(t *testing.T) {
	s := newTestServer(t)
	id := s.svcs.Catalog.List()[0].ID

	resp, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/cart/items", fiber.Map{"productId": id, "quantity": 2}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var state struct {
		Count  int  `json:"count"`
		IsOpen bool `json:"isOpen"`
	}
	decodeBody(t, resp, &state)
	assert.Equal(t, 2, state.Count)
	assert.True(t, state.IsOpen)

	resp, err = s.App().Test(jsonReq(t, http.MethodPut, "/api/cart/items/"+id, fiber.Map{"quantity": 5}))
	require.NoError(t, err)
	decodeBody(t, resp, &state)
	assert.Equal(t, 5, state.Count)

	resp, err = s.App().Test(jsonReq(t, http.MethodDelete, "/api/cart/items/"+id, nil))
	require.NoError(t, err)
	decodeBody(t, resp, &state)
	assert.Zero(t, state.Count)
}

func TestCartWhatsAppLink(t *testing.T) {
	s := newTestServer(t)
	id := s.svcs.Catalog.List()[0].ID
	_, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/cart/items", fiber.Map{"productId": id, "quantity": 1}))
	require.NoError(t, err)

	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/api/cart/whatsapp", nil))
	require.NoError(t, err)

	var body struct {
		URL string `json:"url"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.URL, "api.whatsapp.com/send/?phone=94770130299")
}

func TestCheckoutBlockedWithoutCustomerInfo(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/checkout/next", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = s.App().Test(jsonReq(t, http.MethodGet, "/api/checkout", nil))
	require.NoError(t, err)
	var state struct {
		StepNumber int `json:"stepNumber"`
	}
	decodeBody(t, resp, &state)
	assert.Equal(t, 1, state.StepNumber)
}

func TestAdminRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodGet, "/api/admin/products", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/admin/login", fiber.Map{
		"email":    "admin@nordiclux.com",
		"password": "nope",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminProductCRUD(t *testing.T) {
	s := newTestServer(t)
	token := signIn(t, s)

	authed := func(req *http.Request) *http.Request {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		return req
	}

	resp, err := s.App().Test(authed(jsonReq(t, http.MethodPost, "/api/admin/products", fiber.Map{
		"name":     "Vitamin C Suspension",
		"category": "Serum",
		"price":    7.90,
		"image":    "https://example.com/vitc.jpg",
		"stock":    40,
		"sku":      "ORD-VIT-001",
	})))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)

	// Same SKU again conflicts.
	resp, err = s.App().Test(authed(jsonReq(t, http.MethodPost, "/api/admin/products", fiber.Map{
		"name":     "Dup",
		"category": "Serum",
		"price":    1.0,
		"image":    "x",
		"stock":    1,
		"sku":      "ord-vit-001",
	})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = s.App().Test(authed(jsonReq(t, http.MethodPut, "/api/admin/products/"+created.ID, fiber.Map{"price": 8.90})))
	require.NoError(t, err)
	var updated struct {
		Price float64 `json:"price"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, 8.90, updated.Price)

	resp, err = s.App().Test(authed(jsonReq(t, http.MethodDelete, "/api/admin/products/"+created.ID, nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAdminInvoiceStatusUpdate(t *testing.T) {
	s := newTestServer(t)
	token := signIn(t, s)

	inv, err := s.svcs.Orders.Add(orderdomain.Invoice{
		OrderNumber:   "ORD-00000001",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Total:         115.0,
	})
	require.NoError(t, err)

	req := jsonReq(t, http.MethodPut, "/api/admin/invoices/"+inv.ID, fiber.Map{
		"status":        "shipped",
		"paymentStatus": "refunded",
	})
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, "refunded", updated.PaymentStatus)
}

func TestImportCSVUpload(t *testing.T) {
	s := newTestServer(t)
	token := signIn(t, s)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "name,category,price,image,stock,sku\nImported Serum,Serum,9.99,https://example.com/i.jpg,10,IMP-001\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/admin/products/import", &buf)
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		SuccessCount int `json:"successCount"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result.SuccessCount)

	_, ok := s.svcs.Catalog.FindBySKU("IMP-001")
	assert.True(t, ok)
}

func TestTemplateDownload(t *testing.T) {
	s := newTestServer(t)
	token := signIn(t, s)

	req := jsonReq(t, http.MethodGet, "/api/admin/products/template", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, fmt.Sprintf("attachment; filename=%q", catalogapp.TemplateFilename),
		resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), "name,brand,category,price")
}

func TestSEOUpsertByPage(t *testing.T) {
	s := newTestServer(t)
	token := signIn(t, s)

	req := jsonReq(t, http.MethodPut, "/api/admin/seo/shop", fiber.Map{"title": "Shop All"})
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Public page metadata reflects the change.
	resp, err = s.App().Test(jsonReq(t, http.MethodGet, "/api/seo/shop", nil))
	require.NoError(t, err)
	var entry struct {
		Title string `json:"title"`
	}
	decodeBody(t, resp, &entry)
	assert.Equal(t, "Shop All", entry.Title)
}

// TestCheckoutEndToEnd drives the whole purchase through HTTP: cart, wizard,
// order placement and payment. It tolerates the simulated processing delays.
func TestCheckoutEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("includes simulated processing delays")
	}
	s := newTestServer(t)
	id := s.svcs.Catalog.List()[0].ID

	_, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/cart/items", fiber.Map{"productId": id, "quantity": 1}))
	require.NoError(t, err)

	_, err = s.App().Test(jsonReq(t, http.MethodPut, "/api/checkout/customer", fiber.Map{
		"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "phone": "555-0101",
	}))
	require.NoError(t, err)
	_, err = s.App().Test(jsonReq(t, http.MethodPost, "/api/checkout/next", nil))
	require.NoError(t, err)

	_, err = s.App().Test(jsonReq(t, http.MethodPut, "/api/checkout/address", fiber.Map{
		"address": "1 Main St", "city": "Oslo", "state": "OS", "zipCode": "0150", "country": "Norway",
	}))
	require.NoError(t, err)
	_, err = s.App().Test(jsonReq(t, http.MethodPost, "/api/checkout/next", nil))
	require.NoError(t, err)

	resp, err := s.App().Test(jsonReq(t, http.MethodPost, "/api/checkout/place-order", nil), 10000)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = s.App().Test(jsonReq(t, http.MethodPost, "/api/checkout/payment", fiber.Map{
		"cardNumber": "4242 4242 4242 4242", "cardName": "Jane Doe", "expiryDate": "12/28", "cvv": "123",
	}), 10000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conf struct {
		OrderNumber string  `json:"orderNumber"`
		Total       float64 `json:"total"`
	}
	decodeBody(t, resp, &conf)
	assert.Contains(t, conf.OrderNumber, "ORD-")
	assert.Greater(t, conf.Total, 0.0)

	assert.Empty(t, s.svcs.Cart.Lines(), "cart is emptied after payment")
	assert.Len(t, s.svcs.Orders.List(), 1)
	assert.Len(t, s.svcs.Customers.List(), 1, "paying customer lands in the roster")
}
