package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/db"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/service/orders"
	"github.com/greenmile/leafdrop/internal/service/zones"
	"github.com/greenmile/leafdrop/internal/transport"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	Orders  *OrderHandler
	Zones   *ZonesHandler
	Product models.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	svc := &orders.Service{Repo: r, FreeDeliveryThreshold: 5000}

	env := &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     gdb,
		Orders: &OrderHandler{Svc: svc},
		Zones:  &ZonesHandler{Resolver: &zones.Resolver{Repo: r}},
	}

	region := models.Region{Name: "SFV", DeliveryFee: 500, MinOrder: 2000, IsActive: true}
	require.NoError(t, gdb.Create(&region).Error)
	require.NoError(t, gdb.Create(&models.ZipEntry{Zip: "91364", RegionID: region.ID, IsActive: true}).Error)

	category := models.Category{Name: "flower", IsActive: true}
	require.NoError(t, gdb.Create(&category).Error)
	env.Product = models.Product{Name: "OG Kush 3.5g", Price: 4500, CategoryID: category.ID, InventoryCount: 50, IsActive: true}
	require.NoError(t, gdb.Create(&env.Product).Error)

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func placeOrderRequest(env *testEnv) transport.PlaceOrderRequest {
	return transport.PlaceOrderRequest{
		Name:          "Dana",
		Phone:         "8185550134",
		Address:       "123 Ventura Blvd",
		City:          "Woodland Hills",
		Zip:           "91364",
		PaymentMethod: "cash",
		Items:         []transport.CartLine{{ProductID: env.Product.ID, Quantity: 1}},
	}
}

func TestPlaceOrderHandler_Success(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", placeOrderRequest(env))
	require.NoError(t, env.Orders.PlaceOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderNumber)
	assert.NotZero(t, resp.OrderID)
	assert.Equal(t, int64(5000), resp.Total)
	assert.Contains(t, resp.Message, resp.OrderNumber)
}

func TestPlaceOrderHandler_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	req := placeOrderRequest(env)
	req.Phone = "555"

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", req)
	err := env.Orders.PlaceOrder(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPlaceOrderHandler_BusinessRejection(t *testing.T) {
	env := newTestEnv(t)

	req := placeOrderRequest(env)
	req.Zip = "00000"

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", req)
	err := env.Orders.PlaceOrder(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	assert.Contains(t, fmt.Sprintf("%v", he.Message), "delivery")
}

func TestTrackOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", placeOrderRequest(env))
	require.NoError(t, env.Orders.PlaceOrder(c))
	var created transport.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/orders/track?number="+created.OrderNumber+"&phone=8185550134", nil)
	require.NoError(t, env.Orders.TrackOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail orders.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, created.OrderID, detail.Order.ID)
	assert.Len(t, detail.Items, 1)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/orders/track?number="+created.OrderNumber+"&phone=0000000000", nil)
	err := env.Orders.TrackOrder(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCheckZipHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/zones/check?zip=91364", nil)
	require.NoError(t, env.Zones.CheckZip(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var avail zones.Availability
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avail))
	assert.True(t, avail.Available)
	assert.Equal(t, "SFV", avail.RegionName)
	assert.Equal(t, int64(500), avail.DeliveryFee)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/zones/check?zip=00000", nil)
	require.NoError(t, env.Zones.CheckZip(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avail))
	assert.False(t, avail.Available)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/zones/check?zip=123", nil)
	err := env.Zones.CheckZip(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
