package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/middleware/auth"
)

type Deps struct {
	ZonesHandler        *ZonesHandler
	CatalogHandler      *CatalogHandler
	OrderHandler        *OrderHandler
	ProductAdminHandler *ProductAdminHandler
	ZoneAdminHandler    *ZoneAdminHandler
	OrderAdminHandler   *OrderAdminHandler
	BackofficeHandler   *BackofficeHandler
	Verifier            *auth.TokenVerifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	// Storefront.
	v1.GET("/zones/check", d.ZonesHandler.CheckZip)
	v1.GET("/products", d.CatalogHandler.GetProducts)
	v1.GET("/products/:id", d.CatalogHandler.GetProduct)
	v1.GET("/categories", d.CatalogHandler.GetCategories)
	v1.GET("/search", d.CatalogHandler.Search)
	v1.POST("/orders", d.OrderHandler.PlaceOrder)
	v1.GET("/orders/track", d.OrderHandler.TrackOrder)

	// Back office.
	admin := v1.Group("/admin", d.Verifier.AdminOnly)

	admin.POST("/products", d.ProductAdminHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductAdminHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductAdminHandler.DeleteProduct)
	admin.POST("/products/:id/image", d.ProductAdminHandler.UploadImage)

	admin.GET("/regions", d.ZoneAdminHandler.ListRegions)
	admin.POST("/regions", d.ZoneAdminHandler.CreateRegion)
	admin.PATCH("/regions/:id", d.ZoneAdminHandler.PatchRegion)
	admin.DELETE("/regions/:id", d.ZoneAdminHandler.DeleteRegion)
	admin.GET("/zips", d.ZoneAdminHandler.ListZipEntries)
	admin.POST("/zips", d.ZoneAdminHandler.CreateZipEntry)
	admin.DELETE("/zips/:id", d.ZoneAdminHandler.DeleteZipEntry)

	admin.GET("/orders", d.OrderAdminHandler.ListOrders)
	admin.GET("/orders/:id", d.OrderAdminHandler.GetOrder)
	admin.PATCH("/orders/:id/status", d.OrderAdminHandler.UpdateStatus)
	admin.POST("/orders/:id/assignment", d.OrderAdminHandler.AssignDriver)
	admin.POST("/orders/:id/approve", d.OrderAdminHandler.Approve)

	admin.POST("/categories", d.BackofficeHandler.CreateCategory)
	admin.DELETE("/categories/:id", d.BackofficeHandler.DeleteCategory)
	admin.GET("/customers", d.BackofficeHandler.ListCustomers)
	admin.GET("/customers/:id", d.BackofficeHandler.GetCustomer)
	admin.PATCH("/customers/:id", d.BackofficeHandler.PatchCustomer)
	admin.GET("/drivers", d.BackofficeHandler.ListDrivers)
	admin.POST("/drivers", d.BackofficeHandler.CreateDriver)
	admin.PATCH("/drivers/:id", d.BackofficeHandler.PatchDriver)
	admin.GET("/rewards", d.BackofficeHandler.ListRewards)
	admin.POST("/rewards", d.BackofficeHandler.CreateReward)
	admin.PATCH("/rewards/:id", d.BackofficeHandler.PatchReward)
	admin.DELETE("/rewards/:id", d.BackofficeHandler.DeleteReward)
}
