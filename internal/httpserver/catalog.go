package httpserver

import (
	"errors"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/service/search"
	"github.com/greenmile/leafdrop/internal/util"
)

type CatalogHandler struct {
	Repo  *repo.GormRepo
	ES    *elasticsearch.Client
	Index string
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	categoryID := uint(parseIntDefault(c.QueryParam("category_id"), 0))
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Repo.ListProducts(ctx, categoryID, offset, limit)
	if err != nil {
		return httpError(l, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	cats, err := h.Repo.ListCategories(ctx)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	// The search backend is optional; without it the route still exists.
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is unavailable")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, limit)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
