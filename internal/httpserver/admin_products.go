package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/objstore"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/service/search"
	"github.com/greenmile/leafdrop/internal/transport"
)

type ProductAdminHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
	Images   objstore.Store
}

func (h *ProductAdminHandler) indexProduct(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductAdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Price <= 0 || req.CategoryID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, price and category_id are required")
	}
	if req.InventoryCount < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "inventory_count must be >= 0")
	}

	prod := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CategoryID:     req.CategoryID,
		InventoryCount: req.InventoryCount,
		IsActive:       req.InventoryCount > 0,
		Brand:          req.Brand,
		StrainType:     req.StrainType,
		ThcPercent:     req.ThcPercent,
		CbdPercent:     req.CbdPercent,
		WeightGrams:    req.WeightGrams,
		Effects:        req.Effects,
	}

	if _, err := h.Repo.CreateProduct(ctx, &prod); err != nil {
		return httpError(l, err)
	}

	h.indexProduct(c, &prod)
	publishEvent(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(prod.ID), map[string]interface{}{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductAdminHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return httpError(l, err)
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be > 0")
		}
		prod.Price = *req.Price
	}
	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.StrainType != nil {
		prod.StrainType = *req.StrainType
	}
	if req.ThcPercent != nil {
		prod.ThcPercent = *req.ThcPercent
	}
	if req.CbdPercent != nil {
		prod.CbdPercent = *req.CbdPercent
	}
	if req.WeightGrams != nil {
		prod.WeightGrams = *req.WeightGrams
	}
	if req.Effects != nil {
		prod.Effects = *req.Effects
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	if req.InventoryCount != nil {
		// Manual stock correction. Zero stock always deactivates, the
		// same rule the order engine applies on sell-out.
		if *req.InventoryCount < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "inventory_count must be >= 0")
		}
		prod.InventoryCount = *req.InventoryCount
		if prod.InventoryCount == 0 {
			prod.IsActive = false
		}
	}

	if _, err := h.Repo.SaveProduct(ctx, prod); err != nil {
		return httpError(l, err)
	}

	h.indexProduct(c, prod)
	publishEvent(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(prod.ID), map[string]interface{}{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductAdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return httpError(l, err)
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, h.Index, id); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}
	publishEvent(c, h.Producer, mykafka.TopicProductEvents, fmt.Sprint(id), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

// UploadImage streams a product image to the object store and records
// the returned public URL on the product.
func (h *ProductAdminHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.upload_image")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return httpError(l, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file required")
	}
	src, err := file.Open()
	if err != nil {
		return httpError(l, err)
	}
	defer src.Close()

	key := fmt.Sprintf("product-%d-%s", prod.ID, uuid.NewString())
	url, err := h.Images.Put(ctx, key, file.Header.Get("Content-Type"), src)
	if err != nil {
		return httpError(l, err)
	}

	prod.ImageURL = url
	if _, err := h.Repo.SaveProduct(ctx, prod); err != nil {
		return httpError(l, err)
	}

	h.indexProduct(c, prod)
	return c.JSON(http.StatusOK, prod)
}
