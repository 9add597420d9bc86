package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/transport"
)

type ZoneAdminHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (h *ZoneAdminHandler) ListRegions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_regions")

	regions, err := h.Repo.ListRegions(ctx)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, regions)
}

func (h *ZoneAdminHandler) CreateRegion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_region")

	var req transport.CreateRegionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.DeliveryFee < 0 || req.MinOrder < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "delivery_fee and min_order must be >= 0")
	}

	region := models.Region{
		Name:        req.Name,
		DeliveryFee: req.DeliveryFee,
		MinOrder:    req.MinOrder,
		IsActive:    true,
	}
	if _, err := h.Repo.CreateRegion(ctx, &region); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "region name already exists")
		}
		return httpError(l, err)
	}

	publishEvent(c, h.Producer, mykafka.TopicZoneEvents, fmt.Sprint(region.ID), map[string]interface{}{
		"type":      "region_created",
		"region_id": region.ID,
		"name":      region.Name,
	})
	return c.JSON(http.StatusCreated, region)
}

func (h *ZoneAdminHandler) PatchRegion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_region")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchRegionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	region, err := h.Repo.GetRegion(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "region not found")
		}
		return httpError(l, err)
	}

	if req.Name != nil {
		region.Name = *req.Name
	}
	if req.DeliveryFee != nil {
		region.DeliveryFee = *req.DeliveryFee
	}
	if req.MinOrder != nil {
		region.MinOrder = *req.MinOrder
	}
	if req.IsActive != nil {
		region.IsActive = *req.IsActive
	}

	if _, err := h.Repo.SaveRegion(ctx, region); err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, region)
}

func (h *ZoneAdminHandler) DeleteRegion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_region")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteRegion(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "region not found")
		}
		return httpError(l, err)
	}

	publishEvent(c, h.Producer, mykafka.TopicZoneEvents, fmt.Sprint(id), map[string]interface{}{
		"type":      "region_deleted",
		"region_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ZoneAdminHandler) ListZipEntries(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_zips")

	regionID := uint(parseIntDefault(c.QueryParam("region_id"), 0))
	entries, err := h.Repo.ListZipEntries(ctx, regionID)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *ZoneAdminHandler) CreateZipEntry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_zip")

	var req transport.CreateZipEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if len(req.Zip) < 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "zip must be at least 5 characters")
	}
	if req.RegionID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "region_id is required")
	}

	if _, err := h.Repo.GetRegion(ctx, req.RegionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "region not found")
		}
		return httpError(l, err)
	}

	entry := models.ZipEntry{Zip: req.Zip, RegionID: req.RegionID, IsActive: true}
	if _, err := h.Repo.CreateZipEntry(ctx, &entry); err != nil {
		// One region per zip, enforced by the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "zip already mapped to a region")
		}
		return httpError(l, err)
	}

	publishEvent(c, h.Producer, mykafka.TopicZoneEvents, entry.Zip, map[string]interface{}{
		"type":      "zip_added",
		"zip":       entry.Zip,
		"region_id": entry.RegionID,
	})
	return c.JSON(http.StatusCreated, entry)
}

func (h *ZoneAdminHandler) DeleteZipEntry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_zip")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteZipEntry(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "zip entry not found")
		}
		return httpError(l, err)
	}
	return c.NoContent(http.StatusNoContent)
}
