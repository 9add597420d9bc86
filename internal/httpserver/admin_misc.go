package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/transport"
	"github.com/greenmile/leafdrop/internal/util"
)

// BackofficeHandler covers the small admin CRUD surfaces: categories,
// customers, drivers and rewards.
type BackofficeHandler struct {
	Repo *repo.GormRepo
}

func (h *BackofficeHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	cat := models.Category{Name: req.Name, IsActive: true}
	if _, err := h.Repo.CreateCategory(ctx, &cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "category already exists")
		}
		return httpError(l, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *BackofficeHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_category")

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return httpError(l, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BackofficeHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_customers")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, customers, err := h.Repo.ListCustomers(ctx, offset, limit)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": customers,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *BackofficeHandler) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_customer")

	id, err := parseID(c)
	if err != nil {
		return err
	}
	customer, err := h.Repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *BackofficeHandler) PatchCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_customer")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return httpError(l, err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.Zip != nil {
		customer.Zip = *req.Zip
	}

	if _, err := h.Repo.SaveCustomer(ctx, customer); err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *BackofficeHandler) ListDrivers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_drivers")

	drivers, err := h.Repo.ListDrivers(ctx)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, drivers)
}

func (h *BackofficeHandler) CreateDriver(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_driver")

	var req transport.CreateDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || len(req.Phone) < 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a 10+ digit phone are required")
	}

	driver := models.Driver{Name: req.Name, Phone: req.Phone, IsActive: true}
	if _, err := h.Repo.CreateDriver(ctx, &driver); err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusCreated, driver)
}

func (h *BackofficeHandler) PatchDriver(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_driver")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	driver, err := h.Repo.GetDriver(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "driver not found")
		}
		return httpError(l, err)
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.IsActive != nil {
		driver.IsActive = *req.IsActive
	}

	if _, err := h.Repo.SaveDriver(ctx, driver); err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, driver)
}

func (h *BackofficeHandler) ListRewards(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_rewards")

	rewards, err := h.Repo.ListRewards(ctx)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, rewards)
}

func (h *BackofficeHandler) CreateReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_reward")

	var req transport.CreateRewardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.PointsCost < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a non-negative points_cost are required")
	}

	reward := models.Reward{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		IsActive:    true,
	}
	if _, err := h.Repo.CreateReward(ctx, &reward); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "reward already exists")
		}
		return httpError(l, err)
	}
	return c.JSON(http.StatusCreated, reward)
}

func (h *BackofficeHandler) PatchReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_reward")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchRewardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var reward models.Reward
	if err := h.Repo.DB.WithContext(ctx).First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		}
		return httpError(l, err)
	}

	if req.Name != nil {
		reward.Name = *req.Name
	}
	if req.Description != nil {
		reward.Description = *req.Description
	}
	if req.PointsCost != nil {
		reward.PointsCost = *req.PointsCost
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}

	if _, err := h.Repo.SaveReward(ctx, &reward); err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, reward)
}

func (h *BackofficeHandler) DeleteReward(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_reward")

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.DeleteReward(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		}
		return httpError(l, err)
	}
	return c.NoContent(http.StatusNoContent)
}
