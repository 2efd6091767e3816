package handler

import (
	"net/http"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LocationRequest covers retail outlets and warehouses, which share a shape
type LocationRequest struct {
	Name     *string `json:"name"`
	Image    *string `json:"image"`
	MapURL   *string `json:"map_url"`
	Phone    *string `json:"phone"`
	Hours    *string `json:"hours"`
	IsActive *bool   `json:"is_active"`
}

// ListRetailOutlets returns active outlets for the public site
func ListRetailOutlets(c echo.Context) error {
	log := logger.FromContext(c)

	var outlets []model.RetailOutlet
	err := database.GetDB().
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").
		Find(&outlets).Error
	if err != nil {
		log.Error("Failed to list retail outlets", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve retail outlets"})
	}

	return c.JSON(http.StatusOK, outlets)
}

// AdminListRetailOutlets returns all non-deleted outlets
func AdminListRetailOutlets(c echo.Context) error {
	log := logger.FromContext(c)

	var outlets []model.RetailOutlet
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&outlets).Error
	if err != nil {
		log.Error("Failed to list retail outlets", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve retail outlets"})
	}

	return c.JSON(http.StatusOK, outlets)
}

// CreateRetailOutlet adds a new retail outlet
func CreateRetailOutlet(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	outlet := model.RetailOutlet{
		Name:      *req.Name,
		IsActive:  true,
		CreatedBy: &actor.AdminID,
	}
	applyLocation(&outlet.Image, &outlet.MapURL, &outlet.Phone, &outlet.Hours, &outlet.IsActive, &req)

	db := database.GetDB()
	if err := db.Create(&outlet).Error; err != nil {
		log.Error("Failed to create retail outlet", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create retail outlet"})
	}

	audit.Record(db, &actor.AdminID, "RETAIL_OUTLET_CREATED", map[string]interface{}{
		"id":   outlet.ID,
		"name": outlet.Name,
	})

	return c.JSON(http.StatusCreated, outlet)
}

// UpdateRetailOutlet applies a partial update
func UpdateRetailOutlet(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var outlet model.RetailOutlet
	if err := db.First(&outlet, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Retail outlet not found"})
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Name != nil {
		outlet.Name = *req.Name
	}
	applyLocation(&outlet.Image, &outlet.MapURL, &outlet.Phone, &outlet.Hours, &outlet.IsActive, &req)

	if err := db.Save(&outlet).Error; err != nil {
		log.Error("Failed to update retail outlet", zap.Uint("outlet_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update retail outlet"})
	}

	audit.Record(db, &actor.AdminID, "RETAIL_OUTLET_UPDATED", map[string]interface{}{
		"id":   outlet.ID,
		"name": outlet.Name,
	})

	return c.JSON(http.StatusOK, outlet)
}

// DeleteRetailOutlet moves an outlet to the trash (super admin only)
func DeleteRetailOutlet(c echo.Context) error {
	return deleteByType(c, trash.TypeRetailOutlet, "Retail outlet")
}

// ListWarehouses returns active warehouses for the public site
func ListWarehouses(c echo.Context) error {
	log := logger.FromContext(c)

	var warehouses []model.Warehouse
	err := database.GetDB().
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").
		Find(&warehouses).Error
	if err != nil {
		log.Error("Failed to list warehouses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve warehouses"})
	}

	return c.JSON(http.StatusOK, warehouses)
}

// AdminListWarehouses returns all non-deleted warehouses
func AdminListWarehouses(c echo.Context) error {
	log := logger.FromContext(c)

	var warehouses []model.Warehouse
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&warehouses).Error
	if err != nil {
		log.Error("Failed to list warehouses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve warehouses"})
	}

	return c.JSON(http.StatusOK, warehouses)
}

// CreateWarehouse adds a new warehouse
func CreateWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	wh := model.Warehouse{
		Name:      *req.Name,
		IsActive:  true,
		CreatedBy: &actor.AdminID,
	}
	applyLocation(&wh.Image, &wh.MapURL, &wh.Phone, &wh.Hours, &wh.IsActive, &req)

	db := database.GetDB()
	if err := db.Create(&wh).Error; err != nil {
		log.Error("Failed to create warehouse", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create warehouse"})
	}

	audit.Record(db, &actor.AdminID, "WAREHOUSE_CREATED", map[string]interface{}{
		"id":   wh.ID,
		"name": wh.Name,
	})

	return c.JSON(http.StatusCreated, wh)
}

// UpdateWarehouse applies a partial update
func UpdateWarehouse(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var wh model.Warehouse
	if err := db.First(&wh, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Warehouse not found"})
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Name != nil {
		wh.Name = *req.Name
	}
	applyLocation(&wh.Image, &wh.MapURL, &wh.Phone, &wh.Hours, &wh.IsActive, &req)

	if err := db.Save(&wh).Error; err != nil {
		log.Error("Failed to update warehouse", zap.Uint("warehouse_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update warehouse"})
	}

	audit.Record(db, &actor.AdminID, "WAREHOUSE_UPDATED", map[string]interface{}{
		"id":   wh.ID,
		"name": wh.Name,
	})

	return c.JSON(http.StatusOK, wh)
}

// DeleteWarehouse moves a warehouse to the trash (super admin only)
func DeleteWarehouse(c echo.Context) error {
	return deleteByType(c, trash.TypeWarehouse, "Warehouse")
}

// applyLocation copies the optional location fields from the request
func applyLocation(image, mapURL, phone, hours *string, isActive *bool, req *LocationRequest) {
	if req.Image != nil {
		*image = *req.Image
	}
	if req.MapURL != nil {
		*mapURL = *req.MapURL
	}
	if req.Phone != nil {
		*phone = *req.Phone
	}
	if req.Hours != nil {
		*hours = *req.Hours
	}
	if req.IsActive != nil {
		*isActive = *req.IsActive
	}
}

// deleteByType routes a soft delete through the trash ledger and maps its errors
func deleteByType(c echo.Context, t trash.EntityType, label string) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	switch err := trash.SoftDelete(database.GetDB(), t, id, actor); err {
	case nil:
	case trash.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": label + " not found"})
	case trash.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Super admin access required"})
	default:
		log.Error("Failed to delete entity",
			zap.String("entity", string(t)),
			zap.Uint("id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete " + label})
	}

	prometheus.RecordSoftDelete(string(t))
	return c.JSON(http.StatusOK, echo.Map{"message": label + " deleted"})
}
