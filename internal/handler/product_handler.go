package handler

import (
	"net/http"
	"strings"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	PartNumber  *string  `json:"part_number"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
}

// publicProducts is the base predicate for every public product read
func publicProducts(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ? AND is_deleted = ?", true, false)
}

// ListProducts serves the public product list with optional search and
// category filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	if search := c.QueryParam("search"); search != "" {
		return searchProducts(c, search)
	}

	if catSlug := c.QueryParam("category"); catSlug != "" {
		var cat model.Category
		if err := db.Where("slug = ?", catSlug).First(&cat).Error; err != nil {
			return c.JSON(http.StatusOK, []model.Product{})
		}

		var prods []model.Product
		err := publicProducts(db).
			Where("category_id = ?", cat.ID).
			Order("created_at DESC").
			Find(&prods).Error
		if err != nil {
			log.Error("Failed to list products by category", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
		}
		return c.JSON(http.StatusOK, prods)
	}

	var prods []model.Product
	if err := publicProducts(db).Order("created_at DESC").Find(&prods).Error; err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, prods)
}

// searchProducts matches name, part number, description and category names
func searchProducts(c echo.Context, query string) error {
	log := logger.FromContext(c)
	db := database.GetDB()
	term := "%" + strings.ToLower(query) + "%"

	var catIDs []uint
	db.Model(&model.Category{}).Where("LOWER(name) LIKE ?", term).Pluck("id", &catIDs)

	q := publicProducts(db)
	if len(catIDs) > 0 {
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(part_number) LIKE ? OR LOWER(description) LIKE ? OR category_id IN ?",
			term, term, term, catIDs,
		)
	} else {
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(part_number) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}

	var prods []model.Product
	if err := q.Order("created_at DESC").Find(&prods).Error; err != nil {
		log.Error("Product search failed", zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, prods)
}

// GetProductBySlug returns one public product
func GetProductBySlug(c echo.Context) error {
	slug := c.Param("slug")

	var product model.Product
	err := database.GetDB().Where("slug = ?", slug).First(&product).Error
	if err != nil || !product.IsActive || product.IsDeleted {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// AdminListProducts returns non-deleted products; super admins see all,
// regular admins only what they created
func AdminListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)
	db := database.GetDB()

	query := db.Where("is_deleted = ?", false)
	if !actor.IsSuperAdmin() {
		query = query.Where("created_by = ?", actor.AdminID)
	}

	var prods []model.Product
	if err := query.Order("created_at DESC").Find(&prods).Error; err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, prods)
}

// CreateProduct adds a new product. At least three images are required.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}
	if req.PartNumber == nil || *req.PartNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Part number is required"})
	}
	if req.Description == nil || *req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Description is required"})
	}
	if req.CategoryID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category is required"})
	}
	if len(req.Images) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Minimum 3 images required"})
	}

	slug := ""
	if req.Slug != nil {
		slug = *req.Slug
	}
	if slug == "" {
		slug = slugify(*req.Name)
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Product{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Product with this slug already exists"})
	}
	db.Model(&model.Product{}).Where("part_number = ?", *req.PartNumber).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Product with this part number already exists"})
	}

	product := model.Product{
		Name:        *req.Name,
		Slug:        slug,
		PartNumber:  *req.PartNumber,
		Description: *req.Description,
		Price:       req.Price,
		CategoryID:  *req.CategoryID,
		Images:      req.Images,
		IsActive:    true,
		CreatedBy:   &actor.AdminID,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := db.Create(&product).Error; err != nil {
		log.Error("Failed to create product", zap.String("name", product.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create product"})
	}

	audit.Record(db, &actor.AdminID, "PRODUCT_CREATED", map[string]interface{}{
		"id":          product.ID,
		"name":        product.Name,
		"part_number": product.PartNumber,
	})

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("part_number", product.PartNumber))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update. Regular admins may only edit
// products they created.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var product model.Product
	if err := db.First(&product, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	if !actor.IsSuperAdmin() && (product.CreatedBy == nil || *product.CreatedBy != actor.AdminID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You can only edit products you created"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Images != nil && len(req.Images) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Minimum 3 images required"})
	}

	if req.Slug != nil && *req.Slug != product.Slug {
		var count int64
		db.Model(&model.Product{}).Where("slug = ? AND id != ?", *req.Slug, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Product with this slug already exists"})
		}
		product.Slug = *req.Slug
	}
	if req.PartNumber != nil && *req.PartNumber != product.PartNumber {
		var count int64
		db.Model(&model.Product{}).Where("part_number = ? AND id != ?", *req.PartNumber, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Product with this part number already exists"})
		}
		product.PartNumber = *req.PartNumber
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := db.Save(&product).Error; err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update product"})
	}

	audit.Record(db, &actor.AdminID, "PRODUCT_UPDATED", map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
	})

	log.Info("Product updated", zap.Uint("product_id", product.ID), zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct moves a product to the trash. Regular admins may only
// delete products they created.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	switch err := trash.SoftDelete(database.GetDB(), trash.TypeProduct, id, actor); err {
	case nil:
	case trash.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	case trash.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You can only delete products you created"})
	default:
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete product"})
	}

	prometheus.RecordSoftDelete(string(trash.TypeProduct))
	log.Info("Product moved to trash", zap.Uint("product_id", id), zap.String("by", actor.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
}
