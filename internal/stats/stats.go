// Package stats computes dashboard figures with store-level count queries
// rather than fetching full tables into memory.
package stats

import (
	"monipack-backend/internal/model"

	"gorm.io/gorm"
)

// AdminStats summarizes the catalog content one admin manages
type AdminStats struct {
	TotalProducts     int64 `json:"totalProducts"`
	ActiveProducts    int64 `json:"activeProducts"`
	DisabledProducts  int64 `json:"disabledProducts"`
	DeletedProducts   int64 `json:"deletedProducts"`
	CategoriesManaged int64 `json:"categoriesManaged"`
	DeletedCategories int64 `json:"deletedCategories"`
}

// GlobalStats aggregates counts across every entity type
type GlobalStats struct {
	TotalProducts          int64 `json:"totalProducts"`
	ActiveProducts         int64 `json:"activeProducts"`
	DeletedProducts        int64 `json:"deletedProducts"`
	TotalCategories        int64 `json:"totalCategories"`
	ActiveCategories       int64 `json:"activeCategories"`
	DeletedCategories      int64 `json:"deletedCategories"`
	TotalBanners           int64 `json:"totalBanners"`
	DeletedBanners         int64 `json:"deletedBanners"`
	TotalRetailOutlets     int64 `json:"totalRetailOutlets"`
	DeletedRetailOutlets   int64 `json:"deletedRetailOutlets"`
	TotalWarehouses        int64 `json:"totalWarehouses"`
	DeletedWarehouses      int64 `json:"deletedWarehouses"`
	TotalContactMessages   int64 `json:"totalContactMessages"`
	DeletedContactMessages int64 `json:"deletedContactMessages"`
	TotalCareerPosts       int64 `json:"totalCareerPosts"`
	DeletedCareerPosts     int64 `json:"deletedCareerPosts"`
	TotalAdmins            int64 `json:"totalAdmins"`
}

func count(db *gorm.DB, mdl interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	err := db.Model(mdl).Where(query, args...).Count(&n).Error
	return n, err
}

// ForAdmin returns the per-admin dashboard figures scoped to created_by
func ForAdmin(db *gorm.DB, adminID string) (*AdminStats, error) {
	var (
		s   AdminStats
		err error
	)

	if s.TotalProducts, err = count(db, &model.Product{}, "created_by = ? AND is_deleted = ?", adminID, false); err != nil {
		return nil, err
	}
	if s.ActiveProducts, err = count(db, &model.Product{}, "created_by = ? AND is_deleted = ? AND is_active = ?", adminID, false, true); err != nil {
		return nil, err
	}
	if s.DisabledProducts, err = count(db, &model.Product{}, "created_by = ? AND is_deleted = ? AND is_active = ?", adminID, false, false); err != nil {
		return nil, err
	}
	if s.DeletedProducts, err = count(db, &model.Product{}, "created_by = ? AND is_deleted = ?", adminID, true); err != nil {
		return nil, err
	}
	if s.CategoriesManaged, err = count(db, &model.Category{}, "created_by = ? AND is_deleted = ?", adminID, false); err != nil {
		return nil, err
	}
	if s.DeletedCategories, err = count(db, &model.Category{}, "created_by = ? AND is_deleted = ?", adminID, true); err != nil {
		return nil, err
	}

	return &s, nil
}

// Global returns the deployment-wide aggregate used on the super admin dashboard
func Global(db *gorm.DB) (*GlobalStats, error) {
	var (
		s   GlobalStats
		err error
	)

	if s.TotalProducts, err = count(db, &model.Product{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.ActiveProducts, err = count(db, &model.Product{}, "is_deleted = ? AND is_active = ?", false, true); err != nil {
		return nil, err
	}
	if s.DeletedProducts, err = count(db, &model.Product{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalCategories, err = count(db, &model.Category{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.ActiveCategories, err = count(db, &model.Category{}, "is_deleted = ? AND is_active = ?", false, true); err != nil {
		return nil, err
	}
	if s.DeletedCategories, err = count(db, &model.Category{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalBanners, err = count(db, &model.Banner{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.DeletedBanners, err = count(db, &model.Banner{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalRetailOutlets, err = count(db, &model.RetailOutlet{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.DeletedRetailOutlets, err = count(db, &model.RetailOutlet{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalWarehouses, err = count(db, &model.Warehouse{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.DeletedWarehouses, err = count(db, &model.Warehouse{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalContactMessages, err = count(db, &model.ContactMessage{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.DeletedContactMessages, err = count(db, &model.ContactMessage{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}
	if s.TotalCareerPosts, err = count(db, &model.CareerPost{}, "is_deleted = ?", false); err != nil {
		return nil, err
	}
	if s.DeletedCareerPosts, err = count(db, &model.CareerPost{}, "is_deleted = ?", true); err != nil {
		return nil, err
	}

	var admins int64
	if err = db.Model(&model.Admin{}).Count(&admins).Error; err != nil {
		return nil, err
	}
	s.TotalAdmins = admins

	return &s, nil
}
