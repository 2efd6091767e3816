// Package trash implements reversible deletion for the catalog entities.
// Rows are flagged is_deleted with a timestamp instead of being removed,
// and a super admin can restore them from the aggregated trash view.
package trash

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/model"
	"monipack-backend/prometheus"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrForbidden   = errors.New("operation not permitted")
	ErrUnknownType = errors.New("unknown entity type")
)

// EntityType identifies one of the deletable entity families
type EntityType string

const (
	TypeProduct        EntityType = "product"
	TypeCategory       EntityType = "category"
	TypeBanner         EntityType = "banner"
	TypeRetailOutlet   EntityType = "retail-outlet"
	TypeWarehouse      EntityType = "warehouse"
	TypeContactMessage EntityType = "contact-message"
	TypeCareerPost     EntityType = "career-post"
)

type entityInfo struct {
	table string
	// column whose value names the row in audit entries
	label string
	// whether the table carries is_active / updated_at columns
	hasActive    bool
	hasUpdatedAt bool
	// products and categories may be deleted by their creator;
	// everything else is super-admin only
	ownerScoped bool
}

var registry = map[EntityType]entityInfo{
	TypeProduct:        {table: "products", label: "name", hasActive: true, hasUpdatedAt: true, ownerScoped: true},
	TypeCategory:       {table: "categories", label: "name", hasActive: true, hasUpdatedAt: true, ownerScoped: true},
	TypeBanner:         {table: "banners", label: "title", hasActive: true, hasUpdatedAt: true},
	TypeRetailOutlet:   {table: "retail_outlets", label: "name", hasActive: true, hasUpdatedAt: true},
	TypeWarehouse:      {table: "warehouses", label: "name", hasActive: true, hasUpdatedAt: true},
	TypeContactMessage: {table: "contact_messages", label: "subject"},
	TypeCareerPost:     {table: "career_posts", label: "title", hasActive: true, hasUpdatedAt: true},
}

// ParseType resolves a path segment like "retail-outlet" to an entity type
func ParseType(s string) (EntityType, error) {
	t := EntityType(s)
	if _, ok := registry[t]; !ok {
		return "", ErrUnknownType
	}
	return t, nil
}

// actionTag builds audit actions like PRODUCT_DELETED or RETAIL_OUTLET_RESTORED
func actionTag(t EntityType, verb string) string {
	entity := strings.ToUpper(strings.ReplaceAll(string(t), "-", "_"))
	return fmt.Sprintf("%s_%s", entity, verb)
}

type row struct {
	ID        uint
	IsDeleted bool
	CreatedBy *string
	Label     string
}

func lookup(db *gorm.DB, info entityInfo, id uint) (*row, error) {
	fields := fmt.Sprintf("id, is_deleted, %s AS label", info.label)
	if info.ownerScoped {
		fields += ", created_by"
	}

	var r row
	err := db.Table(info.table).Select(fields).Where("id = ?", id).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SoftDelete marks the entity as logically removed. Deleting an
// already-deleted row is a no-op. The flag update and the audit entry are
// written in a single transaction so a 2xx response implies both are durable.
func SoftDelete(db *gorm.DB, t EntityType, id uint, actor *model.Session) error {
	info, ok := registry[t]
	if !ok {
		return ErrUnknownType
	}

	r, err := lookup(db, info, id)
	if err != nil {
		return err
	}

	if info.ownerScoped {
		if !actor.IsSuperAdmin() && (r.CreatedBy == nil || *r.CreatedBy != actor.AdminID) {
			return ErrForbidden
		}
	} else if !actor.IsSuperAdmin() {
		return ErrForbidden
	}

	if r.IsDeleted {
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}
	if info.hasActive {
		// a deleted row is never simultaneously active
		updates["is_active"] = false
	}
	if info.hasUpdatedAt {
		updates["updated_at"] = now
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(info.table).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return audit.Append(tx, &actor.AdminID, actionTag(t, "DELETED"), map[string]interface{}{
			"entity": string(t),
			"id":     id,
			"name":   r.Label,
		})
	})
}

// Restore brings a soft-deleted entity back and reactivates it. Restore is
// trust-elevated: super admin only, regardless of who created the row.
func Restore(db *gorm.DB, t EntityType, id uint, actor *model.Session) error {
	info, ok := registry[t]
	if !ok {
		return ErrUnknownType
	}

	if !actor.IsSuperAdmin() {
		return ErrForbidden
	}

	r, err := lookup(db, info, id)
	if err != nil {
		return err
	}

	if !r.IsDeleted {
		return nil
	}

	updates := map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	}
	if info.hasActive {
		// restore always reactivates; there is no restore-but-keep-inactive path
		updates["is_active"] = true
	}
	if info.hasUpdatedAt {
		updates["updated_at"] = time.Now()
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(info.table).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return audit.Append(tx, &actor.AdminID, actionTag(t, "RESTORED"), map[string]interface{}{
			"entity": string(t),
			"id":     id,
			"name":   r.Label,
		})
	})
}

// DeletedItems is the aggregated trash view, one list per entity type,
// each ordered most-recently-deleted first
type DeletedItems struct {
	Products        []model.Product        `json:"products"`
	Categories      []model.Category       `json:"categories"`
	Banners         []model.Banner         `json:"banners"`
	RetailOutlets   []model.RetailOutlet   `json:"retailOutlets"`
	Warehouses      []model.Warehouse      `json:"warehouses"`
	ContactMessages []model.ContactMessage `json:"contactMessages"`
	CareerPosts     []model.CareerPost     `json:"careerPosts"`
}

// ListDeleted runs seven independent queries; there are no cross-entity
// cascades, so a deleted category leaves its products in place.
func ListDeleted(db *gorm.DB) (*DeletedItems, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	items := DeletedItems{
		Products:        []model.Product{},
		Categories:      []model.Category{},
		Banners:         []model.Banner{},
		RetailOutlets:   []model.RetailOutlet{},
		Warehouses:      []model.Warehouse{},
		ContactMessages: []model.ContactMessage{},
		CareerPosts:     []model.CareerPost{},
	}

	deleted := func(dest interface{}) error {
		return db.Where("is_deleted = ?", true).Order("deleted_at DESC").Find(dest).Error
	}

	if err := deleted(&items.Products); err != nil {
		return nil, err
	}
	if err := deleted(&items.Categories); err != nil {
		return nil, err
	}
	if err := deleted(&items.Banners); err != nil {
		return nil, err
	}
	if err := deleted(&items.RetailOutlets); err != nil {
		return nil, err
	}
	if err := deleted(&items.Warehouses); err != nil {
		return nil, err
	}
	if err := deleted(&items.ContactMessages); err != nil {
		return nil, err
	}
	if err := deleted(&items.CareerPosts); err != nil {
		return nil, err
	}

	return &items, nil
}
