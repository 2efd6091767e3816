package trash

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"monipack-backend/internal/model"
	"monipack-backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func adminSession(id string) *model.Session {
	return &model.Session{AdminID: id, Email: id + "@monipack.com", Role: model.RoleAdmin}
}

func superSession(id string) *model.Session {
	return &model.Session{AdminID: id, Email: id + "@monipack.com", Role: model.RoleSuperAdmin}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, createdBy string) *model.Product {
	t.Helper()
	p := model.Product{
		Name:        name,
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		PartNumber:  "PN-" + name,
		Description: "test product",
		Images:      []string{"a.jpg", "b.jpg", "c.jpg"},
		IsActive:    true,
		CreatedBy:   &createdBy,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func auditCount(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	db.Model(&model.AuditLog{}).Where("action = ?", action).Count(&n)
	return n
}

func TestParseType(t *testing.T) {
	known := []string{
		"product", "category", "banner", "retail-outlet",
		"warehouse", "contact-message", "career-post",
	}
	for _, s := range known {
		if _, err := ParseType(s); err != nil {
			t.Errorf("ParseType(%q): %v", s, err)
		}
	}
	if _, err := ParseType("admin"); err != ErrUnknownType {
		t.Errorf("ParseType(\"admin\") = %v, want ErrUnknownType", err)
	}
}

func TestSoftDeleteByOwner(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")

	if err := SoftDelete(db, TypeProduct, p.ID, adminSession("owner-1")); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	var got model.Product
	db.First(&got, p.ID)
	if !got.IsDeleted {
		t.Error("product not flagged deleted")
	}
	if got.DeletedAt == nil {
		t.Error("deleted_at not set")
	}
	if got.IsActive {
		t.Error("deleted product must be forced inactive")
	}
	if n := auditCount(t, db, "PRODUCT_DELETED"); n != 1 {
		t.Errorf("PRODUCT_DELETED audit entries = %d, want 1", n)
	}
}

func TestSoftDeleteForbiddenForNonOwner(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")

	if err := SoftDelete(db, TypeProduct, p.ID, adminSession("intruder")); err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	var got model.Product
	db.First(&got, p.ID)
	if got.IsDeleted {
		t.Error("product was deleted despite forbidden actor")
	}
	if n := auditCount(t, db, "PRODUCT_DELETED"); n != 0 {
		t.Errorf("audit entries written for a refused delete: %d", n)
	}
}

func TestSoftDeleteSuperOverridesOwnership(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")

	if err := SoftDelete(db, TypeProduct, p.ID, superSession("root")); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	var got model.Product
	db.First(&got, p.ID)
	if !got.IsDeleted {
		t.Error("super admin delete did not apply")
	}
}

func TestSoftDeleteNonOwnerScopedEntityRequiresSuper(t *testing.T) {
	db := newTestDB(t)

	creator := "creator-1"
	b := model.Banner{Title: "Hero", Image: "hero.jpg", IsActive: true, CreatedBy: &creator}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed banner: %v", err)
	}

	// even the creating admin cannot delete a banner
	if err := SoftDelete(db, TypeBanner, b.ID, adminSession(creator)); err != ErrForbidden {
		t.Fatalf("creator delete: err = %v, want ErrForbidden", err)
	}
	if err := SoftDelete(db, TypeBanner, b.ID, superSession("root")); err != nil {
		t.Fatalf("super delete: %v", err)
	}

	var got model.Banner
	db.First(&got, b.ID)
	if !got.IsDeleted || got.IsActive {
		t.Error("banner not deleted and deactivated")
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")
	actor := adminSession("owner-1")

	if err := SoftDelete(db, TypeProduct, p.ID, actor); err != nil {
		t.Fatalf("first delete: %v", err)
	}

	var first model.Product
	db.First(&first, p.ID)

	if err := SoftDelete(db, TypeProduct, p.ID, actor); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	var second model.Product
	db.First(&second, p.ID)
	if !second.DeletedAt.Equal(*first.DeletedAt) {
		t.Error("repeat delete moved deleted_at")
	}
	if n := auditCount(t, db, "PRODUCT_DELETED"); n != 1 {
		t.Errorf("audit entries = %d, want 1 (no entry for the no-op)", n)
	}
}

func TestSoftDeleteNotFound(t *testing.T) {
	db := newTestDB(t)

	if err := SoftDelete(db, TypeProduct, 9999, superSession("root")); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSoftDeleteContactMessage(t *testing.T) {
	db := newTestDB(t)

	m := model.ContactMessage{Name: "A", Email: "a@b.com", Subject: "Quote", Message: "hi"}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	if err := SoftDelete(db, TypeContactMessage, m.ID, superSession("root")); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	var got model.ContactMessage
	db.First(&got, m.ID)
	if !got.IsDeleted || got.DeletedAt == nil {
		t.Error("contact message not soft-deleted")
	}
	if n := auditCount(t, db, "CONTACT_MESSAGE_DELETED"); n != 1 {
		t.Errorf("CONTACT_MESSAGE_DELETED audit entries = %d, want 1", n)
	}
}

func TestRestoreRequiresSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")
	owner := adminSession("owner-1")

	if err := SoftDelete(db, TypeProduct, p.ID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// the owner deleted it, but only a super admin may bring it back
	if err := Restore(db, TypeProduct, p.ID, owner); err != ErrForbidden {
		t.Fatalf("owner restore: err = %v, want ErrForbidden", err)
	}
}

func TestRestoreReactivates(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")
	root := superSession("root")

	if err := SoftDelete(db, TypeProduct, p.ID, root); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := Restore(db, TypeProduct, p.ID, root); err != nil {
		t.Fatalf("restore: %v", err)
	}

	var got model.Product
	db.First(&got, p.ID)
	if got.IsDeleted {
		t.Error("product still flagged deleted")
	}
	if got.DeletedAt != nil {
		t.Error("deleted_at not cleared")
	}
	if !got.IsActive {
		t.Error("restore must reactivate the row")
	}
	if n := auditCount(t, db, "PRODUCT_RESTORED"); n != 1 {
		t.Errorf("PRODUCT_RESTORED audit entries = %d, want 1", n)
	}
}

func TestRestoreNotDeletedIsNoOp(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Sack A", "owner-1")

	if err := Restore(db, TypeProduct, p.ID, superSession("root")); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if n := auditCount(t, db, "PRODUCT_RESTORED"); n != 0 {
		t.Errorf("audit entries for a no-op restore: %d", n)
	}
}

func TestListDeletedOrderingAndIsolation(t *testing.T) {
	db := newTestDB(t)
	root := superSession("root")

	cat := model.Category{Name: "Woven Sacks", Slug: "woven-sacks", IsActive: true}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	inCat := seedProduct(t, db, "Sack A", "root")
	inCat.CategoryID = cat.ID
	db.Save(inCat)

	older := seedProduct(t, db, "Sack B", "root")
	newer := seedProduct(t, db, "Sack C", "root")

	if err := SoftDelete(db, TypeCategory, cat.ID, root); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if err := SoftDelete(db, TypeProduct, older.ID, root); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := SoftDelete(db, TypeProduct, newer.ID, root); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	// force distinct timestamps so the ordering assertion is deterministic
	db.Model(&model.Product{}).Where("id = ?", older.ID).
		Update("deleted_at", time.Now().Add(-time.Hour))

	items, err := ListDeleted(db)
	if err != nil {
		t.Fatalf("ListDeleted: %v", err)
	}

	if len(items.Categories) != 1 {
		t.Fatalf("deleted categories = %d, want 1", len(items.Categories))
	}
	if len(items.Products) != 2 {
		t.Fatalf("deleted products = %d, want 2", len(items.Products))
	}
	if items.Products[0].ID != newer.ID {
		t.Error("deleted products not ordered most-recent-first")
	}

	// deleting a category never cascades to its products
	var survivor model.Product
	db.First(&survivor, inCat.ID)
	if survivor.IsDeleted {
		t.Error("product was cascaded by its category's deletion")
	}

	// empty families come back as empty lists, not nulls
	if items.Warehouses == nil || items.CareerPosts == nil {
		t.Error("empty entity lists must be non-nil")
	}
}
