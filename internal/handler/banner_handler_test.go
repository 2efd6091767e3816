package handler

import (
	"net/http"
	"testing"

	"monipack-backend/internal/model"
)

// Content administration (banners, outlets, warehouses, careers) is reserved
// for super admins, including the back-office list views.
func TestAdminBannerListIsSuperAdminOnly(t *testing.T) {
	db := setupTest(t)
	ops := seedAdmin(t, db, "ops@monipack.com", "123456", model.RoleAdmin, true)
	root := seedAdmin(t, db, "root@monipack.com", "000000", model.RoleSuperAdmin, true)

	banner := model.Banner{Title: "Sale", Image: "sale.jpg", IsActive: true}
	if err := db.Create(&banner).Error; err != nil {
		t.Fatalf("seed banner: %v", err)
	}

	denied := invoke(t, AdminListBanners, superOnly, testRequest{
		method: http.MethodGet,
		target: "/api/admin/banners",
		cookie: loginCookie(t, db, ops),
	})
	if denied.Code != http.StatusForbidden {
		t.Fatalf("regular admin: status = %d, want 403", denied.Code)
	}

	allowed := invoke(t, AdminListBanners, superOnly, testRequest{
		method: http.MethodGet,
		target: "/api/admin/banners",
		cookie: loginCookie(t, db, root),
	})
	if allowed.Code != http.StatusOK {
		t.Fatalf("super admin: status = %d, body %s", allowed.Code, allowed.Body.String())
	}
	if n := len(decodeList(t, allowed)); n != 1 {
		t.Errorf("banner list = %d entries, want 1", n)
	}
}
