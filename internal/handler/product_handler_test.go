package handler

import (
	"net/http"
	"testing"

	"monipack-backend/internal/model"
)

func TestCreateProductRequiresThreeImages(t *testing.T) {
	db := setupTest(t)
	root := seedAdmin(t, db, "root@monipack.com", "000000", model.RoleSuperAdmin, true)

	cat := model.Category{Name: "Sacks", Slug: "sacks", IsActive: true}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	rec := invoke(t, CreateProduct, authOnly, testRequest{
		method: http.MethodPost,
		target: "/api/admin/products",
		body:   `{"name":"Sack A","part_number":"PN-1","description":"d","category_id":1,"images":["a.jpg","b.jpg"]}`,
		cookie: loginCookie(t, db, root),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Minimum 3 images required" {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}
}

func TestCreateProductConflicts(t *testing.T) {
	db := setupTest(t)
	root := seedAdmin(t, db, "root@monipack.com", "000000", model.RoleSuperAdmin, true)
	cookie := loginCookie(t, db, root)

	cat := model.Category{Name: "Sacks", Slug: "sacks", IsActive: true}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	first := invoke(t, CreateProduct, authOnly, testRequest{
		method: http.MethodPost,
		target: "/api/admin/products",
		body:   `{"name":"Sack A","part_number":"PN-1","description":"d","category_id":1,"images":["a.jpg","b.jpg","c.jpg"]}`,
		cookie: cookie,
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, body %s", first.Code, first.Body.String())
	}

	sameSlug := invoke(t, CreateProduct, authOnly, testRequest{
		method: http.MethodPost,
		target: "/api/admin/products",
		body:   `{"name":"Sack A","part_number":"PN-2","description":"d","category_id":1,"images":["a.jpg","b.jpg","c.jpg"]}`,
		cookie: cookie,
	})
	if sameSlug.Code != http.StatusConflict {
		t.Errorf("duplicate slug: status = %d, want 409", sameSlug.Code)
	}

	samePart := invoke(t, CreateProduct, authOnly, testRequest{
		method: http.MethodPost,
		target: "/api/admin/products",
		body:   `{"name":"Sack B","part_number":"PN-1","description":"d","category_id":1,"images":["a.jpg","b.jpg","c.jpg"]}`,
		cookie: cookie,
	})
	if samePart.Code != http.StatusConflict {
		t.Errorf("duplicate part number: status = %d, want 409", samePart.Code)
	}
}

func TestCreateProductInactiveStaysInactive(t *testing.T) {
	db := setupTest(t)
	root := seedAdmin(t, db, "root@monipack.com", "000000", model.RoleSuperAdmin, true)

	cat := model.Category{Name: "Sacks", Slug: "sacks", IsActive: true}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	rec := invoke(t, CreateProduct, authOnly, testRequest{
		method: http.MethodPost,
		target: "/api/admin/products",
		body:   `{"name":"Sack A","part_number":"PN-1","description":"d","category_id":1,"images":["a.jpg","b.jpg","c.jpg"],"is_active":false}`,
		cookie: loginCookie(t, db, root),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// the explicit false must survive the insert rather than being replaced
	// by a column default
	var stored model.Product
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.IsActive {
		t.Fatal("product created with is_active=false was stored active")
	}

	public := invoke(t, ListProducts, nil, testRequest{
		method: http.MethodGet,
		target: "/api/products",
	})
	if n := len(decodeList(t, public)); n != 0 {
		t.Errorf("public products = %d, want 0", n)
	}
}

func TestPublicListHidesInactiveAndDeleted(t *testing.T) {
	db := setupTest(t)

	visible := model.Product{Name: "A", Slug: "a", PartNumber: "PN-A", Description: "d", Images: []string{"1", "2", "3"}, IsActive: true}
	inactive := model.Product{Name: "B", Slug: "b", PartNumber: "PN-B", Description: "d", Images: []string{"1", "2", "3"}, IsActive: false}
	deleted := model.Product{Name: "C", Slug: "c", PartNumber: "PN-C", Description: "d", Images: []string{"1", "2", "3"}, IsActive: true, IsDeleted: true}
	for _, p := range []*model.Product{&visible, &inactive, &deleted} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	rec := invoke(t, ListProducts, nil, testRequest{
		method: http.MethodGet,
		target: "/api/products",
	})
	list := decodeList(t, rec)
	if len(list) != 1 {
		t.Fatalf("public products = %d, want 1", len(list))
	}
	if list[0]["slug"] != "a" {
		t.Errorf("wrong product listed: %v", list[0]["slug"])
	}

	bySlug := invoke(t, GetProductBySlug, nil, testRequest{
		method: http.MethodGet,
		target: "/api/products/b",
		params: []string{"slug", "b"},
	})
	if bySlug.Code != http.StatusNotFound {
		t.Errorf("inactive product by slug: status = %d, want 404", bySlug.Code)
	}
}

func TestSearchMatchesCategoryName(t *testing.T) {
	db := setupTest(t)

	cat := model.Category{Name: "Woven Sacks", Slug: "woven-sacks", IsActive: true}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := model.Product{Name: "Heavy Duty Bag", Slug: "heavy-duty-bag", PartNumber: "PN-9",
		Description: "strong", CategoryID: cat.ID, Images: []string{"1", "2", "3"}, IsActive: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// the product's own fields never mention "woven"; the match comes
	// through its category's name
	rec := invoke(t, ListProducts, nil, testRequest{
		method: http.MethodGet,
		target: "/api/products?search=WOVEN",
	})
	list := decodeList(t, rec)
	if len(list) != 1 {
		t.Fatalf("search results = %d, want 1", len(list))
	}

	miss := invoke(t, ListProducts, nil, testRequest{
		method: http.MethodGet,
		target: "/api/products?search=nomatch",
	})
	if n := len(decodeList(t, miss)); n != 0 {
		t.Errorf("search miss returned %d products", n)
	}
}

func TestAdminListScopedByRole(t *testing.T) {
	db := setupTest(t)
	root := seedAdmin(t, db, "root@monipack.com", "000000", model.RoleSuperAdmin, true)
	ops := seedAdmin(t, db, "ops@monipack.com", "123456", model.RoleAdmin, true)

	mine := model.Product{Name: "A", Slug: "a", PartNumber: "PN-A", Description: "d", Images: []string{"1", "2", "3"}, IsActive: true, CreatedBy: &ops.ID}
	theirs := model.Product{Name: "B", Slug: "b", PartNumber: "PN-B", Description: "d", Images: []string{"1", "2", "3"}, IsActive: true, CreatedBy: &root.ID}
	for _, p := range []*model.Product{&mine, &theirs} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	asOps := invoke(t, AdminListProducts, authOnly, testRequest{
		method: http.MethodGet,
		target: "/api/admin/products",
		cookie: loginCookie(t, db, ops),
	})
	if n := len(decodeList(t, asOps)); n != 1 {
		t.Errorf("regular admin sees %d products, want 1 (own only)", n)
	}

	asRoot := invoke(t, AdminListProducts, authOnly, testRequest{
		method: http.MethodGet,
		target: "/api/admin/products",
		cookie: loginCookie(t, db, root),
	})
	if n := len(decodeList(t, asRoot)); n != 2 {
		t.Errorf("super admin sees %d products, want 2", n)
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	db := setupTest(t)
	owner := seedAdmin(t, db, "owner@monipack.com", "123456", model.RoleAdmin, true)
	other := seedAdmin(t, db, "other@monipack.com", "123456", model.RoleAdmin, true)

	p := model.Product{Name: "A", Slug: "a", PartNumber: "PN-A", Description: "d", Images: []string{"1", "2", "3"}, IsActive: true, CreatedBy: &owner.ID}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	denied := invoke(t, UpdateProduct, authOnly, testRequest{
		method: http.MethodPut,
		target: "/api/admin/products/1",
		body:   `{"name":"Hijacked"}`,
		cookie: loginCookie(t, db, other),
		params: []string{"id", "1"},
	})
	if denied.Code != http.StatusForbidden {
		t.Fatalf("non-owner update: status = %d, want 403", denied.Code)
	}

	allowed := invoke(t, UpdateProduct, authOnly, testRequest{
		method: http.MethodPut,
		target: "/api/admin/products/1",
		body:   `{"name":"Renamed"}`,
		cookie: loginCookie(t, db, owner),
		params: []string{"id", "1"},
	})
	if allowed.Code != http.StatusOK {
		t.Fatalf("owner update: status = %d, body %s", allowed.Code, allowed.Body.String())
	}

	var reloaded model.Product
	db.First(&reloaded, 1)
	if reloaded.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", reloaded.Name)
	}
}
