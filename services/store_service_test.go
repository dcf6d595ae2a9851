package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"github.com/storefront-api/testutil"
	"github.com/storefront-api/utils"
)

func TestStoreOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewStoreService(f.db)

	store, err := svc.CreateStore(ctx, actorOf(f.owner), dto.CreateStoreRequest{Name: "Corner Shop", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.OwnerID != f.owner.ID || store.Owner.Email != f.owner.Email {
		t.Fatalf("owner not bound to caller: %+v", store)
	}

	if _, err := svc.UpdateStore(ctx, actorOf(f.stranger), store.ID, dto.UpdateStoreRequest{Name: utils.Ptr("Mine")}); !isKind(err, ErrForbidden) {
		t.Fatalf("stranger update: want ErrForbidden, got %v", err)
	}
	if err := svc.DeleteStore(ctx, actorOf(f.stranger), store.ID); !isKind(err, ErrForbidden) {
		t.Fatalf("stranger delete: want ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateStore(ctx, actorOf(f.owner), store.ID, dto.UpdateStoreRequest{Name: utils.Ptr("Corner Shop 2")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Corner Shop 2" || updated.Address != "1 Main St" {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	updated, err = svc.UpdateStore(ctx, actorOf(f.admin), store.ID, dto.UpdateStoreRequest{Contact: utils.Ptr("555")})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Contact != "555" || updated.Name != "Corner Shop 2" || updated.OwnerID != f.owner.ID {
		t.Fatalf("unexpected admin update result: %+v", updated)
	}

	if _, err := svc.UpdateStore(ctx, actorOf(f.owner), store.ID, dto.UpdateStoreRequest{Name: utils.Ptr("  ")}); !isKind(err, ErrValidation) {
		t.Fatalf("blank name: want ErrValidation, got %v", err)
	}

	if err := svc.DeleteStore(ctx, actorOf(f.admin), store.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.GetStore(ctx, store.ID); !isKind(err, ErrNotFound) {
		t.Fatalf("deleted store: want ErrNotFound, got %v", err)
	}
	if err := svc.DeleteStore(ctx, actorOf(f.admin), store.ID); !isKind(err, ErrNotFound) {
		t.Fatalf("delete missing: want ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateStore(ctx, actorOf(f.admin), store.ID, dto.UpdateStoreRequest{}); !isKind(err, ErrNotFound) {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}
}

func TestListMyStoresIsScoped(t *testing.T) {
	f := newFixture(t)
	svc := NewStoreService(f.db)

	for _, name := range []string{"A", "B"} {
		if _, err := svc.CreateStore(ctx, actorOf(f.owner), dto.CreateStoreRequest{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if _, err := svc.CreateStore(ctx, actorOf(f.stranger), dto.CreateStoreRequest{Name: "C"}); err != nil {
		t.Fatalf("create C: %v", err)
	}

	mine, err := svc.ListMyStores(ctx, actorOf(f.owner))
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("owner has %d stores, want 2", len(mine))
	}
	for _, s := range mine {
		if s.OwnerID != f.owner.ID {
			t.Fatalf("foreign store in list-mine: %+v", s)
		}
	}

	all, err := svc.ListStores(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all = %d, %v", len(all), err)
	}
}

func TestPublicStoreOmitsOwnerEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewStoreService(f.db)

	store, err := svc.CreateStore(ctx, actorOf(f.owner), dto.CreateStoreRequest{Name: "Corner Shop"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	private, _ := json.Marshal(dto.NewStoreResponse(store))
	public, _ := json.Marshal(dto.NewPublicStoreResponse(store))
	if !strings.Contains(string(private), f.owner.Email) {
		t.Fatalf("authenticated projection should carry owner email: %s", private)
	}
	if strings.Contains(string(public), "ownerEmail") || strings.Contains(string(public), f.owner.Email) {
		t.Fatalf("public projection leaks owner email: %s", public)
	}
}

func TestDeleteStoreCascades(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	product := testutil.CreateProduct(t, f.db, store.ID, "Lamp", 10)

	if _, err := NewTagService(f.db).CreateTag(ctx, product.ID, "home"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if _, err := NewRatingService(f.db).Rate(ctx, actorOf(f.stranger), product.ID, 5); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if _, err := NewCommentService(f.db).CreateComment(ctx, actorOf(f.stranger), product.ID, "nice"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := NewStoreService(f.db).DeleteStore(ctx, actorOf(f.owner), store.ID); err != nil {
		t.Fatalf("delete store: %v", err)
	}

	for _, model := range []any{&models.Product{}, &models.ProductTag{}, &models.ProductRating{}, &models.ProductComment{}} {
		var count int64
		if err := f.db.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if count != 0 {
			t.Fatalf("%T rows left after store delete: %d", model, count)
		}
	}
}
