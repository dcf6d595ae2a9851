package services

import (
	"testing"
	"time"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"github.com/storefront-api/testutil"
	"github.com/storefront-api/utils"
)

func TestProductOwnershipFollowsStore(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.db)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	req := dto.CreateProductRequest{Name: "Lamp", Price: 20, Quantity: 3}

	if _, err := svc.CreateProduct(ctx, actorOf(f.stranger), store.ID, req); !isKind(err, ErrForbidden) {
		t.Fatalf("stranger create: want ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, actorOf(f.owner), 9999, req); !isKind(err, ErrNotFound) {
		t.Fatalf("missing store: want ErrNotFound, got %v", err)
	}

	product, err := svc.CreateProduct(ctx, actorOf(f.owner), store.ID, req)
	if err != nil {
		t.Fatalf("owner create: %v", err)
	}
	if product.StoreID != store.ID || product.Store.Name != "Shop" || product.AverageRating != 0 {
		t.Fatalf("unexpected product %+v", product)
	}
	if product.CreatedAt.IsZero() {
		t.Fatalf("created-at not stamped")
	}
	if _, err := svc.CreateProduct(ctx, actorOf(f.admin), store.ID, dto.CreateProductRequest{Name: "Desk"}); err != nil {
		t.Fatalf("admin create: %v", err)
	}

	if _, err := svc.UpdateProduct(ctx, actorOf(f.stranger), product.ID, dto.UpdateProductRequest{Price: utils.Ptr(1.0)}); !isKind(err, ErrForbidden) {
		t.Fatalf("stranger update: want ErrForbidden, got %v", err)
	}
	updated, err := svc.UpdateProduct(ctx, actorOf(f.admin), product.ID, dto.UpdateProductRequest{Price: utils.Ptr(25.5)})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Price != 25.5 || updated.Name != "Lamp" || updated.Quantity != 3 {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
	if _, err := svc.UpdateProduct(ctx, actorOf(f.owner), 9999, dto.UpdateProductRequest{}); !isKind(err, ErrNotFound) {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, actorOf(f.stranger), product.ID); !isKind(err, ErrForbidden) {
		t.Fatalf("stranger delete: want ErrForbidden, got %v", err)
	}
	if err := svc.DeleteProduct(ctx, actorOf(f.owner), product.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteProduct(ctx, actorOf(f.owner), product.ID); !isKind(err, ErrNotFound) {
		t.Fatalf("delete missing: want ErrNotFound, got %v", err)
	}
}

func TestUpdateProductKeepsAverageRating(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	product := testutil.CreateProduct(t, f.db, store.ID, "Lamp", 10)

	if _, err := NewRatingService(f.db).Rate(ctx, actorOf(f.stranger), product.ID, 4); err != nil {
		t.Fatalf("rate: %v", err)
	}

	updated, err := NewProductService(f.db).UpdateProduct(ctx, actorOf(f.owner), product.ID, dto.UpdateProductRequest{Name: utils.Ptr("Lamp XL")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AverageRating != 4 {
		t.Fatalf("average rating = %v after product update, want 4", updated.AverageRating)
	}
}

func seedCatalog(t *testing.T, f fixture) (models.Store, []models.Product) {
	t.Helper()
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	seed := []struct {
		name, desc string
		price      float64
		age        time.Duration
		tags       []string
	}{
		{"Red Shoes", "leather", 80, 3 * time.Hour, []string{"shoes", "red"}},
		{"Blue Hat", "Matches your SHOES", 15, 1 * time.Hour, []string{"hats"}},
		{"Green Scarf", "wool", 15, 2 * time.Hour, []string{"red"}},
		{"Socks", "cotton", 5, 0, nil},
	}

	var products []models.Product
	for _, s := range seed {
		p := models.Product{Name: s.name, Description: s.desc, Price: s.price, StoreID: store.ID, CreatedAt: base.Add(-s.age)}
		if err := f.db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", s.name, err)
		}
		for _, tag := range s.tags {
			if err := f.db.Create(&models.ProductTag{ProductID: p.ID, TagName: tag}).Error; err != nil {
				t.Fatalf("seed tag: %v", err)
			}
		}
		products = append(products, p)
	}
	return store, products
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func equalNames(got []models.Product, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	svc := NewProductService(f.db)

	tests := []struct {
		name   string
		filter dto.ProductFilter
		want   []string
	}{
		{"no filter keeps insertion order", dto.ProductFilter{}, []string{"Red Shoes", "Blue Hat", "Green Scarf", "Socks"}},
		{"search matches name or description case-insensitively", dto.ProductFilter{Search: "sHoEs"}, []string{"Red Shoes", "Blue Hat"}},
		{"blank search is no filter", dto.ProductFilter{Search: "   "}, []string{"Red Shoes", "Blue Hat", "Green Scarf", "Socks"}},
		{"any matching tag", dto.ProductFilter{Tags: []string{"red", "hats"}}, []string{"Red Shoes", "Blue Hat", "Green Scarf"}},
		{"comma separated tags", dto.ProductFilter{Tags: []string{"hats, shoes"}}, []string{"Red Shoes", "Blue Hat"}},
		{"tags and search combine with AND", dto.ProductFilter{Search: "scarf", Tags: []string{"red"}}, []string{"Green Scarf"}},
		{"no match", dto.ProductFilter{Search: "piano"}, []string{}},
		{"price asc with id tiebreak", dto.ProductFilter{SortBy: dto.SortPriceAsc}, []string{"Socks", "Blue Hat", "Green Scarf", "Red Shoes"}},
		{"price desc with id tiebreak", dto.ProductFilter{SortBy: dto.SortPriceDesc}, []string{"Red Shoes", "Blue Hat", "Green Scarf", "Socks"}},
		{"newest", dto.ProductFilter{SortBy: dto.SortNewest}, []string{"Socks", "Blue Hat", "Green Scarf", "Red Shoes"}},
		{"oldest", dto.ProductFilter{SortBy: dto.SortOldest}, []string{"Red Shoes", "Green Scarf", "Blue Hat", "Socks"}},
		{"unknown sort keeps insertion order", dto.ProductFilter{SortBy: "popularity"}, []string{"Red Shoes", "Blue Hat", "Green Scarf", "Socks"}},
		{"search then sort", dto.ProductFilter{Search: "shoes", SortBy: dto.SortPriceAsc}, []string{"Blue Hat", "Red Shoes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListProducts(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !equalNames(got, tt.want...) {
				t.Fatalf("got %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestListProductsSortInvariants(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	svc := NewProductService(f.db)

	asc, err := svc.ListProducts(ctx, dto.ProductFilter{SortBy: dto.SortPriceAsc})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(asc); i++ {
		if asc[i].Price < asc[i-1].Price {
			t.Fatalf("price_asc not non-decreasing at %d: %v", i, names(asc))
		}
	}

	newest, err := svc.ListProducts(ctx, dto.ProductFilter{SortBy: dto.SortNewest})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(newest); i++ {
		if newest[i].CreatedAt.After(newest[i-1].CreatedAt) {
			t.Fatalf("newest not non-increasing at %d: %v", i, names(newest))
		}
	}
}

func TestListStoreProducts(t *testing.T) {
	f := newFixture(t)
	store, _ := seedCatalog(t, f)
	other := testutil.CreateStore(t, f.db, f.stranger.ID, "Other")
	testutil.CreateProduct(t, f.db, other.ID, "Elsewhere", 1)
	svc := NewProductService(f.db)

	got, err := svc.ListStoreProducts(ctx, store.ID)
	if err != nil {
		t.Fatalf("list store: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("store has %d products, want 4", len(got))
	}
	if len(got[0].Tags) != 2 || got[0].Store.Name != "Shop" {
		t.Fatalf("relations not loaded: %+v", got[0])
	}

	if _, err := svc.ListStoreProducts(ctx, 9999); !isKind(err, ErrNotFound) {
		t.Fatalf("missing store: want ErrNotFound, got %v", err)
	}
}

func TestListProductsTiesKeepInsertionOrder(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, name := range []string{"a", "b", "c"} {
		p := models.Product{Name: name, Price: 10, StoreID: store.ID, CreatedAt: at}
		if err := f.db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	svc := NewProductService(f.db)

	for _, sortBy := range []string{dto.SortNewest, dto.SortOldest, dto.SortPriceAsc, dto.SortPriceDesc} {
		got, err := svc.ListProducts(ctx, dto.ProductFilter{SortBy: sortBy})
		if err != nil {
			t.Fatalf("%s: %v", sortBy, err)
		}
		if !equalNames(got, "a", "b", "c") {
			t.Fatalf("%s with equal keys: got %v, want [a b c]", sortBy, names(got))
		}
	}
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	testutil.CreateProduct(t, f.db, store.ID, "Plain", 1)
	testutil.CreateProduct(t, f.db, store.ID, "Other", 1)
	testutil.CreateProduct(t, f.db, store.ID, "snake_case 100%", 1)
	testutil.CreateProduct(t, f.db, store.ID, `back\slash`, 1)
	svc := NewProductService(f.db)

	tests := []struct {
		search string
		want   []string
	}{
		{"_", []string{"snake_case 100%"}},
		{"%", []string{"snake_case 100%"}},
		{`\`, []string{`back\slash`}},
		{"e_c", []string{"snake_case 100%"}},
		{"p%n", []string{}},
	}
	for _, tt := range tests {
		got, err := svc.ListProducts(ctx, dto.ProductFilter{Search: tt.search})
		if err != nil {
			t.Fatalf("search %q: %v", tt.search, err)
		}
		if !equalNames(got, tt.want...) {
			t.Fatalf("search %q: got %v, want %v", tt.search, names(got), tt.want)
		}
	}
}
