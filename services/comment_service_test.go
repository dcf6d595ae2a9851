package services

import (
	"testing"
	"time"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/testutil"
)

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	product := testutil.CreateProduct(t, f.db, store.ID, "Lamp", 10)
	svc := NewCommentService(f.db)

	first, err := svc.CreateComment(ctx, actorOf(f.stranger), product.ID, "  Great lamp  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Comment != "Great lamp" {
		t.Fatalf("comment not trimmed: %q", first.Comment)
	}
	if _, err := svc.CreateComment(ctx, actorOf(f.owner), product.ID, "Thanks!"); err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := svc.ListComments(ctx, product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID {
		t.Fatalf("comments not in chronological order: %+v", list)
	}

	resp := dto.NewCommentResponse(list[0])
	if resp.UserName != "Test stranger@example.com" {
		t.Fatalf("userName = %q", resp.UserName)
	}
	if _, err := time.Parse(dto.CommentDateLayout, resp.CreatedAt); err != nil {
		t.Fatalf("createdAt %q does not match %s: %v", resp.CreatedAt, dto.CommentDateLayout, err)
	}

	if err := svc.DeleteComment(ctx, actorOf(f.owner), first.ID); !isKind(err, ErrForbidden) {
		t.Fatalf("non-author delete: want ErrForbidden, got %v", err)
	}
	if err := svc.DeleteComment(ctx, actorOf(f.stranger), first.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.DeleteComment(ctx, actorOf(f.admin), list[1].ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.DeleteComment(ctx, actorOf(f.admin), first.ID); !isKind(err, ErrNotFound) {
		t.Fatalf("delete missing: want ErrNotFound, got %v", err)
	}
}

func TestCommentRejects(t *testing.T) {
	f := newFixture(t)
	store := testutil.CreateStore(t, f.db, f.owner.ID, "Shop")
	product := testutil.CreateProduct(t, f.db, store.ID, "Lamp", 10)
	svc := NewCommentService(f.db)

	if _, err := svc.CreateComment(ctx, actorOf(f.owner), product.ID, "   "); !isKind(err, ErrValidation) {
		t.Fatalf("blank comment: want ErrValidation, got %v", err)
	}
	if _, err := svc.CreateComment(ctx, actorOf(f.owner), 9999, "hello"); !isKind(err, ErrNotFound) {
		t.Fatalf("missing product: want ErrNotFound, got %v", err)
	}
	if _, err := svc.ListComments(ctx, 9999); !isKind(err, ErrNotFound) {
		t.Fatalf("list missing product: want ErrNotFound, got %v", err)
	}
}
