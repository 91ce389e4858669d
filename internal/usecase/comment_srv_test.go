package usecase

import (
	"context"
	"strings"
	"testing"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/dto/request"

	"github.com/google/uuid"
)

type commentFixture struct {
	svc    CommentService
	store  *memStore
	work   *entity.Work
	review *entity.Review
	alice  *entity.User
	bob    *entity.User
	mod    *entity.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	store := newMemStore()
	category := seedCategory(store, "Films", "films")
	work := seedWork(store, "Heat", 1995, &category.ID)
	alice := seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	return &commentFixture{
		svc:    NewCommentService(newFakeRepository(store), nopLogger()),
		store:  store,
		work:   work,
		review: seedReview(store, work.ID, alice.ID, 8),
		alice:  alice,
		bob:    seedUser(store, "bob", "bob@example.com", entity.RoleUser),
		mod:    seedUser(store, "mod", "mod@example.com", entity.RoleModerator),
	}
}

func TestCommentCreate(t *testing.T) {
	f := newCommentFixture(t)

	resp, err := f.svc.Create(context.Background(), actorFor(f.bob), f.work.ID.String(), f.review.ID.String(), &request.CreateCommentRequest{
		Text: "agreed",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Text != "agreed" || resp.Author != "bob" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCommentChainMismatch(t *testing.T) {
	f := newCommentFixture(t)
	otherCategory := seedCategory(f.store, "Books", "books")
	otherWork := seedWork(f.store, "War and Peace", 1869, &otherCategory.ID)
	comment := seedComment(f.store, f.review.ID, f.bob.ID)

	// wrong work in the path
	_, err := f.svc.Get(context.Background(), otherWork.ID.String(), f.review.ID.String(), comment.ID.String())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}

	// wrong review in the path
	otherReview := seedReview(f.store, otherWork.ID, f.alice.ID, 5)
	_, err = f.svc.Get(context.Background(), f.work.ID.String(), otherReview.ID.String(), comment.ID.String())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}

	// unknown review entirely
	_, err = f.svc.Get(context.Background(), f.work.ID.String(), uuid.NewString(), comment.ID.String())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}

	// the full correct chain works
	if _, err := f.svc.Get(context.Background(), f.work.ID.String(), f.review.ID.String(), comment.ID.String()); err != nil {
		t.Fatalf("get through correct chain: %v", err)
	}
}

func TestCommentUpdatePermissions(t *testing.T) {
	f := newCommentFixture(t)
	comment := seedComment(f.store, f.review.ID, f.bob.ID)
	text := "edited"

	_, err := f.svc.Update(context.Background(), actorFor(f.alice), f.work.ID.String(), f.review.ID.String(), comment.ID.String(), &request.UpdateCommentRequest{Text: &text})
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}

	resp, err := f.svc.Update(context.Background(), actorFor(f.bob), f.work.ID.String(), f.review.ID.String(), comment.ID.String(), &request.UpdateCommentRequest{Text: &text})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if resp.Text != "edited" {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestCommentDeletePermissions(t *testing.T) {
	f := newCommentFixture(t)
	comment := seedComment(f.store, f.review.ID, f.bob.ID)

	err := f.svc.Delete(context.Background(), actorFor(f.alice), f.work.ID.String(), f.review.ID.String(), comment.ID.String())
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := f.svc.Delete(context.Background(), actorFor(f.mod), f.work.ID.String(), f.review.ID.String(), comment.ID.String()); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
	if len(f.store.comments) != 0 {
		t.Error("comment not deleted")
	}
}

func TestCommentList(t *testing.T) {
	f := newCommentFixture(t)
	seedComment(f.store, f.review.ID, f.bob.ID)
	seedComment(f.store, f.review.ID, f.alice.ID)

	resp, err := f.svc.ListByReview(context.Background(), f.work.ID.String(), f.review.ID.String(), defaultPage())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Total != 2 {
		t.Errorf("got %d comments, total %d", len(resp.Data), resp.Pagination.Total)
	}
}
