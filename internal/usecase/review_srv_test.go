package usecase

import (
	"context"
	"strings"
	"testing"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/dto/request"

	"github.com/google/uuid"
)

type reviewFixture struct {
	svc   ReviewService
	store *memStore
	work  *entity.Work
	alice *entity.User
	bob   *entity.User
	mod   *entity.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	store := newMemStore()
	category := seedCategory(store, "Films", "films")
	return &reviewFixture{
		svc:   NewReviewService(newFakeRepository(store), nopLogger()),
		store: store,
		work:  seedWork(store, "Heat", 1995, &category.ID),
		alice: seedUser(store, "alice", "alice@example.com", entity.RoleUser),
		bob:   seedUser(store, "bob", "bob@example.com", entity.RoleUser),
		mod:   seedUser(store, "mod", "mod@example.com", entity.RoleModerator),
	}
}

func actorFor(user *entity.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}

func TestReviewCreate(t *testing.T) {
	f := newReviewFixture(t)

	resp, err := f.svc.Create(context.Background(), actorFor(f.alice), f.work.ID.String(), &request.CreateReviewRequest{
		Text:  "Great film",
		Score: 9,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Score != 9 || resp.Author != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestReviewCreateScoreBounds(t *testing.T) {
	f := newReviewFixture(t)

	for _, score := range []int{0, 11} {
		_, err := f.svc.Create(context.Background(), actorFor(f.alice), f.work.ID.String(), &request.CreateReviewRequest{
			Text:  "out of range",
			Score: score,
		})
		if err == nil || !strings.Contains(err.Error(), "validation failed") {
			t.Errorf("score %d: expected validation error, got %v", score, err)
		}
	}
}

func TestReviewCreateDuplicate(t *testing.T) {
	f := newReviewFixture(t)
	seedReview(f.store, f.work.ID, f.alice.ID, 8)

	_, err := f.svc.Create(context.Background(), actorFor(f.alice), f.work.ID.String(), &request.CreateReviewRequest{
		Text:  "second opinion",
		Score: 3,
	})
	if err == nil || !strings.Contains(err.Error(), "already reviewed") {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	// a different user may still review the same work
	if _, err := f.svc.Create(context.Background(), actorFor(f.bob), f.work.ID.String(), &request.CreateReviewRequest{
		Text:  "fine",
		Score: 6,
	}); err != nil {
		t.Fatalf("second author: %v", err)
	}
}

func TestReviewCreateUnknownWork(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Create(context.Background(), actorFor(f.alice), uuid.NewString(), &request.CreateReviewRequest{
		Text:  "nothing here",
		Score: 5,
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReviewGetWrongWork(t *testing.T) {
	f := newReviewFixture(t)
	otherCategory := seedCategory(f.store, "Books", "books")
	otherWork := seedWork(f.store, "War and Peace", 1869, &otherCategory.ID)
	review := seedReview(f.store, f.work.ID, f.alice.ID, 8)

	// addressing a review through the wrong work is a 404, not a leak
	_, err := f.svc.Get(context.Background(), otherWork.ID.String(), review.ID.String())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := f.svc.Get(context.Background(), f.work.ID.String(), review.ID.String()); err != nil {
		t.Fatalf("get through correct work: %v", err)
	}
}

func TestReviewUpdatePermissions(t *testing.T) {
	f := newReviewFixture(t)
	review := seedReview(f.store, f.work.ID, f.alice.ID, 8)
	text := "edited"

	// another plain user may not touch it
	_, err := f.svc.Update(context.Background(), actorFor(f.bob), f.work.ID.String(), review.ID.String(), &request.UpdateReviewRequest{Text: &text})
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// the author may
	resp, err := f.svc.Update(context.Background(), actorFor(f.alice), f.work.ID.String(), review.ID.String(), &request.UpdateReviewRequest{Text: &text})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if resp.Text != "edited" {
		t.Errorf("text = %q", resp.Text)
	}

	// so may a moderator
	score := 2
	resp, err = f.svc.Update(context.Background(), actorFor(f.mod), f.work.ID.String(), review.ID.String(), &request.UpdateReviewRequest{Score: &score})
	if err != nil {
		t.Fatalf("moderator update: %v", err)
	}
	if resp.Score != 2 {
		t.Errorf("score = %d", resp.Score)
	}
}

func TestReviewDeletePermissions(t *testing.T) {
	f := newReviewFixture(t)
	review := seedReview(f.store, f.work.ID, f.alice.ID, 8)
	seedComment(f.store, review.ID, f.bob.ID)

	err := f.svc.Delete(context.Background(), actorFor(f.bob), f.work.ID.String(), review.ID.String())
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := f.svc.Delete(context.Background(), actorFor(f.mod), f.work.ID.String(), review.ID.String()); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
	if len(f.store.reviews) != 0 {
		t.Error("review not deleted")
	}
	if len(f.store.comments) != 0 {
		t.Error("comments not cascaded")
	}
}

func TestReviewList(t *testing.T) {
	f := newReviewFixture(t)
	seedReview(f.store, f.work.ID, f.alice.ID, 8)
	seedReview(f.store, f.work.ID, f.bob.ID, 5)

	resp, err := f.svc.ListByWork(context.Background(), f.work.ID.String(), defaultPage())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Total != 2 {
		t.Errorf("got %d reviews, total %d", len(resp.Data), resp.Pagination.Total)
	}
}
