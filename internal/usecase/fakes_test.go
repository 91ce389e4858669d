package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// mirrors the SQL contracts the services rely on: soft-deleted users are
// invisible, work ratings are the rounded mean of review scores, and
// deletes cascade the way the foreign keys do.
type memStore struct {
	users      []*entity.User
	categories []*entity.Category
	genres     []*entity.Genre
	works      []*entity.Work
	workGenres map[uuid.UUID][]uuid.UUID
	reviews    []*entity.Review
	comments   []*entity.Comment
}

func newMemStore() *memStore {
	return &memStore{workGenres: map[uuid.UUID][]uuid.UUID{}}
}

func newFakeRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		User:      &fakeUserRepo{store},
		Category:  &fakeCategoryRepo{store},
		Genre:     &fakeGenreRepo{store},
		Work:      &fakeWorkRepo{store},
		WorkGenre: &fakeWorkGenreRepo{store},
		Review:    &fakeReviewRepo{store},
		Comment:   &fakeCommentRepo{store},
	}
}

func nopLogger() *zap.Logger { return zap.NewNop() }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ==================== USERS ====================

type fakeUserRepo struct{ store *memStore }

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.store.users = append(f.store.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.store.users {
		if u.ID == id && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.store.users {
		if u.Username == username && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.store.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.store.users {
		if u.DeletedAt != nil {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			continue
		}
		out = append(out, u)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range f.store.users {
		if u.ID == user.ID {
			f.store.users[i] = user
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, u := range f.store.users {
		if u.ID == id {
			u.DeletedAt = &now
		}
	}
	return nil
}

// ==================== CATEGORIES ====================

type fakeCategoryRepo struct{ store *memStore }

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.store.categories = append(f.store.categories, category)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.store.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.store.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.store.categories {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, c)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range f.store.categories {
		if c.Slug == slug {
			// works keep existing but lose the category, as the FK does
			for _, w := range f.store.works {
				if w.CategoryID != nil && *w.CategoryID == c.ID {
					w.CategoryID = nil
				}
			}
			f.store.categories = append(f.store.categories[:i], f.store.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

// ==================== GENRES ====================

type fakeGenreRepo struct{ store *memStore }

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	f.store.genres = append(f.store.genres, genre)
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.store.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, slug := range slugs {
		if g, _ := f.FindBySlug(ctx, slug); g != nil {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByWorkID(_ context.Context, workID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, genreID := range f.store.workGenres[workID] {
		for _, g := range f.store.genres {
			if g.ID == genreID {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range f.store.genres {
		if search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, g)
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, g := range f.store.genres {
		if g.Slug == slug {
			for workID, ids := range f.store.workGenres {
				var kept []uuid.UUID
				for _, id := range ids {
					if id != g.ID {
						kept = append(kept, id)
					}
				}
				f.store.workGenres[workID] = kept
			}
			f.store.genres = append(f.store.genres[:i], f.store.genres[i+1:]...)
			return nil
		}
	}
	return nil
}

// ==================== WORKS ====================

type fakeWorkRepo struct{ store *memStore }

// rating mirrors the SQL aggregate: rounded mean of review scores, nil
// when there are no reviews yet
func (f *fakeWorkRepo) rating(workID uuid.UUID) *int {
	var sum, n int
	for _, r := range f.store.reviews {
		if r.WorkID == workID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	rating := int(math.Round(float64(sum) / float64(n)))
	return &rating
}

func (f *fakeWorkRepo) Create(_ context.Context, work *entity.Work) error {
	f.store.works = append(f.store.works, work)
	return nil
}

func (f *fakeWorkRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Work, error) {
	for _, w := range f.store.works {
		if w.ID == id {
			w.Rating = f.rating(w.ID)
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkRepo) matches(w *entity.Work, filter repository.WorkFilter) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(w.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Year != nil && w.Year != *filter.Year {
		return false
	}
	if filter.CategorySlug != "" {
		if w.CategoryID == nil {
			return false
		}
		var slug string
		for _, c := range f.store.categories {
			if c.ID == *w.CategoryID {
				slug = c.Slug
			}
		}
		if slug != filter.CategorySlug {
			return false
		}
	}
	if filter.GenreSlug != "" {
		found := false
		for _, genreID := range f.store.workGenres[w.ID] {
			for _, g := range f.store.genres {
				if g.ID == genreID && g.Slug == filter.GenreSlug {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeWorkRepo) FindAll(_ context.Context, filter repository.WorkFilter, limit, offset int) ([]*entity.Work, error) {
	var out []*entity.Work
	for _, w := range f.store.works {
		if f.matches(w, filter) {
			w.Rating = f.rating(w.ID)
			out = append(out, w)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeWorkRepo) CountAll(ctx context.Context, filter repository.WorkFilter) (int64, error) {
	all, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeWorkRepo) Update(_ context.Context, work *entity.Work) error {
	for i, w := range f.store.works {
		if w.ID == work.ID {
			f.store.works[i] = work
		}
	}
	return nil
}

func (f *fakeWorkRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, w := range f.store.works {
		if w.ID == id {
			f.store.works = append(f.store.works[:i], f.store.works[i+1:]...)
			break
		}
	}
	var keptReviews []*entity.Review
	for _, r := range f.store.reviews {
		if r.WorkID == id {
			f.deleteComments(r.ID)
			continue
		}
		keptReviews = append(keptReviews, r)
	}
	f.store.reviews = keptReviews
	delete(f.store.workGenres, id)
	return nil
}

func (f *fakeWorkRepo) deleteComments(reviewID uuid.UUID) {
	var kept []*entity.Comment
	for _, c := range f.store.comments {
		if c.ReviewID != reviewID {
			kept = append(kept, c)
		}
	}
	f.store.comments = kept
}

// ==================== WORK GENRES ====================

type fakeWorkGenreRepo struct{ store *memStore }

func (f *fakeWorkGenreRepo) Set(_ context.Context, workID uuid.UUID, genreIDs []uuid.UUID) error {
	f.store.workGenres[workID] = genreIDs
	return nil
}

func (f *fakeWorkGenreRepo) DeleteByWorkID(_ context.Context, workID uuid.UUID) error {
	delete(f.store.workGenres, workID)
	return nil
}

// ==================== REVIEWS ====================

type fakeReviewRepo struct{ store *memStore }

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.store.reviews = append(f.store.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range f.store.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByWorkID(_ context.Context, workID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.store.reviews {
		if r.WorkID == workID {
			out = append(out, r)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeReviewRepo) FindByAuthorAndWork(_ context.Context, authorID, workID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.store.reviews {
		if r.AuthorID == authorID && r.WorkID == workID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByWorkID(ctx context.Context, workID uuid.UUID) (int64, error) {
	all, _ := f.FindByWorkID(ctx, workID, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range f.store.reviews {
		if r.ID == review.ID {
			f.store.reviews[i] = review
		}
	}
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.store.reviews {
		if r.ID == id {
			f.store.reviews = append(f.store.reviews[:i], f.store.reviews[i+1:]...)
			break
		}
	}
	var kept []*entity.Comment
	for _, c := range f.store.comments {
		if c.ReviewID != id {
			kept = append(kept, c)
		}
	}
	f.store.comments = kept
	return nil
}

// ==================== COMMENTS ====================

type fakeCommentRepo struct{ store *memStore }

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.store.comments = append(f.store.comments, comment)
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range f.store.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.store.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	all, _ := f.FindByReviewID(ctx, reviewID, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range f.store.comments {
		if c.ID == comment.ID {
			f.store.comments[i] = comment
		}
	}
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.store.comments {
		if c.ID == id {
			f.store.comments = append(f.store.comments[:i], f.store.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ==================== SEED HELPERS ====================

func seedUser(store *memStore, username, email string, role entity.UserRole) *entity.User {
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username: username,
		Email:    email,
		Role:     role,
	}
	store.users = append(store.users, user)
	return user
}

func seedCategory(store *memStore, name, slug string) *entity.Category {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	store.categories = append(store.categories, category)
	return category
}

func seedGenre(store *memStore, name, slug string) *entity.Genre {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	store.genres = append(store.genres, genre)
	return genre
}

func seedWork(store *memStore, name string, year int, categoryID *uuid.UUID) *entity.Work {
	work := &entity.Work{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:       name,
		Year:       year,
		CategoryID: categoryID,
	}
	store.works = append(store.works, work)
	return work
}

func seedReview(store *memStore, workID, authorID uuid.UUID, score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		WorkID:     workID,
		AuthorID:   authorID,
		Text:       "seeded review",
		Score:      score,
	}
	store.reviews = append(store.reviews, review)
	return review
}

func seedComment(store *memStore, reviewID, authorID uuid.UUID) *entity.Comment {
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReviewID:   reviewID,
		AuthorID:   authorID,
		Text:       "seeded comment",
	}
	store.comments = append(store.comments, comment)
	return comment
}
