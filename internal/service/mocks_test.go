package service

import (
	"context"
	"sort"
	"sync"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
	getErr       error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.User{}, m.getErr
	}
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.usersByEmail[email]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

type mockPostRepo struct {
	mu    sync.Mutex
	posts map[string]domain.Post
	users *mockUserRepo
}

func newMockPostRepo(users *mockUserRepo) *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]domain.Post), users: users}
}

func (m *mockPostRepo) Create(_ context.Context, post domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (domain.Post, error) {
	m.mu.Lock()
	post, ok := m.posts[id]
	m.mu.Unlock()
	if !ok {
		return domain.Post{}, repository.ErrNotFound
	}
	return m.withAuthor(ctx, post), nil
}

func (m *mockPostRepo) List(ctx context.Context, offset, limit int) ([]domain.Post, int, error) {
	m.mu.Lock()
	all := make([]domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	m.mu.Unlock()
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := len(all)
	if offset >= total {
		return []domain.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]domain.Post, 0, end-offset)
	for _, p := range all[offset:end] {
		page = append(page, m.withAuthor(ctx, p))
	}
	return page, total, nil
}

func (m *mockPostRepo) Update(_ context.Context, post domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.posts[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.UpdatedAt = post.UpdatedAt
	m.posts[post.ID] = existing
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) withAuthor(ctx context.Context, post domain.Post) domain.Post {
	if m.users == nil {
		return post
	}
	if u, err := m.users.GetByID(ctx, post.AuthorID); err == nil {
		summary := u.Summary()
		post.Author = &summary
	}
	return post
}
