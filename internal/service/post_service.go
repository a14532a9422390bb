package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrPostNotFound indica que el post no existe.
var ErrPostNotFound = errors.New("post not found")

// PostService implementa las operaciones sobre posts y aplica la regla de dueño en las mutaciones.
type PostService struct {
	logger *zap.Logger
	posts  repository.PostRepository
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{logger: logger, posts: posts}
}

type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput solo aplica los campos no nulos.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

func (s *PostService) List(ctx context.Context, page, limit int) (domain.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	posts, total, err := s.posts.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return domain.PostPage{}, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return domain.PostPage{
		Data:        posts,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		TotalItems:  total,
	}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return post, nil
}

// Create guarda un post cuyo autor es el usuario autenticado.
func (s *PostService) Create(ctx context.Context, callerID string, input CreatePostInput) (domain.Post, error) {
	now := time.Now().UTC()
	post := domain.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Published: false,
		AuthorID:  callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return s.Get(ctx, post.ID)
}

func (s *PostService) Update(ctx context.Context, callerID, id string, input UpdatePostInput) (domain.Post, error) {
	post, err := s.loadForMutation(ctx, callerID, id)
	if err != nil {
		return domain.Post{}, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return s.Get(ctx, post.ID)
}

func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.loadForMutation(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.logger.Info("post deleted", zap.String("post_id", id), zap.String("user_id", callerID))
	return nil
}

// loadForMutation comprueba existencia (404) y despues propiedad (403), en ese orden.
func (s *PostService) loadForMutation(ctx context.Context, callerID, id string) (domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if err := AuthorizeMutation(callerID, post); err != nil {
		s.logger.Info("post mutation denied", zap.String("post_id", id), zap.String("user_id", callerID))
		return domain.Post{}, err
	}
	return post, nil
}
