package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage"
	"eventboard/model"
)

type CategoryService struct {
	store storage.Storage
}

func NewCategoryService(store storage.Storage) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	category := &model.Category{Name: name}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id bson.ObjectID, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	category, err := s.store.UpdateCategory(ctx, id, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that posts still point at, so no
// post is ever left with a dangling category reference.
func (s *CategoryService) Delete(ctx context.Context, id bson.ObjectID) error {
	n, err := s.store.CountPostsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
