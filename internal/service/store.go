package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
)

type StoreServiceImpl struct {
	repo   repository.StoreRepository
	logger *zap.Logger
}

func NewStoreService(repo repository.StoreRepository, logger *zap.Logger) *StoreServiceImpl {
	return &StoreServiceImpl{repo: repo, logger: logger}
}

func (s *StoreServiceImpl) Create(ctx context.Context, dto domain.CreateStoreDTO) (int64, error) {
	if _, err := time.LoadLocation(dto.Timezone); err != nil {
		return 0, fmt.Errorf("unknown timezone %q", dto.Timezone)
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		return 0, err
	}

	s.logger.Info("store created", zap.Int64("storeId", id), zap.String("slug", dto.Slug))
	return id, nil
}

func (s *StoreServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StoreServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *StoreServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateStoreDTO) error {
	if dto.Timezone != nil {
		if _, err := time.LoadLocation(*dto.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q", *dto.Timezone)
		}
	}
	return s.repo.Update(ctx, id, dto)
}

func (s *StoreServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.Store, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
