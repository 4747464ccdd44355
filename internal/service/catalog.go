package service

import (
	"context"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
)

type CatalogServiceImpl struct {
	repo   repository.ServiceRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo, logger: logger}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, storeID int64, dto domain.CreateServiceDTO) (int64, error) {
	id, err := s.repo.Create(ctx, storeID, dto)
	if err != nil {
		return 0, err
	}

	s.logger.Info("service created", zap.Int64("serviceId", id), zap.Int64("storeId", storeID))
	return id, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CatalogServiceImpl) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}
