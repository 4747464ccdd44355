package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/pkg/validator"
)

type ClientServiceImpl struct {
	repo     repository.ClientRepository
	commRepo repository.CommunicationRepository
	logger   *zap.Logger
}

func NewClientService(repo repository.ClientRepository, commRepo repository.CommunicationRepository, logger *zap.Logger) *ClientServiceImpl {
	return &ClientServiceImpl{repo: repo, commRepo: commRepo, logger: logger}
}

func (s *ClientServiceImpl) Create(ctx context.Context, storeID int64, dto domain.CreateClientDTO) (int64, error) {
	if !validator.ValidatePhone(dto.Phone) {
		return 0, fmt.Errorf("invalid phone number %q", dto.Phone)
	}
	dto.Phone = validator.FormatPhone(dto.Phone)
	dto.FirstName = validator.FormatName(dto.FirstName)
	dto.LastName = validator.FormatName(dto.LastName)

	if existing, err := s.repo.GetByPhone(ctx, storeID, dto.Phone); err == nil && existing != nil {
		return 0, fmt.Errorf("client with phone %s: %w", dto.Phone, domain.ErrAlreadyExists)
	}

	id, err := s.repo.Create(ctx, storeID, dto)
	if err != nil {
		return 0, err
	}

	s.logger.Info("client created", zap.Int64("clientId", id), zap.Int64("storeId", storeID))
	return id, nil
}

func (s *ClientServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateClientDTO) error {
	if dto.Phone != nil {
		if !validator.ValidatePhone(*dto.Phone) {
			return fmt.Errorf("invalid phone number %q", *dto.Phone)
		}
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
	}
	return s.repo.Update(ctx, id, dto)
}

func (s *ClientServiceImpl) List(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *ClientServiceImpl) ListCommunications(ctx context.Context, filter domain.CommunicationFilter) ([]domain.Communication, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.commRepo.List(ctx, filter)
}
