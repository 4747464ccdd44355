package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/pkg/auth"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, logger: logger}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return errors.New("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("hashing password failed", zap.Error(err))
		return errors.New("updating password failed")
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}
