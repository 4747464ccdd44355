package service

import (
	"context"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/internal/storage"
)

type ArtistServiceImpl struct {
	repo        repository.ArtistRepository
	serviceRepo repository.ServiceRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewArtistService(repo repository.ArtistRepository, serviceRepo repository.ServiceRepository, fileStorage storage.FileStorage, logger *zap.Logger) *ArtistServiceImpl {
	return &ArtistServiceImpl{
		repo:        repo,
		serviceRepo: serviceRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *ArtistServiceImpl) Create(ctx context.Context, storeID int64, dto domain.CreateArtistDTO) (int64, error) {
	id, err := s.repo.Create(ctx, storeID, dto)
	if err != nil {
		return 0, err
	}

	s.logger.Info("artist created", zap.Int64("artistId", id), zap.Int64("storeId", storeID))
	return id, nil
}

func (s *ArtistServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ArtistServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateArtistDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *ArtistServiceImpl) UpdateSchedule(ctx context.Context, id int64, schedule domain.WeekSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateSchedule(ctx, id, schedule)
}

func (s *ArtistServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ArtistServiceImpl) List(ctx context.Context, filter domain.ArtistFilter) ([]domain.Artist, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *ArtistServiceImpl) UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error {
	artist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("uploading artist photo failed", zap.Int64("artistId", id), zap.Error(err))
		return err
	}

	if artist.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, artist.PhotoURL); err != nil {
			s.logger.Warn("deleting previous artist photo failed", zap.Int64("artistId", id), zap.Error(err))
		}
	}

	return s.repo.UpdatePhoto(ctx, id, url)
}

func (s *ArtistServiceImpl) DeletePhoto(ctx context.Context, id int64) error {
	artist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if artist.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, artist.PhotoURL); err != nil {
		s.logger.Warn("deleting artist photo failed", zap.Int64("artistId", id), zap.Error(err))
	}

	return s.repo.UpdatePhoto(ctx, id, "")
}

func (s *ArtistServiceImpl) AddService(ctx context.Context, artistID, serviceID int64) error {
	artist, err := s.repo.GetByID(ctx, artistID)
	if err != nil {
		return err
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if svc.StoreID != artist.StoreID {
		return domain.ErrNotFound
	}

	return s.repo.AddService(ctx, artistID, serviceID)
}

func (s *ArtistServiceImpl) RemoveService(ctx context.Context, artistID, serviceID int64) error {
	return s.repo.RemoveService(ctx, artistID, serviceID)
}
