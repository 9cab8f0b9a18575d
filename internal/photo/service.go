package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopslot/shop-booking-backend/internal/pkg/logger"
	"github.com/shopslot/shop-booking-backend/internal/pkg/storage"
	"github.com/shopslot/shop-booking-backend/internal/shop"
)

const (
	maxUploadBytes  = 10 << 20 // 10 MiB
	thumbnailWidth  = 400
	thumbnailHeight = 400
)

type UploadInput struct {
	FileHeader *multipart.FileHeader
	ShopID     string
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Photo, error)
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByShop(ctx context.Context, shopID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	storage     storage.Storage
	shopService shop.Service
	imgProc     *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, shopService shop.Service) Service {
	return &service{
		repo:        repo,
		storage:     store,
		shopService: shopService,
		imgProc:     storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	if _, err := s.shopService.GetByID(ctx, in.ShopID); err != nil {
		return nil, ErrInvalidShop
	}
	if in.FileHeader.Size > maxUploadBytes {
		return nil, ErrTooLarge
	}

	contentType := in.FileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffer the whole upload so it can be read twice: once for the original,
	// once for the thumbnail. Uploads are capped well below memory concerns.
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(in.FileHeader.Filename))
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save photo to storage failed: %w", err)
	}

	// Thumbnail failure is non-fatal: the original is still served.
	var thumbnailPath *string
	thumb, err := s.imgProc.Thumbnail(bytes.NewReader(content), thumbnailWidth, thumbnailHeight)
	if err != nil {
		logger.L().Warn("thumbnail generation failed",
			zap.String("photo_id", photoID),
			zap.Error(err),
		)
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumb); err != nil {
			logger.L().Warn("thumbnail save failed",
				zap.String("photo_id", photoID),
				zap.Error(err),
			)
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		ShopID:        in.ShopID,
		Filename:      in.FileHeader.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          in.FileHeader.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Best-effort storage cleanup when the record cannot be written.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByShop(ctx context.Context, shopID string) ([]*Photo, error) {
	if _, err := s.shopService.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.repo.ListByShop(ctx, shopID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve photo from storage failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		logger.L().Warn("photo storage cleanup failed",
			zap.String("photo_id", id),
			zap.Error(err),
		)
	}
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
