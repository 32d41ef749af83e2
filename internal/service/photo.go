package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

var (
	// ErrPhotoStorageDisabled - хранилище фотографий не настроено
	ErrPhotoStorageDisabled = errors.New("photo storage is not configured")
	// ErrUnsupportedPhoto - неподдерживаемое расширение файла
	ErrUnsupportedPhoto = errors.New("unsupported photo format")
)

const photoKeyPrefix = "incidents"

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

// PhotoStorage - объектное хранилище фотографий
type PhotoStorage interface {
	// Put сохраняет объект и возвращает ссылку для клиента
	Put(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error)
}

// PhotoService загружает фотографии с места инцидента
type PhotoService interface {
	UploadPhoto(ctx context.Context, filename string, body io.ReadSeeker) (string, error)
}

type photoService struct {
	storage PhotoStorage
	logger  *logrus.Logger
}

// NewPhotoService принимает nil storage, тогда загрузка возвращает ErrPhotoStorageDisabled
func NewPhotoService(storage PhotoStorage, logger *logrus.Logger) PhotoService {
	return &photoService{
		storage: storage,
		logger:  logger,
	}
}

func (s *photoService) UploadPhoto(ctx context.Context, filename string, body io.ReadSeeker) (string, error) {
	if s.storage == nil {
		return "", ErrPhotoStorageDisabled
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := photoContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPhoto, ext)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("service: could not generate photo id: %w", err)
	}
	key := fmt.Sprintf("%s/%s%s", photoKeyPrefix, id, ext)

	log := s.logger.WithFields(logrus.Fields{
		"service": "photo",
		"method":  "UploadPhoto",
		"key":     key,
	})

	url, err := s.storage.Put(ctx, key, contentType, body)
	if err != nil {
		log.WithError(err).Error("Failed to upload photo")
		return "", fmt.Errorf("service: could not upload photo: %w", err)
	}

	log.Info("Photo uploaded")
	return url, nil
}
