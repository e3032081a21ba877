package minio

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/infrastructure"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/jitter"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

// MinioInfrastructure uploads product images and cleans up orphaned objects
// after a failed submission.
type MinioInfrastructure struct {
	minioRepo   usecase.ImageRepository
	bucketName  string
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, bucketName string, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:   minioRepo,
		bucketName:  bucketName,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadImage stores the file under a randomized object key that preserves
// the original extension and returns the key together with the public URL the
// record will reference.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	const op = "MinioInfrastructure.UploadImage"

	image := req.Image
	imageID := uuid.NewString()

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(image.Name), "."))
	if ext == "" {
		var err error
		ext, err = infrastructure.GetExtensionFromMIME(image.MimeType)
		if err != nil {
			return nil, e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err))
		}
	}
	objKey := fmt.Sprintf("%s.%s", imageID, ext)

	obj := domain.NewImage(imageID, m.bucketName, objKey, image.Data, image.Size, image.MimeType)
	key, err := m.minioRepo.Upload(ctx, obj)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadImageRes(key, m.minioRepo.PublicURL(key)), nil
}

// CleanupImages removes the given object keys in the background.
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys deletes objects with bounded retries and jittered
// backoff, bailing out when the application shuts down.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const (
		op          = "MinioInfrastructure.cleanupUploadedKeys"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 8 * time.Second
	)
	m.logger.Infof("%s: cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.minioRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				sleep := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
				select {
				case <-time.After(sleep):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup blocks until pending cleanup goroutines finish or the
// shutdown context expires.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
