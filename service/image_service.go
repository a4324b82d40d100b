package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"gamevault/models"
	"gamevault/utils"
)

const maxRemoteImageBytes = 20 << 20

// ImageServiceInterface defines the contract for serving optimized item images
type ImageServiceInterface interface {
	ItemImage(ctx context.Context, item models.Item, size string) ([]byte, error)
}

// ImageService fetches item images (Drive or plain HTTP), optimizes them and
// caches the result on disk
// Implements ImageServiceInterface
type ImageService struct {
	cacheDir     string
	httpClient   *http.Client
	driveService DriveServiceInterface // nil when Drive is not configured
}

// NewImageService creates a new ImageService. driveService may be nil.
func NewImageService(cacheDir string, httpClient *http.Client, driveService DriveServiceInterface) *ImageService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ImageService{
		cacheDir:     cacheDir,
		httpClient:   httpClient,
		driveService: driveService,
	}
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// CachePath returns the cache file path for an item image. The image URI is
// part of the key so replacing an item's image never serves the old one.
func (s *ImageService) CachePath(item models.Item, size string) string {
	sum := sha256.Sum256([]byte(item.Image))
	filename := fmt.Sprintf("item_%s_%s_%s.jpg", sanitizeID(item.ID), hex.EncodeToString(sum[:6]), NormalizeImageSize(size))
	return filepath.Join(s.cacheDir, filename)
}

// ItemImage returns the optimized JPEG for item, from cache when possible
func (s *ImageService) ItemImage(ctx context.Context, item models.Item, size string) ([]byte, error) {
	if item.Image == "" {
		return nil, fmt.Errorf("item %s has no image", item.ID)
	}
	size = NormalizeImageSize(size)
	cachePath := s.CachePath(item, size)

	if data, err := os.ReadFile(cachePath); err == nil {
		log.Printf("✓ Serving cached image: %s", cachePath)
		return data, nil
	}

	raw, err := s.fetch(ctx, item.Image)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := s.saveToCache(cachePath, optimized); err != nil {
		// Still serve the image
		log.Printf("⚠️  Failed to cache image %s: %v", cachePath, err)
	}
	return optimized, nil
}

func (s *ImageService) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if fileID, ok := utils.DriveFileIDFromURL(imageURL); ok {
		if s.driveService == nil {
			return nil, models.ErrDriveNotConfigured
		}
		return s.driveService.DownloadImage(ctx, fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func (s *ImageService) saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := atomic.WriteFile(cachePath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// sanitizeID keeps ids safe to embed in a file name
func sanitizeID(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
