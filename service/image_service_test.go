package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/models"
	"gamevault/utils"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, height/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEGBounds(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds()
}

type fakeDriveService struct {
	files     map[string][]byte
	downloads int
}

func (f *fakeDriveService) ListImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	var images []models.DriveImage
	for id := range f.files {
		images = append(images, models.DriveImage{FileID: id, ImageURL: utils.DriveImageURL(id)})
	}
	return images, nil
}

func (f *fakeDriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	f.downloads++
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func TestNormalizeImageSize(t *testing.T) {
	assert.Equal(t, SizeThumb, NormalizeImageSize("thumb"))
	assert.Equal(t, SizeMedium, NormalizeImageSize("medium"))
	assert.Equal(t, SizeMedium, NormalizeImageSize(""))
	assert.Equal(t, SizeMedium, NormalizeImageSize("huge"))
}

func TestOptimizeImage_FitsBoundingBox(t *testing.T) {
	raw := encodePNG(t, 1200, 600)

	medium, err := OptimizeImage(raw, SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 400), decodeJPEGBounds(t, medium))

	thumb, err := OptimizeImage(raw, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 150), decodeJPEGBounds(t, thumb))
}

func TestOptimizeImage_DoesNotUpscale(t *testing.T) {
	out, err := OptimizeImage(encodePNG(t, 120, 80), SizeMedium)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), decodeJPEGBounds(t, out))
}

func TestOptimizeImage_RejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), SizeThumb)

	assert.Error(t, err)
}

func TestImageService_ItemImage_FetchesAndCaches(t *testing.T) {
	raw := encodePNG(t, 1000, 500)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(raw)
	}))
	defer server.Close()

	svc := NewImageService(t.TempDir(), server.Client(), nil)
	item := models.Item{ID: "1", Image: server.URL + "/valorant.png"}

	first, err := svc.ItemImage(context.Background(), item, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 150), decodeJPEGBounds(t, first))

	_, err = os.Stat(svc.CachePath(item, SizeThumb))
	require.NoError(t, err, "optimized image is cached")

	second, err := svc.ItemImage(context.Background(), item, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestImageService_CachePath_DependsOnImageAndSize(t *testing.T) {
	svc := NewImageService("/cache", nil, nil)
	item := models.Item{ID: "../etc", Image: "https://example.com/a.png"}
	replaced := item
	replaced.Image = "https://example.com/b.png"

	path := svc.CachePath(item, SizeThumb)

	assert.NotEqual(t, path, svc.CachePath(replaced, SizeThumb))
	assert.NotEqual(t, path, svc.CachePath(item, SizeMedium))
	assert.Contains(t, path, "item____etc_")
	assert.NotContains(t, path, "/etc")
}

func TestImageService_ItemImage_RemoteErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	svc := NewImageService(t.TempDir(), server.Client(), nil)

	_, err := svc.ItemImage(context.Background(), models.Item{ID: "1", Image: server.URL + "/missing.png"}, SizeThumb)
	assert.Error(t, err)

	_, err = svc.ItemImage(context.Background(), models.Item{ID: "2"}, SizeThumb)
	assert.Error(t, err)
}

func TestImageService_ItemImage_DriveURL(t *testing.T) {
	drive := &fakeDriveService{files: map[string][]byte{"abc123": encodePNG(t, 50, 50)}}
	svc := NewImageService(t.TempDir(), nil, drive)

	out, err := svc.ItemImage(context.Background(), models.Item{ID: "1", Image: utils.DriveImageURL("abc123")}, SizeMedium)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), decodeJPEGBounds(t, out))
	assert.Equal(t, 1, drive.downloads)
}

func TestImageService_ItemImage_DriveNotConfigured(t *testing.T) {
	svc := NewImageService(t.TempDir(), nil, nil)

	_, err := svc.ItemImage(context.Background(), models.Item{ID: "1", Image: utils.DriveImageURL("abc123")}, SizeMedium)

	assert.True(t, errors.Is(err, models.ErrDriveNotConfigured))
}
