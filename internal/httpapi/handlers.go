package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxImageBytes caps uploaded images; oversized uploads are skipped, not
// rejected, since an estimate works without an image.
const maxImageBytes = 10 << 20

// Estimator is the part of the pricing pipeline the HTTP layer needs.
type Estimator interface {
	Estimate(ctx context.Context, category, notes string, imageURL *string) (pricing.EstimateResult, error)
}

// ImageStore persists an uploaded image and returns its public URL, or nil
// when storage is not configured.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (*string, error)
}

// Server holds the handler dependencies, injected once at startup.
type Server struct {
	estimator Estimator
	images    ImageStore
}

func NewServer(estimator Estimator, images ImageStore) *Server {
	return &Server{estimator: estimator, images: images}
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// postEstimate handles the single estimation endpoint. Expected no-data
// conditions are absorbed inside the pipeline and come back as a low
// confidence result; only genuinely unexpected failures surface here as a
// structured error payload.
func (s *Server) postEstimate(c *gin.Context) {
	start := time.Now()

	category := c.PostForm("category")
	notes := c.PostForm("notes")
	imageURL := s.storeImage(c)

	result, err := s.estimator.Estimate(c.Request.Context(), category, notes, imageURL)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("estimate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Cover the whole request including the image upload, not just the
	// pipeline.
	result.DurationMs = time.Since(start).Milliseconds()
	c.JSON(http.StatusOK, result)
}

// storeImage reads the optional multipart image and uploads it. Failures
// degrade to a nil URL; image persistence never fails the request.
func (s *Server) storeImage(c *gin.Context) *string {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	if file.Size > maxImageBytes {
		log.Warn().Int64("size", file.Size).Msg("uploaded image too large, skipping upload")
		return nil
	}

	f, err := file.Open()
	if err != nil {
		log.Warn().Err(err).Msg("failed to open uploaded image")
		return nil
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read uploaded image")
		return nil
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	imageURL, err := s.images.Upload(c.Request.Context(), data, contentType)
	if err != nil {
		log.Warn().Err(err).Msg("image upload failed")
		return nil
	}
	return imageURL
}
