package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/transform"
	"github.com/ds124wfegd/gif-overlay/internal/transport/middleware"
)

const (
	fileField = "gif"

	msgMissingFile      = "No GIF file uploaded"
	msgMissingText      = "Text is required"
	msgInvalidParameter = "Invalid parameter"
	msgFileTooLarge     = "GIF file is too large"
	msgProcessingFailed = "Failed to process GIF"
	msgProcessed        = "GIF processed with text overlay"
)

// fieldError describes a rejected optional form field.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string { return e.field + " " + e.reason }

func (e *fieldError) Unwrap() error { return entity.ErrInvalidParameter }

// OverlayText validates the multipart form and runs the overlay pipeline.
// Checks run in order: file part, text, optional fields, size.
func (h *OverlayHandler) OverlayText(c *gin.Context) {
	file, err := c.FormFile(fileField)
	if err != nil {
		h.reject(c, http.StatusBadRequest, entity.ErrMissingFile, entity.ErrorResponse{Error: msgMissingFile})
		return
	}

	text := c.PostForm("text")
	if strings.TrimSpace(text) == "" {
		h.reject(c, http.StatusBadRequest, entity.ErrMissingText, entity.ErrorResponse{Error: msgMissingText})
		return
	}

	req, err := parseOverlayRequest(c, text)
	if err != nil {
		h.reject(c, http.StatusBadRequest, err, entity.ErrorResponse{Error: msgInvalidParameter, Details: err.Error()})
		return
	}

	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		h.reject(c, http.StatusRequestEntityTooLarge, entity.ErrFileTooLarge, entity.ErrorResponse{
			Error:   msgFileTooLarge,
			Details: entity.ErrFileTooLarge.Error() + ": limit is " + strconv.FormatInt(h.maxUploadBytes>>20, 10) + " MB",
		})
		return
	}

	logrus.WithFields(logrus.Fields{
		"file":       file.Filename,
		"size":       file.Size,
		"parameters": req.Descriptor(),
	}).Info("Overlay request accepted")

	result, err := h.service.Process(c.Request.Context(), file, req)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, entity.ErrRemoteUploadFailed) {
			outcome = metrics.OutcomeUploadFailed
		}
		h.metrics.RecordRequest(outcome)

		logrus.WithError(fmt.Errorf("%w: %w", entity.ErrProcessingFailed, err)).
			WithField("file", file.Filename).
			Error("Failed to process GIF")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   msgProcessingFailed,
			Details: err.Error(),
		})
		return
	}

	c.Set(middleware.AssetIDKey, result.AssetID)
	h.metrics.RecordRequest(metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, entity.OverlayResponse{
		Success:     true,
		Message:     msgProcessed,
		URL:         result.TransformedURL,
		OriginalURL: result.OriginalURL,
		Parameters:  result.Parameters,
	})
}

func (h *OverlayHandler) reject(c *gin.Context, status int, reason error, body entity.ErrorResponse) {
	h.metrics.RecordRequest(metrics.OutcomeInvalid)
	logrus.WithError(reason).WithField("status", status).Warn("Overlay request rejected")
	c.JSON(status, body)
}

// parseOverlayRequest reads the optional fields. Empty values count as
// omitted; anything else must parse or the request is rejected.
func parseOverlayRequest(c *gin.Context, text string) (entity.OverlayRequest, error) {
	req := entity.OverlayRequest{Text: text}

	var err error
	if req.FontSize, err = optionalInt(c, "fontSize"); err != nil {
		return req, err
	}
	if req.FontSize != nil && *req.FontSize <= 0 {
		return req, &fieldError{field: "fontSize", reason: "must be a positive integer"}
	}
	if req.X, err = optionalInt(c, "x"); err != nil {
		return req, err
	}
	if req.Y, err = optionalInt(c, "y"); err != nil {
		return req, err
	}
	if req.Angle, err = optionalInt(c, "angle"); err != nil {
		return req, err
	}

	if color := strings.TrimSpace(c.PostForm("color")); color != "" {
		if !transform.ValidColor(color) {
			return req, &fieldError{field: "color", reason: "must be a color name, #hex or rgb:hex value"}
		}
		req.Color = &color
	}

	return req, nil
}

func optionalInt(c *gin.Context, field string) (*int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &fieldError{field: field, reason: "must be an integer"}
	}
	return &v, nil
}
