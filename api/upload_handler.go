package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/services"
)

// maxUploadBytes caps featured-image uploads at 10MB.
const maxUploadBytes = 10 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *services.ImageUploader
}

func newUploadHandler(uploader *services.ImageUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadImage stores a featured image and returns its public URL
// @Summary Upload featured image
// @Description Accepts a multipart "file" field, stores it in S3 and returns the public URL
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (jpeg, png, gif or webp)"
// @Success 200 {object} map[string]interface{} "success flag and url"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or unsupported file"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or invalid session"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Uploads not configured"
// @Security BearerAuth
// @Router /upload [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "image uploads are not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		url, err := h.uploader.UploadImage(r.Context(), file, contentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("url", url).Msg("Uploaded featured image")
		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"url":     url,
		})
	}
}
