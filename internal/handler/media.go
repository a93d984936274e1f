package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
)

// saveUpload reads the "file" form field, stores it through the media
// service, and writes the error response itself on failure. Returns the
// stored URL and whether the caller should continue.
func saveUpload(c *gin.Context, media *service.MediaService, kind service.MediaKind) (string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return "", false
	}
	defer file.Close()

	url, err := media.SaveUpload(kind, file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return "", false
	}
	return url, true
}
