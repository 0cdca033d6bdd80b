package server

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	uploaddomain "github.com/smallbiznis/backoffice/internal/upload/domain"
)

// multipart field names accepted for the asset, in lookup order.
var uploadFields = []string{"image", "file"}

func (s *Server) Upload(c *gin.Context) {
	if limit := s.cfg.Upload.MaxBytes; limit > 0 {
		// Leave room for the multipart envelope around the file.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)
	}

	header, err := formFile(c)
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer file.Close()

	resp, err := s.uploadSvc.Upload(c.Request.Context(), uploaddomain.UploadRequest{
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	var lastErr error
	for _, field := range uploadFields {
		header, err := c.FormFile(field)
		if err == nil {
			return header, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
