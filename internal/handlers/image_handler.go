package handlers

import (
	"io"
	"net/http"

	"github.com/crestline/huddle/backend/internal/metrics"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// maxImageSize caps uploads at 10 MiB.
const maxImageSize = 10 << 20

// ImageHandler handles image uploads and serving. Posts reference uploaded
// images only by the URL returned here.
type ImageHandler struct {
	imageRepository repositories.ImageRepository
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageRepo repositories.ImageRepository) *ImageHandler {
	return &ImageHandler{imageRepository: imageRepo}
}

// RegisterUploadRoutes registers the authenticated upload route.
func (h *ImageHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/images", h.UploadImage)
}

// RegisterServeRoutes registers the public serving route.
func (h *ImageHandler) RegisterServeRoutes(e *echo.Echo) {
	e.GET("/images/:id", h.ServeImage)
}

// UploadImage stores the multipart "file" field and returns the URL the
// image is served from.
func (h *ImageHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if fileHeader.Size > maxImageSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	img, err := h.imageRepository.StoreImage(c.Request().Context(), data, contentType)
	if err != nil {
		return httpError(err, "Image")
	}
	metrics.ImagesStored.Inc()

	return c.JSON(http.StatusOK, echo.Map{"url": img.URL()})
}

// ServeImage streams a stored image back with its original content type.
func (h *ImageHandler) ServeImage(c echo.Context) error {
	img, err := h.imageRepository.GetImageByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "Image")
	}
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}
