package handlers

import (
	"io"
	"net/http"
	"strings"

	"clubhub/internal/api/middleware"
	"clubhub/internal/db"
	"clubhub/internal/models"
	"clubhub/internal/rbac"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"clubhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	log *logger.Logger
	acl types.ObjectCannedACL
}

func NewUploadHandler(acl types.ObjectCannedACL) *UploadHandler {
	if acl == "" {
		acl = types.ObjectCannedACLPublicRead
	}
	return &UploadHandler{
		log: logger.New("upload_handler"),
		acl: acl,
	}
}

// UploadHighlight stores a media file under the scoped club and records a
// highlight row for it. Super-Admins must name a club via the clubId query
// parameter; everyone else uploads into their own club.
// @Summary Upload a highlight clip
// @Description Upload a media file and create its highlight record
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} map[string]string "File uploaded successfully"
// @Failure 400 {object} map[string]string "Validation error or file not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/highlights/upload [post]
func (h *UploadHandler) UploadHighlight(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	scope := middleware.GetScope(c)
	if scope.Kind != rbac.ScopeClub {
		// Media always belongs to exactly one club; an unbounded scope has
		// nowhere to put it.
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "A clubId is required for uploads",
		})
	}

	storage := GetStorageHandler()
	if storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.log.Error("Failed to get file from request", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to read file",
		})
	}

	url, err := storage.UploadFile(c.Request().Context(), content, scope.ClubID, file.Filename, h.acl, file.Header.Get("Content-Type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to upload file",
		})
	}

	h.log.Success("File uploaded successfully: %s", url)

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	// The storage key is club-prefixed; keep the prefix so the signer can
	// resolve the object later.
	highlight := &models.Highlight{
		ClubID:    scope.ClubID,
		Title:     title,
		MediaPath: scope.ClubID + "/" + url[strings.LastIndex(url, "/")+1:],
		MediaType: file.Header.Get("Content-Type"),
		Size:      file.Size,
	}

	getDb := db.GetDB()

	if err := getDb.Create(highlight).Error; err != nil {
		h.log.Error("Failed to insert highlight into database", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to insert highlight into database",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "File uploaded successfully",
		"highlight": highlight.ID,
	})
}
