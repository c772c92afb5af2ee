package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saddexed/clips/internal/gallery"
	service "github.com/saddexed/clips/internal/services"
	"github.com/saddexed/clips/internal/storage"
	utils "github.com/saddexed/clips/internal/utis"
)

type Handler struct {
	svc         *service.MediaService
	uploadDir   string
	maxFileSize int64
	log         *zap.SugaredLogger
}

func NewHandler(svc *service.MediaService, uploadDir string, maxFileSize int64, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, uploadDir: uploadDir, maxFileSize: maxFileSize, log: log}
}

// Register mounts the API routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/gallery", h.List)
	app.Post("/api/upload", h.Upload)
	app.Put("/api/gallery/:id", h.Rename)
	app.Delete("/api/gallery/:id", h.Delete)
}

// GET /api/gallery
func (h *Handler) List(c *fiber.Ctx) error {
	doc, err := h.svc.List()
	if err != nil {
		h.log.Errorw("list gallery", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to load gallery", err.Error())
	}
	return c.JSON(doc)
}

// POST /api/upload (multipart form: 'file' required, 'title' optional)
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "No file uploaded", "")
	}

	// Accept-filter: size and type checks run before any bytes are written.
	mediaType, err := utils.ValidateUpload(fileHeader, h.maxFileSize)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Upload rejected", err.Error())
	}

	tempName := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	tempPath := filepath.Join(h.uploadDir, tempName)
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		h.log.Errorw("save upload", "file", fileHeader.Filename, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Upload failed", err.Error())
	}

	item, err := h.svc.Ingest(c.UserContext(), service.Upload{
		TempPath:     tempPath,
		OriginalName: fileHeader.Filename,
		Title:        c.FormValue("title"),
		Size:         fileHeader.Size,
		Type:         mediaType,
	})
	if err != nil {
		h.log.Errorw("upload failed", "file", fileHeader.Filename, "error", err)
		if errors.Is(err, utils.ErrUnsupportedType) {
			return utils.JSONError(c, fiber.StatusBadRequest, "Upload rejected", err.Error())
		}
		var upErr *storage.UploadError
		if errors.As(err, &upErr) {
			return utils.JSONError(c, fiber.StatusInternalServerError, "Upload failed", upErr.Message)
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "Upload failed", err.Error())
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("%s uploaded successfully!", item.Type.Title()),
		"fileData": item,
	})
}

// PUT /api/gallery/:id (JSON body {title})
func (h *Handler) Rename(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "Title is required", "")
	}

	item, err := h.svc.Rename(id, strings.TrimSpace(body.Title))
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Media not found", "")
		}
		h.log.Errorw("rename failed", "id", id, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Update failed", err.Error())
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Media updated successfully",
		"updatedItem": item,
	})
}

// DELETE /api/gallery/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	item, err := h.svc.Delete(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Media not found", "")
		}
		h.log.Errorw("delete failed", "id", id, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Delete failed", err.Error())
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     fmt.Sprintf("%s deleted successfully", item.Type.Title()),
		"deletedItem": item,
	})
}
