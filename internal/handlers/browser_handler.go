package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/iconluxury/bucketd/internal/models"
	"github.com/iconluxury/bucketd/internal/services"
	"github.com/labstack/echo/v4"
)

// BrowserHandler exposes one deployment's ObjectBrowser as REST endpoints.
type BrowserHandler struct {
	browser *services.ObjectBrowser
}

func NewBrowserHandler(browser *services.ObjectBrowser) *BrowserHandler {
	return &BrowserHandler{browser: browser}
}

// ListObjects returns one folder/file page for a prefix
func (h *BrowserHandler) ListObjects(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	page, err := intQueryParam(c, "page", 1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid page"})
	}
	pageSize, err := intQueryParam(c, "pageSize", services.DefaultPageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid pageSize"})
	}
	cursor := c.QueryParam("continuationToken")

	result, err := h.browser.ListPage(c.Request().Context(), prefix, page, pageSize, cursor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// SignObject returns a presigned GET URL for one key
func (h *BrowserHandler) SignObject(c echo.Context) error {
	key := c.QueryParam("key")

	expiresIn, err := intQueryParam(c, "expiresIn", 3600)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid expiresIn"})
	}

	result, err := h.browser.SignURL(c.Request().Context(), key, expiresIn)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// UploadObject streams one multipart file into the destination path
func (h *BrowserHandler) UploadObject(c echo.Context) error {
	destPath := c.QueryParam("path")

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file uploaded"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read uploaded file"})
	}
	defer func() { _ = src.Close() }()

	contentType := file.Header.Get("Content-Type")
	summary, err := h.browser.Upload(c.Request().Context(), src, file.Filename, file.Size, contentType, destPath)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

type deleteRequest struct {
	Paths []string `json:"paths"`
}

// DeleteObjects batch-deletes keys and expanded folder prefixes
func (h *BrowserHandler) DeleteObjects(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
	}

	summary, err := h.browser.DeleteMany(c.Request().Context(), req.Paths)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ExportCSV streams the full listing under a prefix as a CSV attachment
func (h *BrowserHandler) ExportCSV(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	data, filename, err := h.browser.ExportCSV(c.Request().Context(), prefix)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
