// internal/handlers/data.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

const maxImportSize = 10 << 20 // 10MB

// messageHeader carries the action message on raw document responses.
const messageHeader = "X-Message"

type DataHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
	auditService   *services.AuditService
}

func NewDataHandler(productService *services.ProductService, storageService *services.StorageService, auditService *services.AuditService) *DataHandler {
	return &DataHandler{
		productService: productService,
		storageService: storageService,
		auditService:   auditService,
	}
}

// GET /data/export
func (h *DataHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.productService.Export(&buf); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	lang := utils.GetLangFromContext(c)

	// inline=true serves the document for copy to clipboard
	if inline, _ := strconv.ParseBool(c.Query("inline")); inline {
		c.Header(messageHeader, i18n.T(lang, i18n.KeyDataCopied))
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName))
		c.Header(messageHeader, i18n.T(lang, i18n.KeyDataExported))
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// POST /data/export/archive
func (h *DataHandler) Archive(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var buf bytes.Buffer
	if err := h.productService.Export(&buf); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result, err := h.storageService.SaveExport(c.Request.Context(), buf.Bytes())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDataArchived),
		"export":  result,
	})
}

// POST /data/import
func (h *DataHandler) Import(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	data, err := readImportBody(c)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataImportInvalid), err.Error())
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataImportNoFile), nil)
		return
	}

	records, err := services.ParseImport(data)
	if err != nil {
		logrus.WithError(err).Warn("Rejected import document")
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataImportInvalid), err.Error())
		return
	}

	result, err := h.productService.ImportMerge(c.Request.Context(), records)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDataImported, result.Added, result.Merged),
		"added":   result.Added,
		"merged":  result.Merged,
	})
}

// POST /data/demo
func (h *DataHandler) LoadDemo(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.productService.LoadDemoData(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDataDemoLoaded),
		"count":   h.productService.Count(),
	})
}

// DELETE /data
func (h *DataHandler) Clear(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.productService.ClearAll(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDataCleared),
	})
}

// GET /data/audit
func (h *DataHandler) Audit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"enabled": h.auditService.Enabled(),
		"entries": logs,
	})
}

// readImportBody accepts a multipart "file" field or a raw JSON body.
func readImportBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	return io.ReadAll(c.Request.Body)
}
