// internal/handlers/product.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/models"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	auditService   *services.AuditService
}

// ProductResponse is a product plus its date status at response time.
type ProductResponse struct {
	models.Product
	DateStatus models.DateStatus `json:"dateStatus"`
}

func NewProductHandler(productService *services.ProductService, auditService *services.AuditService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		auditService:   auditService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	lang := utils.GetLangFromContext(c)

	field := models.SearchField(params.SearchBy)
	if !field.Valid() {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationSearchBy, params.SearchBy), nil)
		return
	}

	products := h.productService.Search(params.Search, field)
	services.SortByName(products)

	start, end := utils.PageBounds(len(products), params)
	page := toResponses(products[start:end], h.productService.Now())

	message := i18n.T(lang, i18n.KeySearchNoResults)
	if len(products) > 0 {
		message = i18n.T(lang, i18n.KeySearchResultsFound, len(products))
	}

	result := utils.CreatePaginationResult(page, int64(len(products)), params)
	utils.PaginatedResponse(c, result, message)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.productService.GetByID(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": toResponse(product, h.productService.Now()),
	})
}

// GET /products/:id/history
func (h *ProductHandler) GetProductHistory(c *gin.Context) {
	id := c.Param("id")
	logs, err := h.auditService.ForProduct(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": id,
		"history":    logs,
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	h.save(c, &req)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	req.ID = c.Param("id")

	h.save(c, &req)
}

func (h *ProductHandler) save(c *gin.Context, req *services.SaveProductRequest) {
	lang := utils.GetLangFromContext(c)

	product, err := h.productService.Save(c.Request.Context(), req)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			details := utils.GetValidationErrors(validationErr.Err)
			utils.ValidationErrorResponse(c, validationMessage(lang, details), details)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// A product that has never been updated was just created.
	if product.UpdatedAt == nil {
		utils.CreatedResponse(c, gin.H{
			"message": i18n.T(lang, i18n.KeyProductCreated),
			"product": toResponse(product, h.productService.Now()),
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": toResponse(product, h.productService.Now()),
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	removed, err := h.productService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
		"removed": removed,
	})
}

func validationMessage(lang string, details []utils.ValidationError) string {
	for _, d := range details {
		switch d.Field {
		case "name":
			return i18n.T(lang, i18n.KeyValidationNameReq)
		case "price":
			return i18n.T(lang, i18n.KeyValidationPriceNum)
		}
	}
	return ""
}

func toResponse(p models.Product, now time.Time) ProductResponse {
	return ProductResponse{Product: p, DateStatus: p.DateStatus(now)}
}

func toResponses(products []models.Product, now time.Time) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toResponse(p, now))
	}
	return out
}
