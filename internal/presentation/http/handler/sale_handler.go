package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/application/service"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/metrics"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/request"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/response"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
	metrics     *metrics.Metrics
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, m *metrics.Metrics) *SaleHandler {
	return &SaleHandler{saleService: saleService, metrics: m}
}

func (h *SaleHandler) buildInput(c *gin.Context, req *request.CreateSaleRequest, userID uuid.UUID) (*service.SaleInput, bool) {
	input := &service.SaleInput{
		CustomerID:     req.CustomerID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		DiscountAmount: toCents(req.DiscountAmount),
		AmountPaid:     toCents(req.AmountPaid),
		Notes:          req.Notes,
		CreatedBy:      userID,
	}

	if req.PaymentMethod != "" {
		method, err := enum.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			response.BadRequest(c, "Invalid payment method")
			return nil, false
		}
		input.PaymentMethod = method
	} else {
		input.PaymentMethod = enum.PaymentMethodCash
	}

	for _, item := range req.Items {
		input.Items = append(input.Items, service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return input, true
}

// Preview computes cart totals without touching stock or persisting anything
func (h *SaleHandler) Preview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req, *userID)
	if !ok {
		return
	}

	preview, err := h.saleService.PreviewSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale preview computed", preview)
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req, *userID)
	if !ok {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SalesCreated.Inc()
	}

	response.Created(c, "Sale created successfully", sale)
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *SaleHandler) List(c *gin.Context) {
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if !h.applySaleFilters(c, &filter, &params.SaleStatus, &params.PaymentStatus, &params.CustomerID, &params.StartDate, &params.EndDate) {
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

func (h *SaleHandler) listWithCursor(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search: filter.Search,
	}
	if !h.applySaleFilters(c, &filter, &params.SaleStatus, &params.PaymentStatus, &params.CustomerID, &params.StartDate, &params.EndDate) {
		return
	}

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Sales retrieved successfully", result)
}

func (h *SaleHandler) applySaleFilters(
	c *gin.Context,
	filter *request.SaleFilterRequest,
	saleStatus **enum.SaleStatus,
	paymentStatus **enum.SalePaymentStatus,
	customerID **uuid.UUID,
	startDate, endDate **time.Time,
) bool {
	if filter.SaleStatus != "" {
		status := enum.SaleStatus(filter.SaleStatus)
		*saleStatus = &status
	}
	if filter.PaymentStatus != "" {
		status := enum.SalePaymentStatus(filter.PaymentStatus)
		*paymentStatus = &status
	}
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return false
		}
		*customerID = &id
	}
	start, err := parseDate(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date")
		return false
	}
	*startDate = start
	end, err := parseDate(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end date")
		return false
	}
	*endDate = end
	return true
}

// Get handles getting a single sale with its items and payments
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Cancel voids a sale and restores its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}

// MarkDelivered flips a confirmed sale to delivered
func (h *SaleHandler) MarkDelivered(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale marked as delivered", sale)
}

// AddPayment records a follow-up payment against an open sale balance
func (h *SaleHandler) AddPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.AddSalePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	sale, err := h.saleService.AddSalePayment(c.Request.Context(), &service.AddSalePaymentInput{
		SaleID:               id,
		PaymentMethod:        method,
		Amount:               toCents(req.Amount),
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
		CreatedBy:            *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", sale)
}
