package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/application/service"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/request"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/response"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles creating a payment
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	input := &service.CreatePaymentInput{
		CustomerID:           req.CustomerID,
		CustomerName:         req.CustomerName,
		Amount:               toCents(req.Amount),
		PaymentMethod:        method,
		TransactionReference: req.TransactionReference,
		Description:          req.Description,
		Notes:                req.Notes,
		CreatedBy:            *userID,
	}

	if req.WalletType != "" {
		wallet, err := enum.ParseWalletType(req.WalletType)
		if err != nil {
			response.BadRequest(c, "Invalid wallet type")
			return
		}
		input.WalletType = wallet
	}

	if req.Status != "" {
		input.Status = enum.PaymentStatus(req.Status)
	} else {
		input.Status = enum.PaymentStatusPending
	}

	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date")
			return
		}
		input.DueDate = due
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment created successfully", payment)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	var filter request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		status := enum.PaymentStatus(filter.Status)
		params.Status = &status
	}
	if filter.Method != "" {
		method := enum.PaymentMethod(filter.Method)
		params.Method = &method
	}
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &id
	}
	start, err := parseDate(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date")
		return
	}
	params.StartDate = start
	end, err := parseDate(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end date")
		return
	}
	params.EndDate = end

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// GetSummary returns the aggregated totals for the payments dashboard
func (h *PaymentHandler) GetSummary(c *gin.Context) {
	summary, err := h.paymentService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment summary retrieved successfully", summary)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// Update handles updating a payment
func (h *PaymentHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req request.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdatePaymentInput{
		ID:                   id,
		TransactionReference: req.TransactionReference,
		Description:          req.Description,
		Notes:                req.Notes,
		UpdatedBy:            *userID,
	}
	if req.Amount != nil {
		amount := toCents(*req.Amount)
		input.Amount = &amount
	}
	if req.PaymentMethod != nil {
		method, err := enum.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			response.BadRequest(c, "Invalid payment method")
			return
		}
		input.PaymentMethod = &method
	}
	if req.WalletType != nil {
		wallet, err := enum.ParseWalletType(*req.WalletType)
		if err != nil {
			response.BadRequest(c, "Invalid wallet type")
			return
		}
		input.WalletType = &wallet
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date")
			return
		}
		input.DueDate = due
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", payment)
}

// MarkPaid settles a pending or overdue payment
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.MarkPaid(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment marked as paid", payment)
}

// Cancel voids a payment that has not been settled
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment cancelled successfully", payment)
}

// Delete handles deleting a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SweepOverdue flips every pending payment whose due date has passed
func (h *PaymentHandler) SweepOverdue(c *gin.Context) {
	count, err := h.paymentService.SweepOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue sweep completed", gin.H{"updated": count})
}
