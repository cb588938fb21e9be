package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/application/service"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/request"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/response"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// ReminderHandler handles WhatsApp payment reminder HTTP requests
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// Preview renders the reminder message for one payment without sending it
func (h *ReminderHandler) Preview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	reminder, err := h.reminderService.PreviewReminder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminder preview composed", reminder)
}

// Send composes and sends reminders for the selected payments
func (h *ReminderHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.reminderService.SendReminders(c.Request.Context(), req.PaymentIDs, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminders processed", results)
}

// SendOverdue composes and sends reminders for every overdue payment
func (h *ReminderHandler) SendOverdue(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	results, err := h.reminderService.SendOverdueReminders(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue reminders processed", results)
}

// GetForPayment lists the reminder history of one payment
func (h *ReminderHandler) GetForPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	reminders, err := h.reminderService.GetPaymentReminders(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment reminders retrieved successfully", reminders)
}

// List lists all sent reminders
func (h *ReminderHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{
		Page:    1,
		PerPage: 15,
	}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reminderService.ListReminders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reminders retrieved successfully", result)
}
