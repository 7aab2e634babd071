package handlers

import (
	"log"

	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles the payment endpoint
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayBillRequest represents payment request body
type PayBillRequest struct {
	UserID uint `json:"userId"`
}

// PayBill marks every bill for the user paid
// @Summary Pay bills
// @Description Mark all of a user's bills as paid
// @Tags Payment
// @Accept json
// @Produce json
// @Param body body PayBillRequest true "Payment data"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /user/pay [post]
func (h *PaymentHandler) PayBill(c *fiber.Ctx) error {
	var req PayBillRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// No existence check: zero updated rows still succeeds.
	if err := h.paymentService.PayBills(c.Context(), req.UserID); err != nil {
		log.Printf("❌ Payment error: %v", err)
		return response.InternalServerError(c)
	}

	return response.Message(c, "Payment successful.")
}
