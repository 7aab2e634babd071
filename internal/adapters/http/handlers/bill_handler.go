package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BillHandler handles bill generation and retrieval endpoints
type BillHandler struct {
	billService *services.BillService
	validate    *validator.Validate
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *services.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
		validate:    validator.New(),
	}
}

// flexibleID decodes a uint from a JSON number or a numeric string,
// so clients may send userId either way.
type flexibleID uint

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	n, err := strconv.ParseUint(strings.Trim(string(data), `"`), 10, 32)
	if err != nil {
		return err
	}
	*f = flexibleID(n)
	return nil
}

// GenerateBillRequest represents bill generation request body
type GenerateBillRequest struct {
	UserID    flexibleID `json:"userId" validate:"required"`
	WattsUsed float64    `json:"wattsUsed" validate:"gte=0"`
}

// GenerateBill handles bill generation
// @Summary Generate bill
// @Description Compute and persist a bill for a user, then notify by email
// @Tags Bill
// @Accept json
// @Produce json
// @Param body body GenerateBillRequest true "Bill data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /admin/generate-bill [post]
func (h *BillHandler) GenerateBill(c *fiber.Ctx) error {
	var req GenerateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid userId")
	}
	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "WattsUsed" {
					return response.BadRequest(c, "Invalid wattsUsed")
				}
			}
		}
		return response.BadRequest(c, "Invalid userId")
	}

	bill, err := h.billService.GenerateBill(c.Context(), uint(req.UserID), req.WattsUsed)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("❌ Bill generation error: %v", err)
		return response.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message": "Bill generated successfully.",
		"bill":    bill.ToResponse(),
	})
}

// GetLatestBill returns the user's most recent bill
// @Summary Get latest bill
// @Description Return the most recently generated bill for a user
// @Tags Bill
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Bill
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /user/{userId}/bill [get]
func (h *BillHandler) GetLatestBill(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid userId")
	}

	bill, err := h.billService.GetLatestBill(c.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrBillNotFound) {
			// 404 with a message body, not an error field
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No bill found for this user",
			})
		}
		log.Printf("❌ Bill lookup error: %v", err)
		return response.InternalServerError(c)
	}

	return c.JSON(bill)
}
