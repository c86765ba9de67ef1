package handlers

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/metrics"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/notifications"
	"github.com/comeoffice/rank_booking/services"
	"github.com/comeoffice/rank_booking/utils"
	"github.com/comeoffice/rank_booking/websocket"
)

var validate = validator.New()

var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

type createOrderInput struct {
	PlanID   string `json:"planId"`
	RankID   string `json:"rankId"`
	ItemType string `json:"itemType"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	UTR      string `json:"utrNumber" validate:"required"`
}

// CreateOrder records a manual UPI order. The customer has already paid
// against the displayed UPI ID and submits the UTR reference for admin
// verification. The amount is always resolved server-side from the plan or
// rank; client-supplied prices are ignored.
func CreateOrder(c *fiber.Ctx) error {
	var input createOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, phone and UTR number are required"})
	}
	if !phonePattern.MatchString(input.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid phone number"})
	}

	utr := strings.ToUpper(strings.TrimSpace(input.UTR))
	if len(utr) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid UTR number"})
	}

	order := models.Order{
		OrderID:       utils.GenerateOrderID(),
		Name:          strings.TrimSpace(input.Name),
		Phone:         input.Phone,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PaymentMethod: models.PaymentMethodUPIManual,
		UTRNumber:     &utr,
		Status:        models.OrderStatusPending,
	}

	if err := resolveOrderItem(&order, input.ItemType, input.PlanID, input.RankID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Create(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This UTR number has already been submitted"})
		}
		log.Printf("🔥 Failed to create order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create order"})
	}

	metrics.RecordOrderCreated(models.PaymentMethodUPIManual)
	log.Printf("✅ Order %s created (%s, ₹%.0f)", order.OrderID, order.PlanName, order.Amount)

	go func(o models.Order) {
		settings, err := models.GetSettings(database.DB)
		if err != nil {
			log.Printf("🔥 Failed to load settings for order email: %v", err)
			return
		}
		notifications.SendOrderPlacedEmail(o, settings)
	}(order)
	websocket.BroadcastOrder(order)

	return c.Status(fiber.StatusCreated).JSON(order)
}

// resolveOrderItem fills PlanName and Amount from the selected plan or rank.
func resolveOrderItem(order *models.Order, itemType, planID, rankID string) error {
	if itemType == models.ItemTypeRank {
		id, err := uuid.Parse(rankID)
		if err != nil {
			return errors.New("Invalid rank selected")
		}
		var rank models.Rank
		if err := database.DB.Where("id = ? AND active = ?", id, true).First(&rank).Error; err != nil {
			return errors.New("Invalid rank selected")
		}
		order.ItemType = models.ItemTypeRank
		order.RankID = &rank.ID
		order.PlanName = rank.Name
		order.Amount = rank.DiscountedPrice
		return nil
	}

	id, err := uuid.Parse(planID)
	if err != nil {
		return errors.New("Invalid plan selected")
	}
	var plan models.Plan
	if err := database.DB.Where("id = ? AND active = ?", id, true).First(&plan).Error; err != nil {
		return errors.New("Invalid plan selected")
	}
	order.ItemType = models.ItemTypePlan
	order.PlanID = &plan.ID
	order.PlanName = plan.Name
	order.Amount = plan.EffectivePrice()
	return nil
}

// GetOrders lists orders for the admin dashboard, newest first.
func GetOrders(c *fiber.Ctx) error {
	query := database.DB.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var orders []models.Order
	if err := query.Limit(limit).Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}
	return c.JSON(orders)
}

// GetOrder accepts either the row UUID or the public order id.
func GetOrder(c *fiber.Ctx) error {
	param := c.Params("id")

	var order models.Order
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		err = database.DB.Where("id = ?", id).First(&order).Error
	} else {
		err = database.DB.Where("order_id = ?", param).First(&order).Error
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

type updateOrderInput struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// buildOrderUpdates maps an admin edit onto the columns it actually changes.
// Approval is never one of them: moving an order into approved must go
// through the reconciliation core, and a status the admin did not touch must
// never be written back, or a concurrent webhook approval could be reverted.
func buildOrderUpdates(input updateOrderInput, current models.Order) (map[string]interface{}, bool, error) {
	updates := map[string]interface{}{}
	approveRequested := false

	switch input.Status {
	case "":
	case models.OrderStatusApproved:
		approveRequested = current.Status != models.OrderStatusApproved
	case models.OrderStatusPending, models.OrderStatusRejected, models.OrderStatusCompleted:
		updates["status"] = input.Status
	default:
		return nil, false, errors.New("Invalid status")
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	return updates, approveRequested, nil
}

// UpdateOrder is the admin's manual state control. An update that moves an
// order into approved goes through the same one-time side effects as a
// gateway confirmation; repeated saves of an already approved order do not
// resend anything.
func UpdateOrder(c *fiber.Ctx) error {
	param := c.Params("id")

	var order models.Order
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		err = database.DB.Where("id = ?", id).First(&order).Error
	} else {
		err = database.DB.Where("order_id = ?", param).First(&order).Error
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	var input updateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates, approveRequested, err := buildOrderUpdates(input, order)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if approveRequested {
		// Race loss means some other channel already approved; nothing to do.
		if _, err := services.Approval.ApproveOrder(order.OrderID, services.PaymentMeta{}, 0, false, "admin"); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not approve order"})
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update order"})
		}
	}

	if err := database.DB.Where("id = ?", order.ID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update order"})
	}
	return c.JSON(order)
}

func DeleteOrder(c *fiber.Ctx) error {
	param := c.Params("id")

	var order models.Order
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		err = database.DB.Where("id = ?", id).First(&order).Error
	} else {
		err = database.DB.Where("order_id = ?", param).First(&order).Error
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete order"})
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}

type checkOrderInput struct {
	OrderID string `json:"orderId" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// CheckOrder is the public status lookup: the customer must present both the
// order id and the phone it was placed with.
func CheckOrder(c *fiber.Ctx) error {
	var input checkOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order ID and phone are required"})
	}

	var order models.Order
	if err := database.DB.
		Where("order_id = ? AND phone = ?", strings.TrimSpace(input.OrderID), strings.TrimSpace(input.Phone)).
		First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No order found with these details"})
	}

	return c.JSON(fiber.Map{
		"orderId":   order.OrderID,
		"planName":  order.PlanName,
		"amount":    order.Amount,
		"status":    order.Status,
		"createdAt": order.CreatedAt,
	})
}
