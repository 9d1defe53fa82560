package handler

import (
	"errors"
	"restaurant_order/constants"
	"restaurant_order/database"
	"restaurant_order/model"
	"restaurant_order/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// Mặt đọc đơn hàng. CRUD đầy đủ (tạo đơn, luồng bếp) thuộc service khác;
// ở đây chỉ phục vụ client theo dõi thanh toán.

func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	err := database.DB.
		Preload("Table").
		Preload("Items").
		Preload("Items.MenuItem").
		First(&order, orderId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn đơn hàng", err)
	}

	var resp model.OrderResponse
	copier.Copy(&resp, &order)
	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

func GetOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 0)
	status := c.Query("status")

	query := database.DB.Model(&model.Order{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var limitPtr, pagePtr *int
	if limit > 0 {
		limitPtr = utils.Ptr(limit)
	}
	if page > 0 {
		pagePtr = utils.Ptr(page)
	}

	var orders []model.Order
	if err := utils.ApplyPagination(query, limitPtr, pagePtr).Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn đơn hàng", err)
	}

	rows := make([]model.OrderResponse, 0, len(orders))
	for _, order := range orders {
		var resp model.OrderResponse
		copier.Copy(&resp, &order)
		rows = append(rows, resp)
	}

	return c.JSON(model.ResponseCustom{
		Rows:       rows,
		Limit:      limitPtr,
		Page:       pagePtr,
		TotalCount: totalCount,
	})
}
