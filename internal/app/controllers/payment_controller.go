package controllers

import (
	"strconv"
	"time"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/domain/services"
	"gated-community-http-service/internal/domain/services/container"
	"gated-community-http-service/internal/error/code"
	"gated-community-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfacePaymentController 定义缴费控制器接口
type InterfacePaymentController interface {
	GetPayments()
	GetPayment()
	GetMyPayments()
	CreatePayment()
	MarkPaid()
	GetStatistics()
}

// PaymentController 处理缴费相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// PaymentRequest 表示创建缴费单请求
type PaymentRequest struct {
	ResidentID  uint    `json:"resident_id" binding:"required" example:"1000"`
	PaymentType string  `json:"payment_type" binding:"required,oneof=maintenance water electricity other" example:"maintenance"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"320.50"`
	DueDate     string  `json:"due_date" binding:"required" example:"2025-07-31"`
	Remark      string  `json:"remark" example:"二季度物业费"`
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getPayments":
			controller.GetPayments()
		case "getPayment":
			controller.GetPayment()
		case "getMyPayments":
			controller.GetMyPayments()
		case "createPayment":
			controller.CreatePayment()
		case "markPaid":
			controller.MarkPaid()
		case "getStatistics":
			controller.GetStatistics()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetPayments 获取缴费单列表（管理端）
// @Summary      获取缴费单列表
// @Description  分页获取缴费单，支持按状态过滤
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Param        status query string false "状态过滤：pending, paid, overdue"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /payments [get]
func (c *PaymentController) GetPayments() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	status := c.Ctx.Query("status")

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.GetAllPayments(page, pageSize, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取缴费单列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// GetPayment 获取单个缴费单
// @Summary      获取缴费单详情
// @Description  根据ID获取缴费单信息
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "缴费单ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /payments/{id} [get]
func (c *PaymentController) GetPayment() {
	idUint, ok := parseUintParam(c.Ctx, "id", "缴费单ID")
	if !ok {
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.GetPaymentByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPaymentNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, payment)
}

// GetMyPayments 获取当前住户的缴费单
// @Summary      获取我的缴费单
// @Description  返回当前登录账号关联住户的缴费记录
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /payments/my [get]
func (c *PaymentController) GetMyPayments() {
	// 未关联住户的账号（如管理员）没有缴费记录
	residentIDValue, exists := c.Ctx.Get("residentID")
	if !exists {
		response.Success(c.Ctx, gin.H{
			"total": 0,
			"data":  []models.Payment{},
		})
		return
	}
	residentID := residentIDValue.(uint)

	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.GetPaymentsByResidentID(residentID, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取缴费记录失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// CreatePayment 创建缴费单（管理端）
// @Summary      创建缴费单
// @Description  为指定住户创建一张缴费单，地块随住户确定
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body PaymentRequest true "缴费单信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /payments [post]
func (c *PaymentController) CreatePayment() {
	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.ParamError(c.Ctx, "无效的应缴日期格式，应为YYYY-MM-DD")
		return
	}

	payment := models.Payment{
		ResidentID:  req.ResidentID,
		PaymentType: req.PaymentType,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Remark:      req.Remark,
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	if err := paymentService.CreatePayment(&payment); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, payment)
}

// MarkPaid 标记缴费单已缴清
// @Summary      标记已缴费
// @Description  将缴费单置为已缴清并生成缴费凭证号
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "缴费单ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /payments/{id}/pay [put]
func (c *PaymentController) MarkPaid() {
	idUint, ok := parseUintParam(c.Ctx, "id", "缴费单ID")
	if !ok {
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.MarkPaymentPaid(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPaymentAlreadyPaid, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, payment)
}

// GetStatistics 获取缴费统计（管理端）
// @Summary      获取缴费统计
// @Description  按状态统计缴费单数量与金额
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /payments/statistics [get]
func (c *PaymentController) GetStatistics() {
	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	stats, err := paymentService.GetPaymentStatistics()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取缴费统计失败", nil)
		return
	}

	response.Success(c.Ctx, stats)
}
