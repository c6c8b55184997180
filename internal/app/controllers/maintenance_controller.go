package controllers

import (
	"strconv"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/domain/services"
	"gated-community-http-service/internal/domain/services/container"
	"gated-community-http-service/internal/error/code"
	"gated-community-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceMaintenanceController 定义报修控制器接口
type InterfaceMaintenanceController interface {
	GetRequests()
	GetRequest()
	GetMyRequests()
	CreateRequest()
	UpdateStatus()
}

// MaintenanceController 处理报修相关的请求
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController 创建一个新的报修控制器
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// MaintenanceRequestBody 表示提交报修请求
type MaintenanceRequestBody struct {
	Title       string `json:"title" binding:"required" example:"水管漏水"`
	Description string `json:"description" binding:"required" example:"厨房水槽下方水管接口处渗水"`
	Category    string `json:"category" binding:"omitempty" example:"plumbing"`
}

// MaintenanceStatusRequest 表示更新报修状态的请求
type MaintenanceStatusRequest struct {
	Status    string `json:"status" binding:"required,oneof=open in_progress resolved closed" example:"in_progress"`
	AdminNote string `json:"admin_note" example:"已安排师傅明日上门"`
}

// HandleMaintenanceFunc 返回一个处理报修请求的Gin处理函数
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "getRequests":
			controller.GetRequests()
		case "getRequest":
			controller.GetRequest()
		case "getMyRequests":
			controller.GetMyRequests()
		case "createRequest":
			controller.CreateRequest()
		case "updateStatus":
			controller.UpdateStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetRequests 获取报修单列表（管理端）
// @Summary      获取报修单列表
// @Description  分页获取报修单，支持按状态过滤
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Param        status query string false "状态过滤：open, in_progress, resolved, closed"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance [get]
func (c *MaintenanceController) GetRequests() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	status := c.Ctx.Query("status")

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	requests, total, err := maintenanceService.GetAllRequests(page, pageSize, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取报修单列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        requests,
	})
}

// GetRequest 获取单个报修单
// @Summary      获取报修单详情
// @Description  根据ID获取报修单信息
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "报修单ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id} [get]
func (c *MaintenanceController) GetRequest() {
	idUint, ok := parseUintParam(c.Ctx, "id", "报修单ID")
	if !ok {
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.GetRequestByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrMaintenanceNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, request)
}

// GetMyRequests 获取当前住户的报修单
// @Summary      获取我的报修单
// @Description  返回当前登录账号关联住户提交的报修记录
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /maintenance/my [get]
func (c *MaintenanceController) GetMyRequests() {
	residentIDValue, exists := c.Ctx.Get("residentID")
	if !exists {
		response.Success(c.Ctx, gin.H{
			"total": 0,
			"data":  []models.MaintenanceRequest{},
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

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	requests, total, err := maintenanceService.GetRequestsByResidentID(residentID, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取报修记录失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        requests,
	})
}

// CreateRequest 提交报修单
// @Summary      提交报修单
// @Description  当前登录账号关联的住户提交一条报修，工单号自动生成
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body MaintenanceRequestBody true "报修内容"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /maintenance [post]
func (c *MaintenanceController) CreateRequest() {
	// 提交人从令牌关联的住户确定，不信任请求体
	residentIDValue, exists := c.Ctx.Get("residentID")
	if !exists {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, "当前账号未关联住户，无法提交报修", nil)
		return
	}
	residentID := residentIDValue.(uint)

	var req MaintenanceRequestBody
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	request := models.MaintenanceRequest{
		ResidentID:  residentID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	if err := maintenanceService.CreateRequest(&request); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "提交报修失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, request)
}

// UpdateStatus 更新报修单状态（管理端）
// @Summary      更新报修单状态
// @Description  推进报修单状态并可附加处理备注
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "报修单ID"
// @Param        request body MaintenanceStatusRequest true "目标状态"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id}/status [put]
func (c *MaintenanceController) UpdateStatus() {
	idUint, ok := parseUintParam(c.Ctx, "id", "报修单ID")
	if !ok {
		return
	}

	var req MaintenanceStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.UpdateRequestStatus(idUint, req.Status, req.AdminNote)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrMaintenanceNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, request)
}
