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

// InterfaceResidentController 定义住户控制器接口
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	CreateResident()
	UpdateResident()
	DeleteResident()
	LinkUser()
	UnlinkUser()
}

// ResidentController 处理住户相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的住户控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest 表示创建住户请求
type ResidentRequest struct {
	Name   string `json:"name" binding:"required" example:"王敏"`
	Phone  string `json:"phone" binding:"required" example:"13900001111"`
	Email  string `json:"email" binding:"omitempty,email" example:"wangmin@example.com"`
	PlotID uint   `json:"plot_id" binding:"required" example:"100"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

// LinkUserRequest 表示住户绑定登录账号的请求
type LinkUserRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"5000"`
}

// HandleResidentFunc 返回一个处理住户请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		case "linkUser":
			controller.LinkUser()
		case "unlinkUser":
			controller.UnlinkUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetResidents 获取住户列表
// @Summary      获取住户列表
// @Description  分页获取登记的住户
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /residents [get]
func (c *ResidentController) GetResidents() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, total, err := residentService.GetAllResidents(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        residents,
	})
}

// GetResident 获取单个住户
// @Summary      获取住户详情
// @Description  根据ID获取住户信息，包含所在地块与关联账号
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [get]
func (c *ResidentController) GetResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, resident)
}

// CreateResident 创建住户
// @Summary      登记住户
// @Description  在指定地块下登记一名住户，手机号全局唯一
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "住户信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	resident := models.Resident{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		PlotID: req.PlotID,
		Status: req.Status,
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.CreateResident(&resident); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, resident)
}

// UpdateResident 更新住户
// @Summary      更新住户
// @Description  更新住户的姓名、联系方式、地块或状态
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Param        request body map[string]interface{} true "需要更新的字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [put]
func (c *ResidentController) UpdateResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.UpdateResident(idUint, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, resident)
}

// DeleteResident 删除住户
// @Summary      删除住户
// @Description  删除住户登记，若有关联账号会先解除绑定
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [delete]
func (c *ResidentController) DeleteResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.DeleteResident(idUint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "删除成功", nil)
}

// LinkUser 绑定登录账号
// @Summary      绑定登录账号
// @Description  将住户与登录账号建立双向关联
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Param        request body LinkUserRequest true "账号ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id}/link [post]
func (c *ResidentController) LinkUser() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	var req LinkUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.LinkUser(idUint, req.UserID); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "绑定成功", nil)
}

// UnlinkUser 解绑登录账号
// @Summary      解绑登录账号
// @Description  解除住户与登录账号的关联
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id}/link [delete]
func (c *ResidentController) UnlinkUser() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.UnlinkUser(idUint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrResidentNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "解绑成功", nil)
}
