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

// InterfaceStreetController 定义街道控制器接口
type InterfaceStreetController interface {
	GetStreets()
	GetStreet()
	CreateStreet()
	UpdateStreet()
	DeleteStreet()
	GetStreetPlots()
}

// StreetController 处理街道相关的请求
type StreetController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStreetController 创建一个新的街道控制器
func NewStreetController(ctx *gin.Context, container *container.ServiceContainer) *StreetController {
	return &StreetController{
		Ctx:       ctx,
		Container: container,
	}
}

// StreetRequest 表示创建街道请求
type StreetRequest struct {
	StreetName string `json:"street_name" binding:"required" example:"紫荆街"`
	StreetCode string `json:"street_code" binding:"required" example:"ZJ-01"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

// HandleStreetFunc 返回一个处理街道请求的Gin处理函数
func HandleStreetFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStreetController(ctx, container)

		switch method {
		case "getStreets":
			controller.GetStreets()
		case "getStreet":
			controller.GetStreet()
		case "createStreet":
			controller.CreateStreet()
		case "updateStreet":
			controller.UpdateStreet()
		case "deleteStreet":
			controller.DeleteStreet()
		case "getStreetPlots":
			controller.GetStreetPlots()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetStreets 获取街道列表
// @Summary      获取街道列表
// @Description  分页获取当前小区下的所有街道
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /streets [get]
func (c *StreetController) GetStreets() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	orgID := c.Ctx.GetUint("orgID")
	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	streets, total, err := streetService.GetStreetsByOrganizationID(orgID, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取街道列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        streets,
	})
}

// GetStreet 获取单个街道
// @Summary      获取街道详情
// @Description  根据ID获取特定街道的详细信息
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        id path int true "街道ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /streets/{id} [get]
func (c *StreetController) GetStreet() {
	idUint, ok := parseUintParam(c.Ctx, "id", "街道ID")
	if !ok {
		return
	}

	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	street, err := streetService.GetStreetByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStreetNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, street)
}

// CreateStreet 创建街道
// @Summary      创建街道
// @Description  在当前小区下创建一条街道，编码在小区内唯一
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        request body StreetRequest true "街道信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /streets [post]
func (c *StreetController) CreateStreet() {
	var req StreetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	street := models.Street{
		StreetName:     req.StreetName,
		StreetCode:     req.StreetCode,
		OrganizationID: c.Ctx.GetUint("orgID"),
		Status:         req.Status,
	}

	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	if err := streetService.CreateStreet(&street); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStreetAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, street)
}

// UpdateStreet 更新街道
// @Summary      更新街道
// @Description  更新街道的名称、编码或状态
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        id path int true "街道ID"
// @Param        request body map[string]interface{} true "需要更新的字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /streets/{id} [put]
func (c *StreetController) UpdateStreet() {
	idUint, ok := parseUintParam(c.Ctx, "id", "街道ID")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	street, err := streetService.UpdateStreet(idUint, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStreetNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, street)
}

// DeleteStreet 删除街道
// @Summary      删除街道
// @Description  删除指定街道，street下仍有地块时拒绝删除
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        id path int true "街道ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /streets/{id} [delete]
func (c *StreetController) DeleteStreet() {
	idUint, ok := parseUintParam(c.Ctx, "id", "街道ID")
	if !ok {
		return
	}

	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	if err := streetService.DeleteStreet(idUint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStreetHasPlots, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "删除成功", nil)
}

// GetStreetPlots 获取街道下的地块
// @Summary      获取街道下的地块列表
// @Description  获取指定街道下的全部地块
// @Tags         Street
// @Accept       json
// @Produce      json
// @Param        id path int true "街道ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /streets/{id}/plots [get]
func (c *StreetController) GetStreetPlots() {
	idUint, ok := parseUintParam(c.Ctx, "id", "街道ID")
	if !ok {
		return
	}

	streetService := c.Container.GetService("street").(services.InterfaceStreetService)
	plots, err := streetService.GetStreetPlots(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrStreetNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total": len(plots),
		"data":  plots,
	})
}

// parseUintParam 解析路径参数中的数字ID
func parseUintParam(ctx *gin.Context, name string, label string) (uint, bool) {
	raw := ctx.Param(name)
	if raw == "" {
		response.ParamError(ctx, label+"不能为空")
		return 0, false
	}

	idUint, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.ParamError(ctx, "无效的"+label)
		return 0, false
	}

	return uint(idUint), true
}
