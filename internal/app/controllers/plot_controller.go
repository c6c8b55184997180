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

// InterfacePlotController 定义地块控制器接口
type InterfacePlotController interface {
	GetPlots()
	GetPlot()
	CreatePlot()
	UpdatePlot()
	DeletePlot()
	GetPlotResidents()
}

// PlotController 处理地块相关的请求
type PlotController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPlotController 创建一个新的地块控制器
func NewPlotController(ctx *gin.Context, container *container.ServiceContainer) *PlotController {
	return &PlotController{
		Ctx:       ctx,
		Container: container,
	}
}

// PlotRequest 表示创建地块请求
type PlotRequest struct {
	PlotNumber string `json:"plot_number" binding:"required" example:"A-101"`
	StreetID   uint   `json:"street_id" binding:"required" example:"10"`
	PlotType   string `json:"plot_type" binding:"omitempty,oneof=villa apartment" example:"villa"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

// HandlePlotFunc 返回一个处理地块请求的Gin处理函数
func HandlePlotFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPlotController(ctx, container)

		switch method {
		case "getPlots":
			controller.GetPlots()
		case "getPlot":
			controller.GetPlot()
		case "createPlot":
			controller.CreatePlot()
		case "updatePlot":
			controller.UpdatePlot()
		case "deletePlot":
			controller.DeletePlot()
		case "getPlotResidents":
			controller.GetPlotResidents()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetPlots 获取地块列表
// @Summary      获取地块列表
// @Description  分页获取地块，支持按街道过滤
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Param        street_id query int false "按街道ID过滤"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /plots [get]
func (c *PlotController) GetPlots() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)

	var plots []models.Plot
	var total int64
	var err error

	if streetIDStr := c.Ctx.Query("street_id"); streetIDStr != "" {
		streetID, parseErr := strconv.ParseUint(streetIDStr, 10, 32)
		if parseErr != nil {
			response.ParamError(c.Ctx, "无效的街道ID")
			return
		}
		plots, total, err = plotService.GetPlotsByStreetID(uint(streetID), page, pageSize)
	} else {
		plots, total, err = plotService.GetAllPlots(page, pageSize)
	}

	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取地块列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        plots,
	})
}

// GetPlot 获取单个地块
// @Summary      获取地块详情
// @Description  根据ID获取地块信息，包含所属街道与住户
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        id path int true "地块ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /plots/{id} [get]
func (c *PlotController) GetPlot() {
	idUint, ok := parseUintParam(c.Ctx, "id", "地块ID")
	if !ok {
		return
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)
	plot, err := plotService.GetPlotByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPlotNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, plot)
}

// CreatePlot 创建地块
// @Summary      创建地块
// @Description  在指定街道下创建地块，编号在街道内唯一
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        request body PlotRequest true "地块信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /plots [post]
func (c *PlotController) CreatePlot() {
	var req PlotRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	plot := models.Plot{
		PlotNumber: req.PlotNumber,
		StreetID:   req.StreetID,
		PlotType:   req.PlotType,
		Status:     req.Status,
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)
	if err := plotService.CreatePlot(&plot); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPlotAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, plot)
}

// UpdatePlot 更新地块
// @Summary      更新地块
// @Description  更新地块的编号、类型或状态
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        id path int true "地块ID"
// @Param        request body map[string]interface{} true "需要更新的字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /plots/{id} [put]
func (c *PlotController) UpdatePlot() {
	idUint, ok := parseUintParam(c.Ctx, "id", "地块ID")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)
	plot, err := plotService.UpdatePlot(idUint, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPlotNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, plot)
}

// DeletePlot 删除地块
// @Summary      删除地块
// @Description  删除指定地块，地块下仍有住户时拒绝删除
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        id path int true "地块ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /plots/{id} [delete]
func (c *PlotController) DeletePlot() {
	idUint, ok := parseUintParam(c.Ctx, "id", "地块ID")
	if !ok {
		return
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)
	if err := plotService.DeletePlot(idUint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPlotHasResidents, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "删除成功", nil)
}

// GetPlotResidents 获取地块下的住户
// @Summary      获取地块下的住户列表
// @Description  获取指定地块下登记的全部住户
// @Tags         Plot
// @Accept       json
// @Produce      json
// @Param        id path int true "地块ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /plots/{id}/residents [get]
func (c *PlotController) GetPlotResidents() {
	idUint, ok := parseUintParam(c.Ctx, "id", "地块ID")
	if !ok {
		return
	}

	plotService := c.Container.GetService("plot").(services.InterfacePlotService)
	residents, err := plotService.GetPlotResidents(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrPlotNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total": len(residents),
		"data":  residents,
	})
}
