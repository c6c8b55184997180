package controllers

import (
	"strconv"
	"time"

	"gated-community-http-service/internal/domain/services"
	"gated-community-http-service/internal/domain/services/container"
	"gated-community-http-service/internal/error/code"
	"gated-community-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	GetNotification()
	CreateNotification()
	GetMyFeed()
	MarkRead()
}

// NotificationController 处理通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// NotificationRequest 表示创建通知请求
type NotificationRequest struct {
	Title         string `json:"title" binding:"required" example:"停水通知"`
	Content       string `json:"content" binding:"required" example:"明日9:00-12:00紫荆街片区停水检修"`
	Priority      string `json:"priority" binding:"omitempty,oneof=high medium low" example:"medium"`
	RecipientType string `json:"recipient_type" binding:"required,oneof=all street plot individual" example:"street"`
	RecipientID   *uint  `json:"recipient_id" example:"10"` // all类型无需提供，其余类型必填
}

// feedCacheTTL 用户通知列表的Redis缓存时长
const feedCacheTTL = 30 * time.Second

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "getNotification":
			controller.GetNotification()
		case "createNotification":
			controller.CreateNotification()
		case "getMyFeed":
			controller.GetMyFeed()
		case "markRead":
			controller.MarkRead()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetNotifications 获取所有通知（管理端）
// @Summary      获取通知列表
// @Description  获取小区内所有已发布的通知，按创建时间倒序
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
func (c *NotificationController) GetNotifications() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, total, err := notificationService.GetAllNotifications(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取通知列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        notifications,
	})
}

// GetNotification 获取单个通知
// @Summary      获取通知详情
// @Description  根据ID获取特定通知的详细信息
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path int true "通知ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id} [get]
func (c *NotificationController) GetNotification() {
	idUint, ok := parseUintParam(c.Ctx, "id", "通知ID")
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notification, err := notificationService.GetNotificationByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrNotificationNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notification)
}

// CreateNotification 发布通知（管理端）
// @Summary      发布通知
// @Description  面向全小区、街道、地块或单个住户发布一条通知
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body NotificationRequest true "通知内容与接收目标"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [post]
func (c *NotificationController) CreateNotification() {
	var req NotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// 接收目标解析失败属于参数验证错误
	target, err := services.ParseRecipientTarget(req.RecipientType, req.RecipientID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrNotificationInvalidRecipient, err.Error(), nil)
		return
	}

	// 小区ID和发送者ID取自已验证的令牌，不信任请求体
	orgID := c.Ctx.GetUint("orgID")
	senderID := c.Ctx.GetUint("userID")

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notification, err := notificationService.CreateNotification(orgID, senderID, target, req.Title, req.Content, req.Priority)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "发布通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notification)
}

// GetMyFeed 获取当前用户可见的通知列表
// @Summary      获取我的通知
// @Description  根据当前用户在小区层级中的坐标返回其可见的通知，按创建时间倒序
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/my [get]
func (c *NotificationController) GetMyFeed() {
	// 身份坐标取自认证中间件写入的上下文
	orgID := c.Ctx.GetUint("orgID")
	userID := c.Ctx.GetUint("userID")
	plotID := c.Ctx.GetUint("plotID") // 管理员账号没有地块，取零值即可，地块分支自然不会命中

	// 先查Redis缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	if cached, err := redisService.GetUserFeed(userID); err == nil {
		response.Success(c.Ctx, gin.H{
			"total": len(cached),
			"data":  cached,
		})
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, err := notificationService.GetUserFeed(orgID, plotID, userID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取通知失败", nil)
		return
	}

	// 写入缓存，失败不影响响应
	_ = redisService.CacheUserFeed(userID, notifications, feedCacheTTL)

	// 没有匹配的通知是正常结果，返回空列表而不是错误
	response.Success(c.Ctx, gin.H{
		"total": len(notifications),
		"data":  notifications,
	})
}

// MarkRead 将通知标记为已读
// @Summary      标记通知已读
// @Description  将指定通知置为已读并记录已读时间，重复调用会刷新已读时间
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path int true "通知ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
func (c *NotificationController) MarkRead() {
	idUint, ok := parseUintParam(c.Ctx, "id", "通知ID")
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notification, err := notificationService.MarkNotificationRead(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrNotificationNotFound, err.Error(), nil)
		return
	}

	// 已读状态变化后让当前用户的缓存失效
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateUserFeed(c.Ctx.GetUint("userID"))

	response.Success(c.Ctx, notification)
}
