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

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	GetCurrentUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
	ChangePassword()
}

// UserController 处理登录账号相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest 表示创建用户请求
type UserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"wangmin"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Email    string `json:"email" binding:"required,email" example:"wangmin@example.com"`
	Phone    string `json:"phone" binding:"omitempty" example:"13900001111"`
	Role     string `json:"role" binding:"omitempty,oneof=admin owner tenant" example:"owner"`
	PlotID   *uint  `json:"plot_id" example:"100"`
}

// ChangePasswordRequest 表示修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"secret123"`
	NewPassword string `json:"new_password" binding:"required,min=6" example:"secret456"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "getCurrentUser":
			controller.GetCurrentUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "changePassword":
			controller.ChangePassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetUsers 获取用户列表
// @Summary      获取用户列表
// @Description  分页获取登录账号，支持按用户名、邮箱或手机号搜索
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Param        search query string false "搜索关键字"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
func (c *UserController) GetUsers() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	search := c.Ctx.Query("search")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(page, pageSize, search)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取用户列表失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        users,
	})
}

// GetUser 获取单个用户
// @Summary      获取用户详情
// @Description  根据ID获取登录账号信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (c *UserController) GetUser() {
	idUint, ok := parseUintParam(c.Ctx, "id", "用户ID")
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(idUint)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// GetCurrentUser 获取当前登录用户
// @Summary      获取当前用户
// @Description  根据令牌返回当前登录账号的信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (c *UserController) GetCurrentUser() {
	userID := c.Ctx.GetUint("userID")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(userID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// CreateUser 创建用户
// @Summary      创建登录账号
// @Description  创建一个登录账号，用户名和邮箱全局唯一
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body UserRequest true "账号信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users [post]
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	user := models.User{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           req.Role,
		OrganizationID: c.Ctx.GetUint("orgID"),
		PlotID:         req.PlotID,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(&user); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// UpdateUser 更新用户
// @Summary      更新登录账号
// @Description  更新账号的邮箱、手机号、角色或状态
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID"
// @Param        request body map[string]interface{} true "需要更新的字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
func (c *UserController) UpdateUser() {
	idUint, ok := parseUintParam(c.Ctx, "id", "用户ID")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(idUint, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// DeleteUser 删除用户
// @Summary      删除登录账号
// @Description  删除账号，若有关联住户会先解除绑定
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (c *UserController) DeleteUser() {
	idUint, ok := parseUintParam(c.Ctx, "id", "用户ID")
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(idUint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserNotFound, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "删除成功", nil)
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Description  校验旧密码后为当前登录账号设置新密码
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "新旧密码"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/password [put]
func (c *UserController) ChangePassword() {
	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userID := c.Ctx.GetUint("userID")
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "密码修改成功", nil)
}
