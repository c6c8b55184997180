package services

import (
	"errors"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InterfaceUserService 定义登录账号服务接口
type InterfaceUserService interface {
	CheckPassword(password, hash string) bool
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers(page, pageSize int, search string) ([]models.User, int64, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id uint) error
	ChangePassword(id uint, oldPassword, newPassword string) error
}

// UserService 提供登录账号相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的登录账号服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CheckPassword 验证密码是否匹配
func (s *UserService) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// 2 GetAllUsers 获取所有登录账号，支持分页和搜索
func (s *UserService) GetAllUsers(page, pageSize int, search string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.DB.Model(&models.User{})
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// 3 GetUserByID 根据ID获取登录账号
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账号不存在")
		}
		return nil, err
	}
	return &user, nil
}

// 4 GetUserByUsername 根据用户名获取登录账号
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账号不存在")
		}
		return nil, err
	}
	return &user, nil
}

// 5 CreateUser 创建新登录账号（密码哈希由模型钩子处理）
func (s *UserService) CreateUser(user *models.User) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已被使用")
	}

	// 验证邮箱唯一性
	if user.Email != "" {
		if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("邮箱已被使用")
		}
	}

	return s.DB.Create(user).Error
}

// 6 UpdateUser 更新登录账号信息
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已被使用")
		}
	}

	// 如果更新密码，先进行哈希处理
	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := models.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// 7 DeleteUser 删除登录账号
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	// 解除住户记录上的账号关联
	if err := s.DB.Model(&models.Resident{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
		return err
	}

	return s.DB.Delete(user).Error
}

// 8 ChangePassword 修改账号密码
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if !s.CheckPassword(oldPassword, user.Password) {
		return errors.New("原密码错误")
	}

	hashedPassword, err := models.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.DB.Model(user).Update("password", hashedPassword).Error
}
