package services

import (
	"errors"
	"fmt"
	"time"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(username, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token          string      `json:"token"`
	UserID         uint        `json:"user_id"`
	Role           string      `json:"role"`
	Username       string      `json:"username"`
	OrganizationID uint        `json:"organization_id"`
	PlotID         *uint       `json:"plot_id,omitempty"`
	ResidentID     *uint       `json:"resident_id,omitempty"`
	CreatedAt      interface{} `json:"created_at"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构。
// 小区/地块/住户坐标随令牌下发，后续请求的身份上下文一律取自
// 已验证的令牌声明，不信任客户端提交的字段。
type JWTClaims struct {
	UserID         uint   `json:"user_id"`
	Role           string `json:"role"`
	OrganizationID uint   `json:"org_id"`
	PlotID         *uint  `json:"plot_id,omitempty"`     // 关联的地块ID，管理员账号可以为空
	ResidentID     *uint  `json:"resident_id,omitempty"` // 关联的住户ID，管理员账号可以为空
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "gated-community-http-service",
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID:         user.ID,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		PlotID:         user.PlotID,
		ResidentID:     user.ResidentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}

	// 将map claims转换为JWTClaims结构
	jwtClaims := &JWTClaims{}

	// 提取用户ID
	if userID, ok := claims["user_id"].(float64); ok {
		jwtClaims.UserID = uint(userID)
	}

	// 提取角色
	if role, ok := claims["role"].(string); ok {
		jwtClaims.Role = role
	}

	// 提取小区ID
	if orgID, ok := claims["org_id"].(float64); ok {
		jwtClaims.OrganizationID = uint(orgID)
	}

	// 提取地块ID（如果存在）
	if plotID, ok := claims["plot_id"].(float64); ok {
		pid := uint(plotID)
		jwtClaims.PlotID = &pid
	}

	// 提取住户ID（如果存在）
	if residentID, ok := claims["resident_id"].(float64); ok {
		rid := uint(residentID)
		jwtClaims.ResidentID = &rid
	}

	return jwtClaims, nil
}

// Login 验证用户名密码并签发令牌
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账号不存在")
		}
		return nil, err
	}

	if user.Status != "active" {
		return nil, errors.New("账号已被停用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("账号密码错误")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:          token,
		UserID:         user.ID,
		Role:           user.Role,
		Username:       user.Username,
		OrganizationID: user.OrganizationID,
		PlotID:         user.PlotID,
		ResidentID:     user.ResidentID,
		CreatedAt:      user.CreatedAt,
	}, nil
}
