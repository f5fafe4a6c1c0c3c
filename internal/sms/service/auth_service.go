package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/config"
	"github.com/bitfantasy/nimo-sms/internal/middleware"
	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务，签发HS256 JWT
type AuthService struct {
	userRepo *repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{userRepo: userRepo, jwtCfg: jwtCfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 校验邮箱密码，返回访问令牌与用户信息
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 根据ID获取用户
func (s *AuthService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *AuthService) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	expire := s.jwtCfg.AccessTokenExpire
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	claims := middleware.JWTClaims{
		UserID: strconv.FormatUint(uint64(user.ID), 10),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// EnsureAdminUser 启动时确保存在管理员账号
func (s *AuthService) EnsureAdminUser(ctx context.Context, email, password string) error {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &entity.User{
		Name:         "System Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
	return s.userRepo.Create(ctx, admin)
}
