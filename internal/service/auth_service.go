package service

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
	"github.com/aleksacoach93b/wellness-monitor-sub000/pkg/auth"
)

// AuthService аутентифицирует единственного администратора по паролю.
// Учетных записей нет: пароль сверяется с bcrypt-хешем из конфигурации,
// успешный вход выдает JWT.
type AuthService struct {
	passwordHash string
	jwtService   *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(passwordHash string, jwtService *auth.JWTService) (*AuthService, error) {
	if passwordHash == "" {
		return nil, fmt.Errorf("admin password hash is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWT service is required")
	}
	return &AuthService{
		passwordHash: passwordHash,
		jwtService:   jwtService,
	}, nil
}

// Login проверяет пароль администратора и выдает токен доступа
func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		log.Printf("[AuthService] Неудачная попытка входа администратора")
		return "", fmt.Errorf("%w: invalid password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	log.Printf("[AuthService] Администратор вошел в систему")
	return token, nil
}
