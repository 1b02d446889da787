package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
)

// AuthHandler обрабатывает вход администратора
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginRequest — запрос входа администратора
type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login проверяет пароль администратора и возвращает токен доступа
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
