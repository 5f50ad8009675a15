package controller

import (
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parrillasur/reservabot/internal/adapter/api/dto"
	"github.com/parrillasur/reservabot/pkg/jwt"
)

const tokenDuration = 24 * time.Hour

// AuthController emite los tokens del panel administrativo
type AuthController struct{}

// NewAuthController crea una nueva instancia de AuthController
func NewAuthController() *AuthController {
	return &AuthController{}
}

// Token emite un token JWT a partir de la clave de API administrativa
// @Summary Emite un token administrativo
// @Description Verifica la clave de API y retorna un token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "Clave de API"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var request dto.TokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "requisición inválida", err.Error()))
		return
	}

	expected := os.Getenv("ADMIN_API_KEY")
	if expected == "" {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "autenticación no configurada", ""))
		return
	}

	if subtle.ConstantTimeCompare([]byte(request.APIKey), []byte(expected)) != 1 {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "clave de API inválida", ""))
		return
	}

	token, err := jwt.GenerateToken("admin", "admin", tokenDuration)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "error al generar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(tokenDuration).Unix(),
	})
}
