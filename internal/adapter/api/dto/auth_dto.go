package dto

// TokenRequest representa el pedido de un token administrativo
type TokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// TokenResponse representa la respuesta con el token emitido
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
