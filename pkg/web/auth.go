// Package web provides bearer-token authentication for the API.
package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is how long an issued dashboard token stays valid.
const tokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers malformed, mis-signed and expired tokens.
	ErrInvalidToken = errors.New("token inválido o expirado")
)

type apiClaims struct {
	jwt.RegisteredClaims
}

// generateToken issues an HS256 token for dashboard access.
func generateToken(secret string) (string, error) {
	now := time.Now()
	claims := &apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sdhsbot",
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateToken parses a bearer token and checks its signature and expiry.
func validateToken(tokenString, secret string) (*apiClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &apiClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*apiClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// tokenHandler exchanges the bot's own token for an API token.
// Only a caller that already knows the bot token gets one.
func tokenHandler(c *gin.Context) {
	cfg := config.Get()
	if cfg == nil || cfg.JWTSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Auth Unavailable",
			"message": "La autenticación no está configurada.",
		})
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Se requiere el campo 'token'.",
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.Token), []byte(cfg.BotToken)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Token de bot incorrecto.",
		})
		return
	}

	signed, err := generateToken(cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudo generar el token.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     signed,
		"expiresIn": int64(tokenTTL.Seconds()),
	})
}

// authMiddleware guards API routes with a Bearer token.
func authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Get()
		if cfg == nil || cfg.JWTSecret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Auth Unavailable",
				"message": "La autenticación no está configurada.",
			})
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Se requiere un token Bearer.",
			})
			return
		}

		claims, err := validateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": ErrInvalidToken.Error(),
			})
			return
		}

		c.Set("tokenID", claims.ID)
		c.Next()
	}
}
