package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

// AdminSubject is the only subject ever issued; there is a single shared admin account.
const AdminSubject = "admin"

// signs a token for the admin account, valid for ttl.
func GenerateJWT(secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": AdminSubject,
		"iat": now.Unix(),
		"exp": expires.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	return signed, expires, err
}

// verifies the JWT and returns the admin it was issued to.
func parseToken(tokenString, secret string) (*model.Admin, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub != AdminSubject {
		return nil, errors.New("invalid sub claim")
	}

	admin := &model.Admin{Subject: sub}
	if iat, ok := claims["iat"].(float64); ok {
		admin.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		admin.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return admin, nil
}

// checks "Authorization: Bearer <token>", verifies it, and sets "currentAdmin" in context.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		admin, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(currentAdminKey, admin)
		c.Next()
	}
}
