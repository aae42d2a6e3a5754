package jwt

import (
	"time"

	"company-oa-system/config"

	"github.com/golang-jwt/jwt"
)

// Payload 写入令牌的用户信息
type Payload struct {
	UserID       uint   `json:"user_id"`
	EmployeeID   string `json:"employee_id"`
	RoleID       int    `json:"role_id"`
	DepartmentID uint   `json:"department_id"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// CreateToken 生成 JWT 令牌
func CreateToken(payload Payload) string {
	cfg := config.Get()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Unix() + cfg.JWT.AccessExpire,
			IssuedAt:  time.Now().Unix(),
			Issuer:    "company-oa-system",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.AccessSecret))
	if err != nil {
		return ""
	}
	return signed
}

// ParseToken 解析并校验 JWT 令牌
func ParseToken(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}
	return claims, true
}
