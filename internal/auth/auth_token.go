package auth

import (
	"encoding/base64"
	"os"
	"strings"
	"time"

	autherrors "github.com/zaincode21/Truck-management-backend-sub000/internal/auth/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
)

// Legacy tokens predate the JWT rollout: base64("kind:id:extra") where kind is
// the role. They are still issued by the old mobile build, so the boundary
// accepts both forms and normalizes them into one Principal.

var legacyKinds = map[string]bool{
	"driver":  true,
	"turnboy": true,
	"admin":   true,
	"views":   true,
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func GenerateToken(userID, role, employeeID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     userID,
		"role":        role,
		"employee_id": employeeID,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// DecodePrincipal accepts either a signed JWT or a legacy base64 token and
// returns the normalized principal. Raw tokens never travel past this point.
func DecodePrincipal(tokenString string) (contextutil.Principal, error) {
	if p, err := decodeJWT(tokenString); err == nil {
		return p, nil
	} else if err == autherrors.ErrTokenExpired {
		return contextutil.Principal{}, err
	}

	return decodeLegacy(tokenString)
}

func decodeJWT(tokenString string) (contextutil.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return contextutil.Principal{}, autherrors.ErrTokenExpired
		}
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	employeeID, _ := claims["employee_id"].(string)
	if userID == "" || role == "" {
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	return contextutil.Principal{
		UserID:     userID,
		Role:       role,
		EmployeeID: employeeID,
	}, nil
}

func decodeLegacy(tokenString string) (contextutil.Principal, error) {
	raw, err := base64.StdEncoding.DecodeString(tokenString)
	if err != nil {
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) < 2 {
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	kind, id := parts[0], parts[1]
	if !legacyKinds[kind] || id == "" {
		return contextutil.Principal{}, autherrors.ErrInvalidToken
	}

	p := contextutil.Principal{
		UserID: id,
		Role:   kind,
	}
	// Legacy driver/turnboy tokens carry the employee id directly.
	if kind == "driver" || kind == "turnboy" {
		p.EmployeeID = id
	}

	return p, nil
}
