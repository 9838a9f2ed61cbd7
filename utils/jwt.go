package utils

import (
	"errors"
	"os"
	"time"

	"quickmechanic/config"

	"github.com/golang-jwt/jwt"
)

// Claims are the identity fields this service reads from a marketplace token.
type Claims struct {
	Subject  string
	UserType string
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "quickmechanic-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token for subject with the given user type.
// Tokens are normally issued by the marketplace backend; this is used by tests and tooling.
func GenerateToken(subject, userType string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":       subject,
		"user_type": userType,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates tokenString and returns its subject and user type.
func ExtractClaims(tokenString string) (*Claims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	userType, _ := claims["user_type"].(string)

	return &Claims{Subject: sub, UserType: userType}, nil
}
