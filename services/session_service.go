package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

// SessionCredentials are issued when a table opens: a short PIN the staff
// hands to the party, and an opaque signed token embedded in the table's QR
// link for the customer ordering UI.
type SessionCredentials struct {
	Pin         string `json:"pin"`
	EncryptedID string `json:"encrypted_id"`
}

type sessionClaims struct {
	TableNumber int    `json:"table_number"`
	Pin         string `json:"pin"`
	jwt.RegisteredClaims
}

func sessionSecret() []byte {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "moomoo-dev-secret"
	}
	return []byte(secret)
}

// IssueSessionCredentials generates the PIN/token pair for an opening table.
func IssueSessionCredentials(tableNumber int) (*SessionCredentials, error) {
	pin, err := generatePin()
	if err != nil {
		return nil, err
	}

	claims := sessionClaims{
		TableNumber: tableNumber,
		Pin:         pin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(models.DefaultSessionLength)),
			Subject:   fmt.Sprintf("table-%d", tableNumber),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sessionSecret())
	if err != nil {
		return nil, err
	}

	return &SessionCredentials{Pin: pin, EncryptedID: signed}, nil
}

// VerifySessionToken checks a table token and returns the table number it
// was issued for.
func VerifySessionToken(encryptedID string) (int, error) {
	token, err := jwt.ParseWithClaims(encryptedID, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sessionSecret(), nil
	})
	if err != nil {
		return 0, utils.NewValidationError("invalid table session token")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return 0, utils.NewValidationError("invalid table session token")
	}
	return claims.TableNumber, nil
}

// generatePin returns a 6-digit numeric PIN.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
