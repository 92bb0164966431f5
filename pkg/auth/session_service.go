package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session credential.
// Clients never inspect its value; it is opaque outside this package.
const SessionCookieName = "__session"

// SessionService issues and verifies the opaque session credential.
// Verification is stateless: logout only clears the cookie client-side.
type SessionService struct {
	secretKey       []byte
	sessionLifespan time.Duration
}

type SessionClaims struct {
	OwnerID uuid.UUID `json:"owner_id"`
	jwt.RegisteredClaims
}

func NewSessionService(secretKey string, sessionLifespan time.Duration) *SessionService {
	return &SessionService{
		secretKey:       []byte(secretKey),
		sessionLifespan: sessionLifespan,
	}
}

func (s *SessionService) Lifespan() time.Duration {
	return s.sessionLifespan
}

func (s *SessionService) IssueCredential(ownerID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		ownerID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionLifespan)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   ownerID.String(),
			Issuer:    "portfolio-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign session credential: %w", err)
	}

	return signedString, nil
}

// ResolveCredential fails closed: any parse, signature, or expiry problem
// is an error, never an anonymous success.
func (s *SessionService) ResolveCredential(credential string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(credential, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session credential: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("error when parsing session claims")
	}

	return claims.OwnerID, nil
}
