// Package session issues and verifies the anonymous tokens that scope a
// shopper's cart. A session lives only as long as its token.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	contextKey   = "session"
	sessionClaim = "session_id"
)

// Token is what a shopper receives when starting a session.
type Token struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer signs session tokens with HS256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long an issued session stays valid.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue starts a new session with a random id.
func (i *Issuer) Issue() (Token, error) {
	id := uuid.NewString()
	exp := i.now().Add(i.ttl).UTC().Truncate(time.Second)

	claims := jwt.MapClaims{
		sessionClaim: id,
		"iat":        i.now().Unix(),
		"exp":        exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Token: signed, SessionID: id, ExpiresAt: exp}, nil
}

// Middleware rejects requests without a valid session bearer token.
func (i *Issuer) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    i.secret,
		SigningMethod: "HS256",
		ContextKey:    contextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// GetSessionIDFromCtx returns the session id of a verified token.
func GetSessionIDFromCtx(c *fiber.Ctx) (string, error) {
	tok, ok := c.Locals(contextKey).(*jwt.Token)
	if !ok || tok == nil {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims[sessionClaim].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

// WithSessionID stores an already-verified session on the request. Used by
// tests and by callers that authenticate sessions some other way.
func WithSessionID(c *fiber.Ctx, id string) {
	c.Locals(contextKey, &jwt.Token{Claims: jwt.MapClaims{sessionClaim: id}, Valid: true})
}
