// Package token implements the signed identity token used by the three
// services. Tokens are HS256 JWTs carrying the user id, email and role;
// issuing and verification share a single process-wide secret injected at
// startup. The codec is pure: the caller supplies the current time, so
// expiry behavior is fully deterministic under test.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrFirmaInvalida covers bad signatures, malformed tokens, and tokens
	// signed with anything other than an HMAC algorithm (including "none").
	ErrFirmaInvalida = errors.New("firma de token invalida")
	// ErrTokenExpirado means the signature checked out but exp is in the past.
	ErrTokenExpirado = errors.New("token expirado")
)

// Claims is the decoded payload of an identity token.
type Claims struct {
	Email string `json:"email"`
	Rol   string `json:"rol"`
	jwt.RegisteredClaims
}

// Codec issues and verifies identity tokens with a fixed secret and lifetime.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user. iat=now, exp=now+ttl.
func (c *Codec) Issue(subject uuid.UUID, email, rol string, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		Rol:   rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify parses and validates a token string against the shared secret.
// Returns ErrTokenExpirado when now is past exp; every other failure mode
// (tampered signature, garbage input, downgraded algorithm) collapses to
// ErrFirmaInvalida so callers cannot distinguish attack variants.
func (c *Codec) Verify(tokenStr string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpirado
		}
		return nil, ErrFirmaInvalida
	}
	if !tok.Valid {
		return nil, ErrFirmaInvalida
	}
	return claims, nil
}

// SubjectID parses the sub claim back into a user id.
func (cl *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(cl.Subject)
}
