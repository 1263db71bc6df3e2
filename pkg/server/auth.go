package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

var (
	errUnauthorized         = errors.New("server: unauthorized")
	errMissingAuthorization = fmt.Errorf("%w: missing authorization header", errUnauthorized)
	errBadAuthorization     = fmt.Errorf("%w: bad authorization header", errUnauthorized)
)

const bearerPrefix = "Bearer "

// subjectKey is where bearerAuth leaves the token subject on the context.
const subjectKey = "subject"

// Auth validates HS256 bearer tokens signed with a shared secret.
type Auth struct {
	Secret []byte
	Now    func() time.Time

	parser *jwt.Parser
}

// NewAuth returns an Auth for secret.
func NewAuth(secret []byte) *Auth {
	return &Auth{
		Secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (a *Auth) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func bearerToken(header string) (string, error) {
	h := strings.TrimSpace(header)
	if h == "" {
		return "", errMissingAuthorization
	}
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", errBadAuthorization
	}
	tok := strings.TrimSpace(h[len(bearerPrefix):])
	if strings.Count(tok, ".") != 2 {
		return "", errBadAuthorization
	}
	return tok, nil
}

// Subject validates the Authorization header and returns the token's sub.
func (a *Auth) Subject(header string) (string, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return "", err
	}
	tok, err := a.parser.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnauthorized, err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid claims", errUnauthorized)
	}
	if !claims.VerifyExpiresAt(a.now().Unix(), true) {
		return "", fmt.Errorf("%w: token expired", errUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("%w: missing sub", errUnauthorized)
	}
	return sub, nil
}

// Sign issues a token for sub valid for ttl. `planner serve --print-token`
// uses it to hand a token to local clients.
func (a *Auth) Sign(sub string, ttl time.Duration) (string, error) {
	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return tok.SignedString(a.Secret)
}

func bearerAuth(a *Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, err := a.Subject(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(subjectKey, sub)
			return next(c)
		}
	}
}
