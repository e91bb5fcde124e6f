package session

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

type CookieStore struct {
	secret []byte
	opts   CookieOptions
}

func NewCookieStore(secret string, opts CookieOptions) *CookieStore {
	return &CookieStore{secret: []byte(secret), opts: opts.withDefaults()}
}

func (s *CookieStore) Get(c *gin.Context) (string, error) {
	raw, err := c.Cookie(s.opts.Name)
	if err != nil || raw == "" {
		return "", nil
	}

	parsed := &claims{}
	token, err := jwt.ParseWithClaims(raw, parsed, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", nil
	}
	return parsed.User, nil
}

func (s *CookieStore) Set(c *gin.Context, username string) error {
	value, err := s.sign(username, time.Now())
	if err != nil {
		return err
	}
	s.opts.write(c, value, int(s.opts.TTL.Seconds()))
	return nil
}

func (s *CookieStore) Clear(c *gin.Context) error {
	s.opts.expire(c)
	return nil
}

func (s *CookieStore) sign(username string, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.opts.TTL)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}
