// Package session keeps the logged-in username across requests.
//
// Two stores are available. CookieStore signs the username into the cookie
// itself (HS256 JWT). RedisStore puts an opaque token in the cookie and the
// username in Redis. Either way a cookie that cannot be verified or has
// expired reads as "no session".
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultCookieName = "qa_session"

type Store interface {
	// Get returns the session username, or "" when there is no usable
	// session. Errors are reserved for backend failures.
	Get(c *gin.Context) (string, error)
	Set(c *gin.Context, username string) error
	Clear(c *gin.Context) error
}

type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (o CookieOptions) withDefaults() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	return o
}

func (o CookieOptions) write(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(o.Name, value, maxAge, "/", "", o.Secure, true)
}

func (o CookieOptions) expire(c *gin.Context) {
	o.write(c, "", -1)
}
