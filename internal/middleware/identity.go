package middleware

import (
	"backend/internal/app/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const currentUserKey = "currentUser"

// Identity reads the ambient user identity from the X-User-ID header set
// by the auth gateway. Authentication itself happens upstream; this core
// only stamps ownership fields.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw != "" {
			if _, err := uuid.Parse(raw); err == nil {
				c.Set(currentUserKey, user.Current{
					ID:          raw,
					DisplayName: c.GetHeader("X-User-Name"),
				})
			}
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by Identity, if any.
func CurrentUser(c *gin.Context) (user.Current, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return user.Current{}, false
	}
	current, ok := v.(user.Current)
	return current, ok && current.ID != ""
}
