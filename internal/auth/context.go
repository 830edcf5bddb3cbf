package auth

import "github.com/gin-gonic/gin"

const (
	RoleClient = "client"
	RoleAdmin  = "admin"

	identityKey = "auth.identity"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	Subject string // client id, or the admin login
	Role    string
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// GetClientID returns the id of the authenticated client, or "" for
// anonymous callers and admins.
func GetClientID(c *gin.Context) string {
	id, ok := GetIdentity(c)
	if !ok || id.Role != RoleClient {
		return ""
	}
	return id.Subject
}
