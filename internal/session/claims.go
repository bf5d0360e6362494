package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the subset of Keycloak-style claims we read. The token is
// parsed without verification: the client never trusts it for
// authorization decisions, it only displays who the server said we are.
type tokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// identityFromToken derives the Identity for a fresh login. When the
// access token carries JWT claims they win; an opaque or unparsable token
// falls back to the username the user logged in with and the default role.
func identityFromToken(accessToken, username string) *Identity {
	fallback := &Identity{Username: username, Roles: []string{"user"}}

	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return fallback
	}
	id := &Identity{Username: claims.PreferredUsername, Roles: claims.RealmAccess.Roles}
	if id.Username == "" {
		id.Username = username
	}
	if len(id.Roles) == 0 {
		id.Roles = []string{"user"}
	}
	return id
}
