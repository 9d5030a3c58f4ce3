package introspect

import "github.com/golang-jwt/jwt/v5"

// authenticator validates a bearer token against a shared HMAC secret. It
// does not interpret claims beyond signature and expiry validity — the
// introspection surface has no notion of per-user authorization, only
// "holds a valid token or not".
type authenticator struct {
	secret []byte
}

func newAuthenticator(secret string) *authenticator {
	return &authenticator{secret: []byte(secret)}
}

func (a *authenticator) valid(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	return err == nil && token.Valid
}
