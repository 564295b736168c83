package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// The token is parsed, never verified: the remote authority has already
// decided whether it is valid by the time we get here. Do not add signature
// checks at this layer.
var unverified = jwt.NewParser(jwt.WithoutClaimsValidation())

func extractSubject(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := unverified.ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
