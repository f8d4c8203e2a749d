// Package token decodes the bearer tokens issued by the remote API.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// Claims is the payload shape of an issued token.
type Claims struct {
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// Decoder extracts TokenClaims. With an empty secret the signature is not
// checked; otherwise the token must be HS256 signed with the secret.
type Decoder struct {
	secret []byte
	parser *jwt.Parser
}

// NewDecoder returns a Decoder. Expiry is decoded but never enforced here.
func NewDecoder(secret string) *Decoder {
	d := &Decoder{parser: jwt.NewParser(jwt.WithoutClaimsValidation())}
	if secret != "" {
		d.secret = []byte(secret)
		d.parser = jwt.NewParser(
			jwt.WithoutClaimsValidation(),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
	}
	return d
}

// Decode parses raw and returns its claims.
func (d *Decoder) Decode(raw string) (domain.TokenClaims, error) {
	claims := &Claims{}

	var err error
	if d.secret == nil {
		_, _, err = d.parser.ParseUnverified(raw, claims)
	} else {
		var tkn *jwt.Token
		tkn, err = d.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
			return d.secret, nil
		})
		if err == nil && !tkn.Valid {
			err = jwt.ErrTokenSignatureInvalid
		}
	}
	if err != nil {
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	out := domain.TokenClaims{
		UserType: domain.UserType(claims.UserType),
		Subject:  claims.Subject,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
