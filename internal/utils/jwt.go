package utils // package utils holds the gateway-to-server service token helpers

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// ServiceTokenIssuer is the iss claim the gateway puts on every token.
const ServiceTokenIssuer = "shareit-gateway"

// NewServiceToken signs an HS256 token vouching that the gateway validated
// a request for sharerID.  The subject carries the raw X-Sharer-User-Id
// value (empty when the header was absent).
func NewServiceToken(secret, sharerID string, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims := jwt.RegisteredClaims{
        Issuer:    ServiceTokenIssuer,
        Subject:   sharerID,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseServiceToken verifies the signature, expiry and issuer of a service
// token and returns its subject.
func ParseServiceToken(secret, raw string) (string, error) {
    claims := &jwt.RegisteredClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
        return []byte(secret), nil
    },
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithIssuer(ServiceTokenIssuer),
        jwt.WithExpirationRequired(),
    )
    if err != nil {
        return "", err
    }
    if !tok.Valid {
        return "", errors.New("invalid service token")
    }
    return claims.Subject, nil
}
