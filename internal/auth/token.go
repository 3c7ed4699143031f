package auth

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for any token that fails verification: bad
// signature, wrong algorithm, malformed payload, missing subject or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a verified token asserts
type Claims struct {
	Subject   string    // User identifier
	ExpiresAt time.Time // Expiration instant
}

// TokenIssuer signs and verifies access tokens
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer for an HMAC algorithm name (HS256, HS384, HS512)
func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("auth: unsupported signing algorithm " + algorithm)
	}
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	return &TokenIssuer{secret: []byte(secret), method: method, ttl: ttl, now: time.Now}, nil
}

// TTL returns the default token lifetime
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a token for subject using the default lifetime
func (i *TokenIssuer) Issue(subject string) (string, error) {
	return i.IssueFor(subject, i.ttl)
}

// IssueFor creates a token for subject that expires after ttl
func (i *TokenIssuer) IssueFor(subject string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,                          // User identifier
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Expiration instant
		IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
	}
	token := jwt.NewWithClaims(i.method, claims) // Create token with claims
	return token.SignedString(i.secret)          // Sign the token with the secret
}

// Verify validates signature and expiration and returns the decoded claims.
// Every failure collapses to ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return &Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
