// Package auth issues and verifies the signed bearer credentials presented by
// admins: short-lived access tokens and longer-lived refresh tokens, both
// HS256 JWTs carrying a role claim and a unique id for revocation.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErr "github.com/staffdesk/api/pkg/errors"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	roleAdmin = "admin"
)

// Claims is the token payload: admin id as subject, fixed role, token type
// and a jti consulted against the revocation set.
type Claims struct {
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// AdminID returns the numeric admin identity carried in the subject.
func (c *Claims) AdminID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid token subject")
	}
	return uint(id), nil
}

// Issuer creates and verifies access/refresh token pairs.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    *RevocationSet
	now        func() time.Time
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration, revoked *RevocationSet) *Issuer {
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    revoked,
		now:        time.Now,
	}
}

// IssueAccess signs a short-lived access token for the admin.
func (i *Issuer) IssueAccess(adminID uint) (string, error) {
	return i.sign(adminID, TypeAccess, i.accessTTL)
}

// IssueRefresh signs a longer-lived refresh token for the admin.
func (i *Issuer) IssueRefresh(adminID uint) (string, error) {
	return i.sign(adminID, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) sign(adminID uint, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		Role:      roleAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(adminID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

// ParseAccess verifies an access token and its non-revocation.
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TypeAccess)
}

// ParseRefresh verifies a refresh token and its non-revocation.
func (i *Issuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TypeRefresh)
}

func (i *Issuer) parse(tokenStr, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid or expired token")
	}
	if claims.TokenType != wantType {
		return nil, appErr.New(appErr.CodeUnauthorized, "wrong token type")
	}
	if i.revoked.IsRevoked(claims.ID) {
		return nil, appErr.New(appErr.CodeUnauthorized, "token has been revoked")
	}
	return claims, nil
}

// Revoke invalidates the token id for the remainder of its lifetime.
func (i *Issuer) Revoke(jti string) {
	i.revoked.Revoke(jti)
}
