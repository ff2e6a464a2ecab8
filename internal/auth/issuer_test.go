package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/staffdesk/api/pkg/errors"
)

var testSecret = []byte("unit-test-secret-key")

func newTestIssuer() *Issuer {
	return NewIssuer(testSecret, time.Hour, 30*24*time.Hour, NewRevocationSet())
}

func TestIssueAndParseAccess(t *testing.T) {
	iss := newTestIssuer()

	tok, err := iss.IssueAccess(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := iss.ParseAccess(tok)
	require.NoError(t, err)

	id, err := claims.AdminID()
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
	require.Equal(t, "admin", claims.Role)
	require.NotEmpty(t, claims.ID)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	iss := newTestIssuer()

	refresh, err := iss.IssueRefresh(1)
	require.NoError(t, err)

	_, err = iss.ParseAccess(refresh)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))

	access, err := iss.IssueAccess(1)
	require.NoError(t, err)
	_, err = iss.ParseRefresh(access)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestExpiredTokenRejected(t *testing.T) {
	iss := newTestIssuer()
	tok, err := iss.IssueAccess(1)
	require.NoError(t, err)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = iss.ParseAccess(tok)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestWrongSecretRejected(t *testing.T) {
	iss := newTestIssuer()
	tok, err := iss.IssueAccess(1)
	require.NoError(t, err)

	other := NewIssuer([]byte("a-different-secret!!"), time.Hour, time.Hour, NewRevocationSet())
	_, err = other.ParseAccess(tok)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestRevocation(t *testing.T) {
	iss := newTestIssuer()
	tok, err := iss.IssueAccess(7)
	require.NoError(t, err)

	claims, err := iss.ParseAccess(tok)
	require.NoError(t, err)

	iss.Revoke(claims.ID)
	_, err = iss.ParseAccess(tok)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestRevocationSetConcurrency(t *testing.T) {
	s := NewRevocationSet()
	var wg sync.WaitGroup
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range ids {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			s.Revoke(id)
		}(id)
		go func(id string) {
			defer wg.Done()
			_ = s.IsRevoked(id)
		}(id)
	}
	wg.Wait()
	for _, id := range ids {
		require.True(t, s.IsRevoked(id))
	}
	require.False(t, s.IsRevoked("never-revoked"))
}
