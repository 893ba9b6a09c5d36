package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	raw, err := svc.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Name)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
	require.Equal(t, "alice@example.com", claims.Subject)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestValidateExpired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Minute)

	raw, err := svc.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	require.ErrorIs(t, err, apperr.ErrExpiredToken)
}

func TestValidateTampered(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	raw, err := svc.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	// flip one byte in the payload
	tampered := []byte(raw)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = svc.Validate(string(tampered))
	require.ErrorIs(t, err, apperr.ErrMalformedToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewService([]byte("secret-one"), time.Hour)
	verifier := NewService([]byte("secret-two"), time.Hour)

	raw, err := issuer.Issue("alice", "alice@example.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.Validate(raw)
	require.ErrorIs(t, err, apperr.ErrMalformedToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	_, err := svc.Validate("not-a-token")
	require.ErrorIs(t, err, apperr.ErrMalformedToken)
}

func TestTokensDifferAcrossIssues(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	first, err := svc.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
