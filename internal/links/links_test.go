package links

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_LinkAndVerify(t *testing.T) {
	s, err := NewSigner("secret", "https://bot.example.com/", time.Hour)
	require.NoError(t, err)

	link, err := s.Link("uploads/documents/a.pdf")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://bot.example.com/files/"))

	token := strings.TrimPrefix(link, "https://bot.example.com/files/")
	ref, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uploads/documents/a.pdf", ref)
}

func TestSigner_RejectsForeignAndExpired(t *testing.T) {
	s, err := NewSigner("secret-A", "", time.Minute)
	require.NoError(t, err)
	other, err := NewSigner("secret-B", "", time.Minute)
	require.NoError(t, err)

	token, err := s.Sign("s3://catalog/documents/a.pdf")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsOtherAlgorithms(t *testing.T) {
	s, err := NewSigner("secret", "", time.Minute)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "uploads/documents/a.pdf",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSigner_Validation(t *testing.T) {
	_, err := NewSigner("", "https://x", time.Hour)
	assert.Error(t, err)
	_, err = NewSigner("s", "https://x", 0)
	assert.Error(t, err)

	s, err := NewSigner("s", "https://x", time.Hour)
	require.NoError(t, err)
	_, err = s.Sign("")
	assert.Error(t, err)
}
