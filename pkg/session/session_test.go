package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("recepcao@hospital.local")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "recepcao@hospital.local", email)
}

func TestManager_ExpiredTokenBehavesAsAbsent(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue("recepcao@hospital.local")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_MalformedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestManager_WrongSecretRejected(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	token, err := issuer.Issue("recepcao@hospital.local")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_DefaultTTL(t *testing.T) {
	m := NewManager("test-secret", 0)
	assert.Equal(t, DefaultTTL, m.TTL())
}
