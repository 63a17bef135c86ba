package sessiontoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "intake/pkg/domain-errors"
)

func TestRoundTrip(t *testing.T) {
	svc := New("test-signing-key", time.Hour)
	sessionID := uuid.New()

	token, err := svc.Generate(sessionID)
	require.NoError(t, err)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := New("test-signing-key", -time.Minute)

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := New("key-one", time.Hour).Generate(uuid.New())
	require.NoError(t, err)

	_, err = New("key-two", time.Hour).Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := New("test-signing-key", time.Hour).Validate("not.a.token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	// A token asserting "none" must not pass as unsigned-but-valid.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: uuid.NewString()})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("test-signing-key", time.Hour).Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidateRejectsMalformedSessionID(t *testing.T) {
	svc := New("test-signing-key", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(svc.signingKey)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
