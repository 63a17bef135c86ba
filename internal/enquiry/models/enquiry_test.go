package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "intake/pkg/domain-errors"
)

func TestParseActivityType(t *testing.T) {
	activity, err := ParseActivityType("CRYPTO_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, ActivityCryptoToken, activity)

	_, err = ParseActivityType("crypto_token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "enum values are case sensitive")

	_, err = ParseActivityType("")
	assert.Error(t, err)
}

func TestParseEntityType(t *testing.T) {
	entity, err := ParseEntityType("OTHER_JURISDICTION")
	require.NoError(t, err)
	assert.Equal(t, EntityOtherJurisdiction, entity)

	_, err = ParseEntityType("LLC")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestTeamForActivity(t *testing.T) {
	cases := []struct {
		activity ActivityType
		team     AssignedTeam
	}{
		{ActivityFinancialServices, TeamAuthorisation},
		{ActivityDNFBP, TeamDNFBPRegistration},
		{ActivityRegisteredAuditor, TeamAuditRegistration},
		{ActivityCryptoToken, TeamCryptoInnovation},
		{ActivityCryptoTokenRecognition, TeamCryptoInnovation},
	}
	for _, tc := range cases {
		t.Run(string(tc.activity), func(t *testing.T) {
			assert.Equal(t, tc.team, TeamForActivity(tc.activity))
		})
	}

	assert.Empty(t, TeamForActivity(ActivityType("UNKNOWN")))
}
