package jwt

import (
	"testing"

	"company-oa-system/config"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Init()

	payload := Payload{
		UserID:       42,
		EmployeeID:   "E1001",
		RoleID:       1,
		DepartmentID: 3,
	}

	token := CreateToken(payload)
	require.NotEmpty(t, token)

	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.Equal(t, payload.UserID, claims.UserID)
	require.Equal(t, payload.EmployeeID, claims.EmployeeID)
	require.Equal(t, payload.RoleID, claims.RoleID)
	require.Equal(t, payload.DepartmentID, claims.DepartmentID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Init()

	_, ok := ParseToken("not-a-token")
	require.False(t, ok)

	token := CreateToken(Payload{EmployeeID: "E1001"})
	_, ok = ParseToken(token + "x")
	require.False(t, ok)
}
