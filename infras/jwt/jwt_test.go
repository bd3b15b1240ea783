package jwt_test

import (
	"oec/config"
	"oec/infras/jwt"
	"oec/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "oec"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestService_TokenPairCarriesIdentity(t *testing.T) {
	svc := newService()
	identity := jwt.Identity{
		UserID:   "user-1",
		Email:    "admin@oec.et",
		Role:     constant.RoleAdmin,
		Building: constant.BuildingA,
	}

	pair, err := svc.GenerateTokenPair(identity)
	require.NoError(t, err)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.NotEmpty(t, claims.TokenID)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
}

func TestService_RefreshTokens(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair(jwt.Identity{UserID: "user-2", Email: "rep@company.et", Role: constant.RoleCompanyRepresentative, CompanyID: "company-9"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "company-9", claims.CompanyID)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
