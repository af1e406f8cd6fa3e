package jwt

import (
	"testing"
	"time"

	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *Issuer {
	c := &config.Config{}
	c.Jwt.AccessSecret = "access-secret"
	c.Jwt.AccessExpiry = time.Hour
	c.Jwt.RefreshSecret = "refresh-secret"
	c.Jwt.RefreshExpiry = 24 * time.Hour
	i, err := NewIssuer(c)
	require.NoError(t, err)
	return i
}

func TestIssueAndParse(t *testing.T) {
	i := newTestIssuer(t)
	pair, err := i.Issue(12345)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := i.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expire, time.Minute)

	claims, err = i.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	i := newTestIssuer(t)
	pair, err := i.Issue(1)
	require.NoError(t, err)

	_, err = i.ParseAccess(pair.RefreshToken)
	assert.True(t, errors.Is(err, errno.AuthenticationErr))
	_, err = i.ParseRefresh(pair.AccessToken)
	assert.True(t, errors.Is(err, errno.AuthenticationErr))
}

func TestParseGarbage(t *testing.T) {
	i := newTestIssuer(t)
	_, err := i.ParseAccess("")
	assert.True(t, errors.Is(err, errno.AuthenticationErr))
	_, err = i.ParseAccess("not.a.token")
	assert.True(t, errors.Is(err, errno.AuthenticationErr))
}

func TestEmptySecret(t *testing.T) {
	_, err := NewIssuer(&config.Config{})
	assert.Error(t, err)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	i := newTestIssuer(t)
	a, err := i.Issue(1)
	require.NoError(t, err)
	b, err := i.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, a.RefreshToken, b.RefreshToken)
	assert.NotEqual(t, a.AccessToken, b.AccessToken)
}
