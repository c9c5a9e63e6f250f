package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlzd/gotp"
)

func TestUserService_CheckUser(t *testing.T) {
	s := newTestServices(t)

	// default admin seeded at init time
	user := s.user.CheckUser("admin", "admin", "")
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)

	assert.Nil(t, s.user.CheckUser("admin", "wrong", ""))
	assert.Nil(t, s.user.CheckUser("ghost", "admin", ""))
}

func TestUserService_UpdateUser(t *testing.T) {
	s := newTestServices(t)

	first, err := s.user.GetFirstUser()
	require.NoError(t, err)

	require.NoError(t, s.user.UpdateUser(first.Id, "root", "hunter2"))

	assert.Nil(t, s.user.CheckUser("admin", "admin", ""))
	assert.NotNil(t, s.user.CheckUser("root", "hunter2", ""))
}

func TestUserService_TwoFactor(t *testing.T) {
	s := newTestServices(t)

	uri, err := s.user.EnableTwoFactor("admin")
	require.NoError(t, err)
	assert.Contains(t, uri, "otpauth://totp/")

	// without a valid code login must fail
	assert.Nil(t, s.user.CheckUser("admin", "admin", ""))
	assert.Nil(t, s.user.CheckUser("admin", "admin", "000000"))

	token, err := s.setting.GetTwoFactorToken()
	require.NoError(t, err)
	code := gotp.NewDefaultTOTP(token).Now()
	assert.NotNil(t, s.user.CheckUser("admin", "admin", code))

	require.NoError(t, s.user.DisableTwoFactor())
	assert.NotNil(t, s.user.CheckUser("admin", "admin", ""))
}
