package service

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/jwt"
	"VideoTube.com/pkg/oss/osstest"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users map[int64]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*model.User)}
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserName == user.UserName || u.Email == user.Email {
			return errno.UserAlreadyExist
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUser(ctx context.Context, userId int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return nil, errno.UserNotExistErr
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindUser(ctx context.Context, userName, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserName == userName || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errno.UserNotExistErr
}

func (m *memStore) UserExists(ctx context.Context, userName, email string) (bool, error) {
	_, err := m.FindUser(ctx, userName, email)
	return err == nil, nil
}

func (m *memStore) update(userId int64, fn func(u *model.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return errno.UserNotExistErr
	}
	fn(u)
	return nil
}

func (m *memStore) UpdateAccount(ctx context.Context, userId int64, fullName, email string) error {
	return m.update(userId, func(u *model.User) { u.FullName, u.Email = fullName, email })
}

func (m *memStore) UpdatePassword(ctx context.Context, userId int64, hashed string) error {
	return m.update(userId, func(u *model.User) { u.Password = hashed })
}

func (m *memStore) UpdateAvatar(ctx context.Context, userId int64, url string) error {
	return m.update(userId, func(u *model.User) { u.Avatar = url })
}

func (m *memStore) UpdateCoverImage(ctx context.Context, userId int64, url string) error {
	return m.update(userId, func(u *model.User) { u.CoverImage = url })
}

func (m *memStore) SetRefreshToken(ctx context.Context, userId int64, token string) error {
	return m.update(userId, func(u *model.User) { u.RefreshToken = token })
}

func (m *memStore) RotateRefreshToken(ctx context.Context, userId int64, old, next string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok || u.RefreshToken != old {
		return false, nil
	}
	u.RefreshToken = next
	return true, nil
}

func (m *memStore) ChannelProfile(ctx context.Context, userName string, viewer int64) (*view.ChannelRow, error) {
	u, err := m.FindUser(ctx, userName, "")
	if err != nil {
		return nil, errno.NotFoundErr
	}
	return &view.ChannelRow{User: *u}, nil
}

func (m *memStore) WatchHistory(ctx context.Context, userId int64, q view.PageQuery) ([]view.VideoRow, int64, error) {
	return nil, 0, nil
}

type memDenylist struct {
	denied map[string]time.Duration
}

func (d *memDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	d.denied[token] = ttl
	return nil
}

type fixture struct {
	svc      *UserService
	store    *memStore
	media    *osstest.Host
	denylist *memDenylist
	dir      string
}

func newFixture(t *testing.T) *fixture {
	c := &config.Config{}
	c.Jwt.AccessSecret = "a"
	c.Jwt.AccessExpiry = time.Hour
	c.Jwt.RefreshSecret = "r"
	c.Jwt.RefreshExpiry = 24 * time.Hour
	issuer, err := jwt.NewIssuer(c)
	require.NoError(t, err)

	f := &fixture{
		store:    newMemStore(),
		media:    osstest.New(),
		denylist: &memDenylist{denied: make(map[string]time.Duration)},
		dir:      t.TempDir(),
	}
	f.svc = NewUserService(f.store, f.media, issuer, f.denylist)
	return f
}

func (f *fixture) file(t *testing.T) string {
	p, err := osstest.TempFile(f.dir, "img")
	require.NoError(t, err)
	return p
}

func (f *fixture) register(t *testing.T, name string) *view.PublicUser {
	u, err := f.svc.Register(context.Background(), &RegisterParam{
		UserName:   name,
		FullName:   "Full " + name,
		Email:      name + "@example.com",
		Password:   "secret123",
		AvatarPath: f.file(t),
	})
	require.NoError(t, err)
	return u
}

func assertGone(t *testing.T, paths ...string) {
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "temp file %s should be removed", p)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	avatar, cover := f.file(t), f.file(t)
	u, err := f.svc.Register(context.Background(), &RegisterParam{
		UserName:       "  Alice ",
		FullName:       "Alice A",
		Email:          "Alice@Example.com",
		Password:       "secret123",
		AvatarPath:     avatar,
		CoverImagePath: cover,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.Avatar)
	assert.NotEmpty(t, u.CoverImage)
	assertGone(t, avatar, cover)

	stored, err := f.store.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	avatar := f.file(t)
	_, err := f.svc.Register(context.Background(), &RegisterParam{UserName: "bob", FullName: " ", Email: "b@x.com", Password: "secret123", AvatarPath: avatar})
	assert.True(t, errors.Is(err, errno.ParamErr))
	assertGone(t, avatar)

	_, err = f.svc.Register(context.Background(), &RegisterParam{UserName: "bob", FullName: "Bob", Email: "b@x.com", Password: "secret123"})
	assert.True(t, errors.Is(err, errno.ParamErr))
	assert.Empty(t, f.media.Uploaded)
}

func TestRegisterPasswordTooLong(t *testing.T) {
	f := newFixture(t)
	avatar, cover := f.file(t), f.file(t)
	_, err := f.svc.Register(context.Background(), &RegisterParam{
		UserName: "henry", FullName: "H", Email: "h@example.com", Password: strings.Repeat("p", 80),
		AvatarPath: avatar, CoverImagePath: cover,
	})
	assert.True(t, errors.Is(err, errno.ParamErr))
	assert.Empty(t, f.media.Uploaded)
	assert.Empty(t, f.media.Live())
	assert.Empty(t, f.store.users)
	assertGone(t, avatar, cover)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "carol")
	avatar := f.file(t)
	_, err := f.svc.Register(context.Background(), &RegisterParam{
		UserName: "CAROL", FullName: "C", Email: "other@example.com", Password: "secret123", AvatarPath: avatar,
	})
	assert.True(t, errors.Is(err, errno.ConflictErr))
	assert.Len(t, f.media.Uploaded, 1)
	assertGone(t, avatar)
}

func TestRegisterCoverUploadFailure(t *testing.T) {
	f := newFixture(t)
	f.media.FailOn("covers")
	avatar, cover := f.file(t), f.file(t)
	_, err := f.svc.Register(context.Background(), &RegisterParam{
		UserName: "dave", FullName: "D", Email: "d@example.com", Password: "secret123",
		AvatarPath: avatar, CoverImagePath: cover,
	})
	assert.True(t, errors.Is(err, errno.DependencyErr))
	assert.Empty(t, f.store.users)
	assert.Empty(t, f.media.Live())
	assertGone(t, avatar, cover)
}

func TestLoginRefreshLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "erin")

	_, err := f.svc.Login(ctx, "erin", "", "wrong-password")
	assert.True(t, errors.Is(err, errno.AuthenticationErr))

	res, err := f.svc.Login(ctx, "", "ERIN@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	pair, err := f.svc.RefreshAccessToken(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.Tokens.RefreshToken, pair.RefreshToken)

	// 已轮换的refresh token不能再次使用
	_, err = f.svc.RefreshAccessToken(ctx, res.Tokens.RefreshToken)
	assert.True(t, errors.Is(err, errno.AuthenticationErr))

	require.NoError(t, f.svc.Logout(ctx, u.ID, pair.AccessToken, pair.AccessExpire))
	assert.Contains(t, f.denylist.denied, pair.AccessToken)
	_, err = f.svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, errno.AuthenticationErr))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "frank")

	err := f.svc.ChangePassword(ctx, u.ID, "nope", "newsecret")
	assert.True(t, errors.Is(err, errno.ParamErr))
	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, "secret123", "newsecret"))

	_, err = f.svc.Login(ctx, "frank", "", "newsecret")
	assert.NoError(t, err)

	err = f.svc.ChangePassword(ctx, u.ID, "newsecret", strings.Repeat("p", 80))
	assert.True(t, errors.Is(err, errno.ParamErr))
	_, err = f.svc.Login(ctx, "frank", "", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateAvatarReplacesAfterUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "grace")
	oldAvatar := u.Avatar

	p := f.file(t)
	updated, err := f.svc.UpdateAvatar(ctx, u.ID, p)
	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, updated.Avatar)
	assert.Equal(t, []string{oldAvatar}, f.media.Deleted)
	assertGone(t, p)

	f.media.FailOn("avatars")
	_, err = f.svc.UpdateAvatar(ctx, u.ID, f.file(t))
	assert.True(t, errors.Is(err, errno.DependencyErr))
	current, err := f.svc.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Avatar, current.Avatar)
}

func TestUpdateAccount(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "heidi")
	got, err := f.svc.UpdateAccount(context.Background(), u.ID, "Heidi H", "HH@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Heidi H", got.FullName)
	assert.Equal(t, "hh@example.com", got.Email)

	_, err = f.svc.UpdateAccount(context.Background(), u.ID, "", "x@y.z")
	assert.True(t, errors.Is(err, errno.ParamErr))
}

func TestChannelProfile(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ivan")
	p, err := f.svc.ChannelProfile(context.Background(), " IVAN ", 0)
	require.NoError(t, err)
	assert.Equal(t, "ivan", p.UserName)
	assert.False(t, p.IsSubscribed)

	_, err = f.svc.ChannelProfile(context.Background(), "", 0)
	assert.True(t, errors.Is(err, errno.ParamErr))
}
