package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStripsSecrets(t *testing.T) {
	u := &model.User{
		ID:           42,
		UserName:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice",
		Password:     "$2a$10$hash",
		RefreshToken: "refresh.jwt.value",
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
	}
	b, err := json.Marshal(Project(u))
	require.NoError(t, err)
	s := string(b)
	for _, banned := range []string{"password", "Password", "refreshToken", "$2a$10$hash", "refresh.jwt.value"} {
		assert.False(t, strings.Contains(s, banned), "leaked %q in %s", banned, s)
	}
	assert.Contains(t, s, `"userName":"alice"`)
}

func TestProjectIdempotent(t *testing.T) {
	u := &model.User{ID: 1, UserName: "bob", Email: "b@x.io", FullName: "Bob", Password: "secret"}
	once := Project(u)
	stripped := *u
	stripped.Password, stripped.RefreshToken = "", ""
	assert.Equal(t, once, Project(&stripped))
	assert.Nil(t, Project(nil))
}

func TestOwnerRowProfile(t *testing.T) {
	var dangling OwnerRow
	assert.Nil(t, dangling.Profile())

	u := &model.User{ID: 3, UserName: "carol", FullName: "Carol", Avatar: "http://a/c.png"}
	p := OwnerOf(u).Profile()
	require.NotNil(t, p)
	assert.Equal(t, OwnerProfile{UserName: "carol", FullName: "Carol", Avatar: "http://a/c.png"}, *p)
}

func TestVideoRowViewOwnerIsSingleValue(t *testing.T) {
	row := VideoRow{Video: model.Video{ID: 9, Title: "t"}, OwnerRow: OwnerOf(&model.User{ID: 1, UserName: "a"})}
	b, err := json.Marshal(row.View())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"owner":{"userName":"a"`)

	row.OwnerRow = OwnerRow{}
	b, err = json.Marshal(row.View())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"owner":null`)
}
