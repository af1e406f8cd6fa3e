package oss

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicID(t *testing.T) {
	tests := map[string]string{
		"http://localhost:9000/videotube/videos/6f1c.mp4":      "6f1c",
		"https://res.example.com/v1/image/upload/abc123.png?x": "abc123",
		"http://h/b/covers/noext":                              "noext",
		"":                                                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, PublicID(in), in)
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "upload.bin")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	Cleanup(p, filepath.Join(dir, "missing"), "")
	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestObjectName(t *testing.T) {
	m := &MinioHost{bucket: "videotube", publicURL: "http://localhost:9000"}
	name, ok := m.objectName("http://localhost:9000/videotube/avatars/a.png")
	assert.True(t, ok)
	assert.Equal(t, "avatars/a.png", name)

	_, ok = m.objectName("http://elsewhere/videotube/avatars/a.png")
	assert.False(t, ok)
	_, ok = m.objectName("http://localhost:9000/videotube/")
	assert.False(t, ok)
}
