package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
mysql:
  addr: db:3306
  database: tube
  username: root
  password: secret
jwt:
  access_expiry: 15m
minio:
  bucket: media
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

	c, err := Init(dir)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", c.Mysql.Addr)
	assert.Equal(t, "tube", c.Mysql.Database)
	assert.Equal(t, 15*time.Minute, c.Jwt.AccessExpiry)
	assert.Equal(t, "media", c.Minio.Bucket)
	// 未配置的字段使用默认值
	assert.Equal(t, "utf8mb4", c.Mysql.Charset)
	assert.Equal(t, 240*time.Hour, c.Jwt.RefreshExpiry)
}

func TestInitMissingFileUsesDefaults(t *testing.T) {
	c, err := Init(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", c.Server.Addr)
	assert.Equal(t, 500, c.Reconcile.SweepBatch)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VIDTUBE_MYSQL_DATABASE", "from_env")
	c, err := Init(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from_env", c.Mysql.Database)
}

func TestRabbitMqURL(t *testing.T) {
	c := &Config{}
	c.RabbitMq.Addr = "mq:5672"
	c.RabbitMq.Username = "u"
	c.RabbitMq.Password = "p"
	assert.Equal(t, "amqp://u:p@mq:5672/", c.RabbitMqURL())
}
