package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var defaultPaths = []string{
	"../../config",
	"./config",
	"../config",
	".",
}

// Init 读取config.yml, 环境变量 VIDTUBE_<SECTION>_<KEY> 可覆盖文件中的值
// 返回的Config由main注入到各个组件, 之后不再访问viper
func Init(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	v.SetEnvPrefix("VIDTUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if len(paths) == 0 {
		paths = defaultPaths
	}
	for _, path := range paths {
		v.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config failed")
		}
		logrus.Warnf("config file not found, using defaults and environment: %v", err)
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	c := load(v)
	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		c.Mysql.Username, "***", c.Mysql.Addr, c.Mysql.Database)
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.max_request_body", 512*1024*1024)
	v.SetDefault("server.worker_id", 1)
	v.SetDefault("server.datacenter_id", 1)

	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.database", "videotube")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.max_idle_conns", 10)

	v.SetDefault("redis.addr", "127.0.0.1:6379")

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.bucket", "videotube")

	v.SetDefault("jwt.access_expiry", 24*time.Hour)
	v.SetDefault("jwt.refresh_expiry", 10*24*time.Hour)

	v.SetDefault("jaeger.service_name", "videotube")
	v.SetDefault("jaeger.agent_addr", "127.0.0.1:6831")
	v.SetDefault("jaeger.sample_rate", 1.0)

	v.SetDefault("upload.temp_dir", "./public/temp")
	v.SetDefault("sentinel.upload_qps", 20)

	v.SetDefault("reconcile.sweep_interval", 10*time.Minute)
	v.SetDefault("reconcile.sweep_batch", 500)
	v.SetDefault("reconcile.lock_expiry", 2*time.Minute)
}

// 手动从viper获取配置值，避免Unmarshal问题
func load(v *viper.Viper) *Config {
	c := new(Config)

	c.Server.Addr = v.GetString("server.addr")
	c.Server.AllowOrigins = v.GetStringSlice("server.allow_origins")
	c.Server.MaxRequestBody = v.GetInt("server.max_request_body")
	c.Server.WorkerID = v.GetInt64("server.worker_id")
	c.Server.DatacenterID = v.GetInt64("server.datacenter_id")
	c.Server.PprofAddr = v.GetString("server.pprof_addr")

	c.Mysql.Addr = v.GetString("mysql.addr")
	c.Mysql.Database = v.GetString("mysql.database")
	c.Mysql.Username = v.GetString("mysql.username")
	c.Mysql.Password = v.GetString("mysql.password")
	c.Mysql.Charset = v.GetString("mysql.charset")
	c.Mysql.MaxOpenConns = v.GetInt("mysql.max_open_conns")
	c.Mysql.MaxIdleConns = v.GetInt("mysql.max_idle_conns")
	c.Mysql.AutoMigrate = v.GetBool("mysql.auto_migrate")

	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")

	c.RabbitMq.Addr = v.GetString("rabbitmq.addr")
	c.RabbitMq.Username = v.GetString("rabbitmq.username")
	c.RabbitMq.Password = v.GetString("rabbitmq.password")

	c.Minio.Endpoint = v.GetString("minio.endpoint")
	c.Minio.AccessKey = v.GetString("minio.access_key")
	c.Minio.SecretKey = v.GetString("minio.secret_key")
	c.Minio.UseSSL = v.GetBool("minio.use_ssl")
	c.Minio.Bucket = v.GetString("minio.bucket")
	c.Minio.PublicURL = v.GetString("minio.public_url")

	c.Jwt.AccessSecret = v.GetString("jwt.access_secret")
	c.Jwt.AccessExpiry = v.GetDuration("jwt.access_expiry")
	c.Jwt.RefreshSecret = v.GetString("jwt.refresh_secret")
	c.Jwt.RefreshExpiry = v.GetDuration("jwt.refresh_expiry")
	c.Jwt.SecureCookie = v.GetBool("jwt.secure_cookie")

	c.Jaeger.Enable = v.GetBool("jaeger.enable")
	c.Jaeger.ServiceName = v.GetString("jaeger.service_name")
	c.Jaeger.AgentAddr = v.GetString("jaeger.agent_addr")
	c.Jaeger.SampleRate = v.GetFloat64("jaeger.sample_rate")

	c.Upload.TempDir = v.GetString("upload.temp_dir")
	c.Sentinel.UploadQPS = v.GetFloat64("sentinel.upload_qps")

	c.Reconcile.SweepInterval = v.GetDuration("reconcile.sweep_interval")
	c.Reconcile.SweepBatch = v.GetInt("reconcile.sweep_batch")
	c.Reconcile.LockExpiry = v.GetDuration("reconcile.lock_expiry")
	return c
}
