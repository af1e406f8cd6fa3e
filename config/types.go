package config

import "time"

type Config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Upload    upload    `yaml:"upload" mapstructure:"upload"`
	Sentinel  sentinel  `yaml:"sentinel" mapstructure:"sentinel"`
	Reconcile reconcile `yaml:"reconcile" mapstructure:"reconcile"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxRequestBody int      `yaml:"max_request_body" mapstructure:"max_request_body"`
	WorkerID       int64    `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterID   int64    `yaml:"datacenter_id" mapstructure:"datacenter_id"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type jwt struct {
	AccessSecret  string        `yaml:"access_secret" mapstructure:"access_secret"`
	AccessExpiry  time.Duration `yaml:"access_expiry" mapstructure:"access_expiry"`
	RefreshSecret string        `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	RefreshExpiry time.Duration `yaml:"refresh_expiry" mapstructure:"refresh_expiry"`
	SecureCookie  bool          `yaml:"secure_cookie" mapstructure:"secure_cookie"`
}

type jaeger struct {
	Enable      bool    `yaml:"enable"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

type upload struct {
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

type sentinel struct {
	UploadQPS float64 `yaml:"upload_qps" mapstructure:"upload_qps"`
}

type reconcile struct {
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
	SweepBatch    int           `yaml:"sweep_batch" mapstructure:"sweep_batch"`
	LockExpiry    time.Duration `yaml:"lock_expiry" mapstructure:"lock_expiry"`
}

// RabbitMqURL amqp连接串
func (c *Config) RabbitMqURL() string {
	return "amqp://" + c.RabbitMq.Username + ":" + c.RabbitMq.Password + "@" + c.RabbitMq.Addr + "/"
}
