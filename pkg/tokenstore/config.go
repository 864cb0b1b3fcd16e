package tokenstore

import "time"

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selects and configures a Store.
type Config struct {
	// Driver is one of file, redis or memory. The file driver keeps a login across
	// processes without extra infrastructure; memory lives only as long as the process.
	Driver string `env:"TOKEN_STORE" envDefault:"file"`
	// FilePath is the token file used by the file driver. Empty means DefaultFilePath.
	FilePath string `env:"TOKEN_STORE_PATH"`
	Redis    RedisConfig
}

// RedisConfig describes the Redis connection used by RedisStore.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"bookshelf:"`
}
