package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanmarcjones/bookshelf/pkg/config"
)

type TestConfigDefault struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
}

type TestConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type TestConfigSingleton struct {
	TestString string `env:"TEST_STRING_SINGLETON" envDefault:"default_value"`
}

type RequiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg TestConfigSuccess
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "test_value", cfg.TestString)
	assert.Equal(t, 100, cfg.TestInt)
	assert.False(t, cfg.TestBool)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	os.Unsetenv("TEST_BOOL_DEFAULT")

	var cfg TestConfigDefault
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "default_value", cfg.TestString)
	assert.Equal(t, 42, cfg.TestInt)
	assert.True(t, cfg.TestBool)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg RequiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "first_value")

	var first TestConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_STRING_SINGLETON", "second_value")

	var second TestConfigSingleton
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.TestString)

	fresh, err := config.Parse[TestConfigSingleton]()
	require.NoError(t, err)
	assert.Equal(t, "second_value", fresh.TestString)

	config.Reset()
	var third TestConfigSingleton
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second_value", third.TestString)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *TestConfigSuccess
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	config.Reset()

	var cfg RequiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestParse_App(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000/api")
	t.Setenv("AUTH_URL", "http://localhost:3000/auth")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	os.Unsetenv("AUTH_TOKEN_KEY")
	os.Unsetenv("LOG_LEVEL")

	app, err := config.Parse[config.App]()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", app.API.BaseURL)
	assert.Equal(t, 5*time.Second, app.API.Timeout)
	assert.Equal(t, "http://localhost:3000/auth", app.Auth.URL)
	assert.Equal(t, "__auth_provider_token__", app.Auth.TokenKey)
	assert.Equal(t, "info", app.Log.Level)
	assert.Equal(t, "redis", app.TokenStore.Driver)
	assert.Equal(t, "redis://cache:6379/1", app.TokenStore.Redis.ConnectionURL)
}

func TestParse_AppRequiresAPIURL(t *testing.T) {
	os.Unsetenv("API_URL")
	t.Setenv("AUTH_URL", "http://localhost:3000/auth")

	_, err := config.Parse[config.App]()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestParse_AppTokenStoreDefaultsToFile(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000/api")
	t.Setenv("AUTH_URL", "http://localhost:3000/auth")
	os.Unsetenv("TOKEN_STORE")
	os.Unsetenv("TOKEN_STORE_PATH")

	app, err := config.Parse[config.App]()
	require.NoError(t, err)
	assert.Equal(t, "file", app.TokenStore.Driver)
	assert.Empty(t, app.TokenStore.FilePath)
}
