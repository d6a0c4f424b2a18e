package configs

import (
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	LogLevel        string
	OWMAPIKey       string
}

var Env *EnvConfig

func init() {
	Env = Load()
}

// Load reads the process environment into an EnvConfig.
func Load() *EnvConfig {
	v := viper.New()
	v.AutomaticEnv()

	return &EnvConfig{
		ApplicationName: getStringOrDefault(v, "APPLICATION_NAME", "go-owm"),
		LogLevel:        getStringOrDefault(v, "LOG_LEVEL", "info"),
		OWMAPIKey:       v.GetString("OWM_API_KEY"),
	}
}

func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
