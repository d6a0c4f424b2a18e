package resource

import (
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const DefaultPropertiesPath = "configs/application.yml"

var (
	mu         sync.RWMutex
	properties = viper.New()
	loadedPath string
	envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)
)

// Init loads application properties from the YAML file at filepath. String values of
// the form ${ENV_NAME:default} are resolved against the environment.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)
	for key, value := range resolved {
		v.Set(key, value)
	}

	mu.Lock()
	properties = v
	loadedPath = filepath
	mu.Unlock()
	return nil
}

// InitFromEnv loads the file named by PROPERTIES_FILE_PATH, or DefaultPropertiesPath.
func InitFromEnv() error {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = DefaultPropertiesPath
	}
	return Init(path)
}

// parsePropertiesMap flattens the YAML tree into dotted keys, resolving placeholders.
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable expands ${NAME} and ${NAME:default}; other strings are returned as-is.
func resolveEnvVariable(value string) any {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func get() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	return properties
}

func GetString(key string) string {
	return get().GetString(key)
}

// GetStringOrDefault returns defaultValue when key is unset or empty.
func GetStringOrDefault(key, defaultValue string) string {
	if value := get().GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return get().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return get().GetDuration(key)
}

func GetInt(key string) int {
	return get().GetInt(key)
}

func GetStringSlice(key string) []string {
	return get().GetStringSlice(key)
}
