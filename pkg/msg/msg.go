package msg

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const DefaultMessagesPath = "configs/messages.yml"

var (
	mu       sync.RWMutex
	messages = map[string]string{}
)

// Init loads the message catalogue from the YAML file at filepath.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read messages %s: %w", filepath, err)
	}

	loaded := make(map[string]string)
	parseMessageMap("", v.AllSettings(), loaded)

	mu.Lock()
	messages = loaded
	mu.Unlock()
	return nil
}

// InitFromEnv loads the file named by MESSAGES_FILE_PATH, or DefaultMessagesPath.
func InitFromEnv() error {
	path, ok := os.LookupEnv("MESSAGES_FILE_PATH")
	if !ok {
		path = DefaultMessagesPath
	}
	return Init(path)
}

// parseMessageMap flattens nested YAML keys into dotted message keys.
func parseMessageMap(prefix string, data map[string]any, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			parseMessageMap(fullKey, v, result)
		}
	}
}

// GetMessage returns the message for key with {0}, {1}, ... replaced by args.
// Errors and Stringers use their text, scalars use fmt, anything else is JSON encoded.
func GetMessage(key string, args ...any) string {
	mu.RLock()
	msg, exists := messages[key]
	mu.RUnlock()
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		msg = strings.ReplaceAll(msg, "{"+strconv.Itoa(i)+"}", formatArg(arg))
	}
	return msg
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.TypeOf(arg).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(arg)
	}

	if encoded, err := json.Marshal(arg); err == nil {
		return string(encoded)
	}
	return fmt.Sprintf("%v", arg)
}
