package msg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var messages map[string]string

// init loads the message catalog from YAML. As with pkg/resource, a missing
// catalog is skipped rather than fatal so importing packages stay testable.
func init() {
	path, ok := os.LookupEnv("MESSAGES_FILE_PATH")
	if !ok {
		path = "configs/messages.yml"
	}

	if _, err := os.Stat(path); err != nil {
		log.Printf("Messages file %s not found, skipping load: %v", path, err)
		return
	}

	if err := Init(path); err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
}

// Init loads the message catalog at the given path.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read messages file %s: %w", filepath, err)
	}

	if messages == nil {
		messages = make(map[string]string)
	}
	parseMessageMap("", v.AllSettings(), messages)
	return nil
}

// parseMessageMap reads the YAML tree recursively, flattening keys to dot notation.
func parseMessageMap(prefix string, data map[string]interface{}, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]interface{}:
			parseMessageMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// GetMessage returns the message for a key with {0}, {1}, ... placeholders
// replaced by the given arguments. Non-primitive arguments render as JSON.
func GetMessage(key string, args ...interface{}) string {
	message, exists := messages[key]
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		placeholder := fmt.Sprintf("{%d}", i)
		message = strings.ReplaceAll(message, placeholder, argToString(arg))
	}

	return message
}

// argToString converts a placeholder argument to its string form.
func argToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
