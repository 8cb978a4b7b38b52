package resource

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var properties map[string]any
var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]+))?}`)

// init loads application properties from YAML. A missing properties file is
// not fatal here so packages importing resource stay usable in tests; main
// is expected to call Init explicitly when it needs a guaranteed load.
func init() {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = "configs/application.yml"
	}

	if _, err := os.Stat(path); err != nil {
		log.Printf("Properties file %s not found, skipping load: %v", path, err)
		return
	}

	if err := Init(path); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

// Init loads and resolves the properties file at the given path, merging the
// resolved values into viper so the typed getters below can see them.
func Init(filepath string) error {
	viper.SetConfigFile(filepath)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read properties file %s: %w", filepath, err)
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	parsePropertiesMap("", viper.AllSettings(), properties)

	if err := viper.MergeConfigMap(properties); err != nil {
		return fmt.Errorf("failed to merge resolved properties: %w", err)
	}
	return nil
}

// parsePropertiesMap reads the YAML tree recursively, flattening keys to
// dot notation and resolving ${ENV:default} placeholders in string values.
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolved := resolveEnvVariable(v); resolved != nil {
				result[fullKey] = resolved
			} else {
				result[fullKey] = v
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]interface{}:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable resolves a ${NAME:default} placeholder against the
// environment. Non-placeholder values return nil and are kept verbatim.
func resolveEnvVariable(value string) interface{} {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return nil
	}

	envName := matches[1]
	defaultValue := ""
	if len(matches) > 2 {
		defaultValue = matches[2]
	}

	if envValue, exists := os.LookupEnv(envName); exists {
		return envValue
	}
	return defaultValue
}

func Get(key string) any {
	return viper.Get(key)
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
