package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// Server
	AppPort     string `yaml:"APP_PORT"`
	JWTSecret   string `yaml:"JWT_SECRET"`
	GuestUserID string `yaml:"GUEST_USER_ID"`
	LogLevel    string `yaml:"LOG_LEVEL"`
	LogFormat   string `yaml:"LOG_FORMAT"`

	// Language model providers
	LLMProvider               string `yaml:"LLM_PROVIDER"`
	AzureOpenAIEndpoint       string `yaml:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIAPIKey         string `yaml:"AZURE_OPENAI_API_KEY"`
	AzureOpenAIDeploymentName string `yaml:"AZURE_OPENAI_DEPLOYMENT_NAME"`
	OpenAIAPIKey              string `yaml:"OPENAI_API_KEY"`
	OpenAIBaseURL             string `yaml:"OPENAI_BASE_URL"`
	OpenAIModel               string `yaml:"OPENAI_MODEL"`

	// CLI client
	APIBaseURL string `yaml:"API_BASE_URL"`
	APIToken   string `yaml:"API_TOKEN"`
}

var config Config

// LoadConfig reads config.yaml from the working directory.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

// LoadConfigFile reads path into the process configuration. A missing file
// is not fatal; environment variables still apply through GetConfig.
func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	var parsed Config
	if err := yaml.Unmarshal(file, &parsed); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
	config = parsed
}

// GetConfig returns the value for key, preferring the environment over the
// YAML file.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	v := fromFile(key)
	if v == "" {
		return defaults[key]
	}
	return v
}

var defaults = map[string]string{
	"DB_DRIVER":    "postgres",
	"DB_PATH":      "ginraidee.db",
	"APP_PORT":     "8080",
	"LOG_LEVEL":    "info",
	"LOG_FORMAT":   "json",
	"LLM_PROVIDER": "azure",
	"OPENAI_MODEL": "gpt-4o-mini",
	"API_BASE_URL": "http://localhost:8080",
}

func fromFile(key string) string {
	switch key {
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "APP_PORT":
		return config.AppPort
	case "JWT_SECRET":
		return config.JWTSecret
	case "GUEST_USER_ID":
		return config.GuestUserID
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "LLM_PROVIDER":
		return config.LLMProvider
	case "AZURE_OPENAI_ENDPOINT":
		return config.AzureOpenAIEndpoint
	case "AZURE_OPENAI_API_KEY":
		return config.AzureOpenAIAPIKey
	case "AZURE_OPENAI_DEPLOYMENT_NAME":
		return config.AzureOpenAIDeploymentName
	case "OPENAI_API_KEY":
		return config.OpenAIAPIKey
	case "OPENAI_BASE_URL":
		return config.OpenAIBaseURL
	case "OPENAI_MODEL":
		return config.OpenAIModel
	case "API_BASE_URL":
		return config.APIBaseURL
	case "API_TOKEN":
		return config.APIToken
	default:
		return ""
	}
}
