// Package config carga la configuración del bot desde variables de
// entorno y un archivo .env opcional.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config contiene todos los valores de configuración del bot
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string
	DevUserID  string

	// MongoDB
	MongoDBURL string
	DBName     string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string
	MQTTTopic    string

	// Web
	Port string

	// Entorno
	Environment string

	// Webhooks
	ErrorWebhook string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting reinicia la configuración global. Solo para tests.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

func loadConfig() {
	// Cargar .env si existe; su ausencia no es un error
	_ = godotenv.Load()

	cfg = &Config{
		BotToken:   getEnv("botToken", ""),
		DevGuildID: getEnv("devGuildId", ""),
		DevUserID:  getEnv("devUserId", ""),

		MongoDBURL: getEnv("mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "PancyGuard"),

		MQTTHost:     getEnv("MQTT_Host", "localhost"),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),
		MQTTTopic:    getEnv("MQTT_Topic", "pancyguard/moderation"),

		Port: getEnv("PORT", "3000"),

		Environment: getEnv("enviroment", "dev"),

		ErrorWebhook: getEnv("errorWebhook", ""),
	}
}

// Load inicializa la configuración desde el entorno
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get devuelve la configuración actual, cargándola si hace falta
func Get() *Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProd indica si el entorno es producción
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
