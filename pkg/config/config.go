package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica si se deben exponer detalles de depuración (stack en errores).
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// MongoConfig configuración de MongoDB.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration // conexión y ping inicial
}

// JWTConfig configuración de JWT. Access y refresh se firman con secretos distintos.
type JWTConfig struct {
	Secret            string
	RefreshSecret     string
	Expiration        int // minutos
	RefreshExpiration int // minutos
	Issuer            string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host               string
	Port               int
	APIPrefix          string
	CORSOrigin         string
	LoginRatePerMinute int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché opcional del listado de categorías. Addr vacío = deshabilitado.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// StorageConfig destino de las imágenes subidas.
type StorageConfig struct {
	Driver    string // local | s3
	LocalRoot string
	BaseURL   string
	S3        S3Config
}

// S3Config bucket compatible con S3 (AWS, MinIO, R2).
type S3Config struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	URL      string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := getInt(v, "HTTP_PORT", 0)
	if port == 0 {
		port = getInt(v, "PORT", 5001)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", getString(v, "NODE_ENV", "development")),
			Name:     getString(v, "APP_NAME", "catalogo-admin-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", ""),
			Database: getString(v, "MONGO_DATABASE", "product_admin"),
			Timeout:  time.Duration(getInt(v, "MONGO_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:            getString(v, "JWT_SECRET", ""),
			RefreshSecret:     getString(v, "JWT_REFRESH_SECRET", ""),
			Expiration:        getInt(v, "JWT_EXPIRATION_MINUTES", 15),
			RefreshExpiration: getInt(v, "JWT_REFRESH_EXPIRATION_MINUTES", 7*24*60),
			Issuer:            getString(v, "JWT_ISSUER", "catalogo-admin-api"),
		},
		HTTP: HTTPConfig{
			Host:               getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:               port,
			APIPrefix:          normalizePrefix(getString(v, "API_PREFIX", "/api/v1")),
			CORSOrigin:         getString(v, "CORS_ORIGIN", "*"),
			LoginRatePerMinute: getInt(v, "LOGIN_RATE_PER_MINUTE", 20),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Storage: StorageConfig{
			Driver:    getString(v, "STORAGE_DRIVER", "local"),
			LocalRoot: getString(v, "STORAGE_LOCAL_ROOT", "uploads"),
			BaseURL:   getString(v, "STORAGE_URL", "/uploads"),
			S3: S3Config{
				Bucket:   getString(v, "S3_BUCKET", ""),
				Region:   getString(v, "S3_REGION", "us-east-1"),
				Key:      getString(v, "S3_KEY", ""),
				Secret:   getString(v, "S3_SECRET", ""),
				Endpoint: getString(v, "S3_ENDPOINT", ""),
				URL:      getString(v, "S3_URL", ""),
			},
		},
	}

	return cfg, nil
}

// Validate verifica las variables obligatorias. Sin ellas el proceso no debe arrancar.
func (c *Config) Validate() error {
	var missing []string
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.JWT.RefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if c.Mongo.URI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan variables de entorno requeridas: %s", strings.Join(missing, ", "))
	}
	if c.JWT.Secret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET y JWT_REFRESH_SECRET deben ser distintos")
	}
	return nil
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
