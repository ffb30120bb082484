package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Gen    GeneratorConfig
	DB     DBConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// GeneratorConfig parámetros de la corrida de generación sintética.
// Seed fija garantiza un dataset reproducible corrida a corrida.
type GeneratorConfig struct {
	Seed          int64
	StartDate     string // YYYY-MM-DD, inicio del horizonte de simulación
	EndDate       string // YYYY-MM-DD, fin del horizonte de simulación
	NumCustomers  int    // candidatos objetivo; el muestreo por rechazo puede producir menos
	BaseUsageRate int    // eventos de uso base por mes antes de multiplicadores
	OutputDir     string // destino de los CSV
	Sink          string // "csv" (siempre) o "postgres" (CSV + carga a DB)
}

// Horizon devuelve el rango de simulación parseado.
func (c GeneratorConfig) Horizon() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("GEN_START_DATE inválida %q: %w", c.StartDate, err)
	}
	end, err = time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("GEN_END_DATE inválida %q: %w", c.EndDate, err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("rango de simulación vacío: %s..%s", c.StartDate, c.EndDate)
	}
	return start, end, nil
}

// ReportConfig configuración del reporte ejecutivo PDF.
type ReportConfig struct {
	Path string // vacío = no generar PDF
}

// DBConfig configuración de PostgreSQL (sink opcional y API de consulta).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, GEN_SEED, DB_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "saasmetrics"),
		},
		Gen: GeneratorConfig{
			Seed:          int64(getInt(v, "GEN_SEED", 42)),
			StartDate:     getString(v, "GEN_START_DATE", "2022-01-01"),
			EndDate:       getString(v, "GEN_END_DATE", "2024-12-31"),
			NumCustomers:  getInt(v, "GEN_NUM_CUSTOMERS", 2000),
			BaseUsageRate: getInt(v, "GEN_BASE_USAGE_RATE", 50),
			OutputDir:     getString(v, "GEN_OUTPUT_DIR", "./data"),
			Sink:          getString(v, "GEN_SINK", "csv"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "saasmetrics"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Report: ReportConfig{
			Path: getString(v, "REPORT_PATH", ""),
		},
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
