package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Supabase SupabaseConfig
	Sync     SyncConfig
	Log      LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// SupabaseConfig acceso al proyecto Supabase (PostgREST + GoTrue).
type SupabaseConfig struct {
	URL       string // ej. https://abcdefg.supabase.co
	AnonKey   string // API key anónima del proyecto
	JWTSecret string // opcional: permite verificar la firma del access token localmente
}

// Validate comprueba los campos imprescindibles.
func (c SupabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: SUPABASE_URL vacío")
	}
	if c.AnonKey == "" {
		return fmt.Errorf("config: SUPABASE_ANON_KEY vacío")
	}
	return nil
}

// SyncConfig parámetros de la capa de sincronización.
type SyncConfig struct {
	// ReconcileDelay espera antes del refetch de reconciliación que sigue a
	// un create (campos derivados del servidor que el insert no devuelve).
	ReconcileDelay time.Duration
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// SUPABASE_URL, SUPABASE_ANON_KEY, SYNC_RECONCILE_DELAY_MS, etc.
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
			Name: getString(v, "APP_NAME", "lavanderia-sync"),
		},
		Supabase: SupabaseConfig{
			URL:       getString(v, "SUPABASE_URL", ""),
			AnonKey:   getString(v, "SUPABASE_ANON_KEY", ""),
			JWTSecret: getString(v, "SUPABASE_JWT_SECRET", ""),
		},
		Sync: SyncConfig{
			ReconcileDelay: time.Duration(getInt(v, "SYNC_RECONCILE_DELAY_MS", 500)) * time.Millisecond,
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
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
