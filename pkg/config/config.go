package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/timetable-core/internal/engine"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config governs process-wide behavior shared by the CLI and any future
// host: log shape, and the default Options a solve starts from unless an
// options file overrides them.
type Config struct {
	Env string
	Log LogConfig

	DefaultOptions engine.Options
	MetricsEnabled bool
	MetricsPort    int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads process environment (and an optional .env file) into a
// Config, applying the same defaults-then-override pattern used
// throughout the rest of the module's ambient stack.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("ENV"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		MetricsEnabled: v.GetBool("ENABLE_METRICS"),
		MetricsPort:    v.GetInt("METRICS_PORT"),
	}

	cfg.DefaultOptions = engine.Options{
		TimeLimitSeconds:    v.GetInt("SOLVE_TIME_LIMIT_SECONDS"),
		Strategy:            engine.Strategy(v.GetString("SOLVE_STRATEGY")),
		MaxConsecPerSubject: v.GetInt("SOLVE_MAX_CONSEC"),
		TabuTenure:          v.GetInt("SOLVE_TABU_TENURE"),
		TabuIterations:      v.GetInt("SOLVE_TABU_ITERATIONS"),
		SeedRatio:           v.GetFloat64("SOLVE_SEED_RATIO"),
		UseRestarts:         v.GetBool("SOLVE_USE_RESTARTS"),
		DisableLNS:          v.GetBool("SOLVE_DISABLE_LNS"),
		TeacherSpreadWeight: v.GetFloat64("SOLVE_TEACHER_SPREAD_WEIGHT"),
		TeacherEdgeWeight:   v.GetFloat64("SOLVE_TEACHER_EDGE_WEIGHT"),
		SAInitialTemp:       v.GetFloat64("SOLVE_SA_INITIAL_TEMP"),
		SACooling:           v.GetFloat64("SOLVE_SA_COOLING"),
		SAIterations:        v.GetInt("SOLVE_SA_ITERATIONS"),
		ALNSIterations:      v.GetInt("SOLVE_ALNS_ITERATIONS"),
		VNSIterations:       v.GetInt("SOLVE_VNS_ITERATIONS"),
	}.WithDefaults()

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", false)
	v.SetDefault("METRICS_PORT", 9090)

	v.SetDefault("SOLVE_TIME_LIMIT_SECONDS", 60)
	v.SetDefault("SOLVE_STRATEGY", "repair")
	v.SetDefault("SOLVE_MAX_CONSEC", 3)
	v.SetDefault("SOLVE_TABU_TENURE", 25)
	v.SetDefault("SOLVE_TABU_ITERATIONS", 800)
	v.SetDefault("SOLVE_SEED_RATIO", 0.15)
	v.SetDefault("SOLVE_USE_RESTARTS", true)
	v.SetDefault("SOLVE_DISABLE_LNS", false)
	v.SetDefault("SOLVE_TEACHER_SPREAD_WEIGHT", 1.0)
	v.SetDefault("SOLVE_TEACHER_EDGE_WEIGHT", 1.0)
	v.SetDefault("SOLVE_SA_INITIAL_TEMP", 1.0)
	v.SetDefault("SOLVE_SA_COOLING", 0.995)
	v.SetDefault("SOLVE_SA_ITERATIONS", 3000)
	v.SetDefault("SOLVE_ALNS_ITERATIONS", 300)
	v.SetDefault("SOLVE_VNS_ITERATIONS", 300)
}
