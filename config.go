package celest

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/spf13/viper"
)

// ConfigEnv names the environment variable holding the directory of conf.toml.
const ConfigEnv = "CELEST_CONFIG"

var (
	cfgOnce sync.Once
	config  Config
)

// Config is the process wide configuration of celest.
type Config struct {
	Solver    SolverConfig
	LogLevel  string
	OutputDir string
}

func defaultConfig() Config {
	return Config{Solver: DefaultSolverConfig, LogLevel: "warn", OutputDir: "."}
}

// LoadConfig reads conf.toml from the provided directory.
// Keys which are absent keep their default value.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	def := defaultConfig()
	v.SetDefault("solver.tolerance", def.Solver.Tolerance)
	v.SetDefault("solver.max_iterations", def.Solver.MaxIterations)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("general.output_path", def.OutputDir)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s/conf.toml: %w", dir, err)
	}
	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (Config, error) {
	conf := Config{
		Solver: SolverConfig{
			Tolerance:     v.GetFloat64("solver.tolerance"),
			MaxIterations: v.GetInt("solver.max_iterations"),
		},
		LogLevel:  v.GetString("log.level"),
		OutputDir: v.GetString("general.output_path"),
	}
	if err := conf.Solver.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// celestConfig returns the configuration from $CELEST_CONFIG, loaded once.
// Defaults are used when the variable is unset or the file is unusable.
func celestConfig() Config {
	cfgOnce.Do(func() {
		config = defaultConfig()
		confPath := os.Getenv(ConfigEnv)
		if confPath == "" {
			return
		}
		conf, err := LoadConfig(confPath)
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				level.Warn(logger).Log("subsys", "config", "path", confPath, "message", "conf.toml not found, using defaults")
			} else {
				level.Error(logger).Log("subsys", "config", "path", confPath, "err", err)
			}
			return
		}
		config = conf
		SetLogger(NewLogger(os.Stderr, conf.LogLevel))
	})
	return config
}

// Solver returns the anomaly solver configuration of this process.
func Solver() SolverConfig {
	return celestConfig().Solver
}

// CurrentConfig returns the configuration of this process, loaded from $CELEST_CONFIG.
func CurrentConfig() Config {
	return celestConfig()
}
