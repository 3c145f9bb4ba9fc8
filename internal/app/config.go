package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/corey/apistub/internal/domain/stub"
)

const (
	configName = ".apistub"
	configType = "yaml"
	envPrefix  = "APISTUB"
)

// Defaults.
const (
	DefaultSourceRoot = "target/classes/mojarra"
	DefaultDestRoot   = "src/main/java"
	DefaultExtension  = ".java"
	DefaultIndent     = "    "
	DefaultLogLevel   = "info"
	DefaultCacheFile  = ".apistub/cache.db" // used by a bare --cache
)

var (
	DefaultInclude   = []string{"javax"}
	DefaultSkipFiles = []string{"package-info.java", "module-info.java"}
)

// Config is the effective apistub configuration.
// Field tags use mapstructure for viper unmarshalling and yaml for printing.
type Config struct {
	SourceRoot  string   `mapstructure:"source_root" yaml:"source_root"`
	DestRoot    string   `mapstructure:"dest_root" yaml:"dest_root"`
	Include     []string `mapstructure:"include" yaml:"include"`
	Extension   string   `mapstructure:"extension" yaml:"extension"`
	SkipFiles   []string `mapstructure:"skip_files" yaml:"skip_files"`
	DenyImports []string `mapstructure:"deny_imports" yaml:"deny_imports"`
	Workers     int      `mapstructure:"workers" yaml:"workers"`
	KeepGoing   bool     `mapstructure:"keep_going" yaml:"keep_going"`
	Indent      string   `mapstructure:"indent" yaml:"indent"`
	GrammarDir  string   `mapstructure:"grammar_dir" yaml:"grammar_dir"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level"`
	CacheFile   string   `mapstructure:"cache_file" yaml:"cache_file"` // empty disables the cache
}

// flagKeys maps CLI flag names to configuration keys. Only flags that are
// registered on the given flag set and explicitly changed override lower
// layers.
var flagKeys = map[string]string{
	"source":      "source_root",
	"dest":        "dest_root",
	"include":     "include",
	"workers":     "workers",
	"keep-going":  "keep_going",
	"grammar-dir": "grammar_dir",
	"log-level":   "log_level",
	"cache":       "cache_file",
}

// LoadConfig loads configuration from defaults, the config file, APISTUB_*
// environment variables and flags, in increasing precedence.
// If configPath is empty, .apistub.yaml is searched in CWD and $HOME.
// A missing config file is not an error.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		SourceRoot:  DefaultSourceRoot,
		DestRoot:    DefaultDestRoot,
		Include:     append([]string(nil), DefaultInclude...),
		Extension:   DefaultExtension,
		SkipFiles:   append([]string(nil), DefaultSkipFiles...),
		DenyImports: append([]string(nil), stub.DefaultDenyImports...),
		Workers:     runtime.NumCPU(),
		Indent:      DefaultIndent,
		LogLevel:    DefaultLogLevel,
	}
}

func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("source_root", d.SourceRoot)
	v.SetDefault("dest_root", d.DestRoot)
	v.SetDefault("include", d.Include)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("skip_files", d.SkipFiles)
	v.SetDefault("deny_imports", d.DenyImports)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("keep_going", d.KeepGoing)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("grammar_dir", d.GrammarDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cache_file", d.CacheFile)
}

// Validation errors.
var (
	ErrEmptySourceRoot = errors.New("source_root must not be empty")
	ErrEmptyDestRoot   = errors.New("dest_root must not be empty")
	ErrSameRoots       = errors.New("source_root and dest_root must differ")
	ErrInvalidWorkers  = errors.New("workers must be at least 1")
	ErrInvalidExt      = errors.New("extension must start with a dot")
	ErrInvalidIndent   = errors.New("indent must be spaces or tabs")
	ErrInvalidLogLevel = errors.New("log_level must be debug, info, warn or error")
)

// Validate checks the configuration for values no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.SourceRoot == "" {
		errs = append(errs, ErrEmptySourceRoot)
	}
	if c.DestRoot == "" {
		errs = append(errs, ErrEmptyDestRoot)
	}
	if c.SourceRoot != "" && c.SourceRoot == c.DestRoot {
		errs = append(errs, ErrSameRoots)
	}
	if c.Workers < 1 {
		errs = append(errs, ErrInvalidWorkers)
	}
	if !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, ErrInvalidExt)
	}
	if c.Indent == "" || strings.Trim(c.Indent, " \t") != "" {
		errs = append(errs, ErrInvalidIndent)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, ErrInvalidLogLevel
	}
	return lvl, nil
}
