package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aquanqa/aquanqa-cli/internal/attendance"
	"github.com/aquanqa/aquanqa-cli/internal/roster"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig          `yaml:"log" mapstructure:"log"`
	Validation ValidateConfig     `yaml:"validate" mapstructure:"validate"`
	Input      InputConfig        `yaml:"input" mapstructure:"input"`
	Attendance attendance.Columns `yaml:"attendance" mapstructure:"attendance"`
	Roster     roster.Columns     `yaml:"roster" mapstructure:"roster"`
}

// ValidateConfig tunes the CECO/activity validator.
type ValidateConfig struct {
	Workers          int      `yaml:"workers" mapstructure:"workers"`
	CodeSampleSize   int      `yaml:"code_sample_size" mapstructure:"code_sample_size"`
	CodeMinScore     float64  `yaml:"code_min_score" mapstructure:"code_min_score"`
	OmitKeywords     []string `yaml:"omit_keywords" mapstructure:"omit_keywords"`
	OmitCodePrefixes []string `yaml:"omit_code_prefixes" mapstructure:"omit_code_prefixes"`
	HideNeutral      bool     `yaml:"hide_neutral" mapstructure:"hide_neutral"`
}

// OmissionRules returns the configured omission rules.
func (c ValidateConfig) OmissionRules() validate.OmissionRules {
	return validate.OmissionRules{Keywords: c.OmitKeywords, CodePrefixes: c.OmitCodePrefixes}
}

// Options converts the section into aggregation options.
func (c ValidateConfig) Options() validate.Options {
	rules := c.OmissionRules()
	return validate.Options{
		Rules:   &rules,
		Workers: c.Workers,
		Infer:   validate.InferOptions{SampleSize: c.CodeSampleSize, MinScore: c.CodeMinScore},
	}
}

// InputConfig configures file loading.
type InputConfig struct {
	SheetIndex   int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	SkipRows     int    `yaml:"skip_rows" mapstructure:"skip_rows"`
	CSVDelimiter string `yaml:"csv_delimiter" mapstructure:"csv_delimiter"`
	CSVCharset   string `yaml:"csv_charset" mapstructure:"csv_charset"`
	CSVComment   string `yaml:"csv_comment" mapstructure:"csv_comment"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AQUANQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	rules := validate.DefaultOmissionRules()
	att := attendance.DefaultColumns()
	ros := roster.DefaultColumns()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("validate.workers", 4)
	v.SetDefault("validate.code_sample_size", 500)
	v.SetDefault("validate.code_min_score", 0.45)
	v.SetDefault("validate.omit_keywords", rules.Keywords)
	v.SetDefault("validate.omit_code_prefixes", rules.CodePrefixes)
	v.SetDefault("validate.hide_neutral", true)
	v.SetDefault("input.sheet_index", 0)
	v.SetDefault("input.skip_rows", 0)
	v.SetDefault("input.csv_delimiter", "")
	v.SetDefault("input.csv_charset", "")
	v.SetDefault("input.csv_comment", "")
	v.SetDefault("attendance.document", att.Document)
	v.SetDefault("attendance.name", att.Name)
	v.SetDefault("attendance.check_in", att.CheckIn)
	v.SetDefault("attendance.check_out", att.CheckOut)
	v.SetDefault("attendance.justifications", att.Justifications)
	v.SetDefault("roster.global", ros.Global)
	v.SetDefault("roster.filter", ros.Filter)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command depends on. mode is the command name:
// "validate", "roles", "attendance" or "roster".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "validate", "roles":
		if c.Validation.Workers < 1 || c.Validation.Workers > 64 {
			errs = append(errs, "validate.workers must be between 1 and 64")
		}
		if c.Validation.CodeSampleSize < 1 {
			errs = append(errs, "validate.code_sample_size must be > 0")
		}
		if c.Validation.CodeMinScore <= 0 || c.Validation.CodeMinScore > 1 {
			errs = append(errs, "validate.code_min_score must be in (0, 1]")
		}
	case "attendance":
		if strings.TrimSpace(c.Attendance.Document) == "" {
			errs = append(errs, "attendance.document is required")
		}
	case "roster":
		if strings.TrimSpace(c.Roster.Global) == "" {
			errs = append(errs, "roster.global is required")
		}
		if strings.TrimSpace(c.Roster.Filter) == "" {
			errs = append(errs, "roster.filter is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Input.SheetIndex < 0 {
		errs = append(errs, "input.sheet_index must be >= 0")
	}
	if c.Input.SkipRows < 0 {
		errs = append(errs, "input.skip_rows must be >= 0")
	}
	if d := c.Input.CSVDelimiter; d != "" && len([]rune(d)) != 1 {
		errs = append(errs, "input.csv_delimiter must be a single character")
	}
	if m := c.Input.CSVComment; m != "" && len([]rune(m)) != 1 {
		errs = append(errs, "input.csv_comment must be a single character")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
