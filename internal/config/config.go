package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
	"github.com/clearhaven/remitrecon/internal/recon"
)

// Config holds all engine configuration
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Matching MatchingConfig `mapstructure:"matching"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Rules    []RuleConfig   `mapstructure:"write_off_rules"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// MatchingConfig holds the matcher and variance policy constants. Defaults
// match the historical posting rules; change deliberately.
type MatchingConfig struct {
	AmountTolerance            float64  `mapstructure:"amount_tolerance"`
	ReviewVariancePercent      float64  `mapstructure:"review_variance_percent"`
	SignificantVariancePercent float64  `mapstructure:"significant_variance_percent"`
	NonCoveredReasonCodes      []string `mapstructure:"non_covered_reason_codes"`
}

// BatchConfig holds batch orchestration configuration
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// RuleConfig is one write-off rule table entry. Entries extend or override
// the default table; omitted codes fall back to the group-code defaults.
type RuleConfig struct {
	ReasonCode       string `mapstructure:"reason_code"`
	Group            string `mapstructure:"group"`
	WriteOffCode     string `mapstructure:"write_off_code"`
	Description      string `mapstructure:"description"`
	RequiresApproval bool   `mapstructure:"requires_approval"`
	AutoPostEligible bool   `mapstructure:"auto_post_eligible"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config failed to unmarshal: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	v.SetDefault("matching.amount_tolerance", 0.01)
	v.SetDefault("matching.review_variance_percent", 10.0)
	v.SetDefault("matching.significant_variance_percent", 50.0)
	v.SetDefault("matching.non_covered_reason_codes", recon.DefaultNonCoveredReasonCodes)

	v.SetDefault("batch.workers", recon.DefaultMaxWorkers)
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("logger.level", "RECON_LOG_LEVEL")
	v.BindEnv("logger.format", "RECON_LOG_FORMAT")
	v.BindEnv("batch.workers", "RECON_BATCH_WORKERS")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Matching.AmountTolerance <= 0 {
		return fmt.Errorf("matching.amount_tolerance must be positive, got %v", c.Matching.AmountTolerance)
	}
	if c.Matching.ReviewVariancePercent <= 0 {
		return fmt.Errorf("matching.review_variance_percent must be positive, got %v", c.Matching.ReviewVariancePercent)
	}
	if c.Matching.SignificantVariancePercent <= c.Matching.ReviewVariancePercent {
		return fmt.Errorf("matching.significant_variance_percent must be greater than review_variance_percent (significant: %v, review: %v)",
			c.Matching.SignificantVariancePercent, c.Matching.ReviewVariancePercent)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	for _, rule := range c.Rules {
		if rule.ReasonCode == "" {
			return fmt.Errorf("write_off_rules entry missing reason_code")
		}
		if !entity.AdjustmentGroup(rule.Group).IsValid() {
			return fmt.Errorf("write_off_rules entry for reason %s has unknown group %q", rule.ReasonCode, rule.Group)
		}
	}
	return nil
}

// Thresholds converts the matching config to the engine's threshold type
func (c *Config) Thresholds() recon.VarianceThresholds {
	return recon.VarianceThresholds{
		MatchTolerance:     decimal.NewFromFloat(c.Matching.AmountTolerance),
		ReviewPercent:      c.Matching.ReviewVariancePercent,
		SignificantPercent: c.Matching.SignificantVariancePercent,
	}
}

// RuleTable builds the write-off rule table: the defaults overlaid with the
// configured entries.
func (c *Config) RuleTable() map[recon.RuleKey]recon.WriteOffRule {
	rules := recon.DefaultWriteOffRules()
	for _, rule := range c.Rules {
		key := recon.RuleKey{
			ReasonCode: rule.ReasonCode,
			Group:      entity.AdjustmentGroup(rule.Group),
		}
		rules[key] = recon.WriteOffRule{
			WriteOffCode:     rule.WriteOffCode,
			Description:      rule.Description,
			RequiresApproval: rule.RequiresApproval,
			AutoPostEligible: rule.AutoPostEligible,
		}
	}
	return rules
}
