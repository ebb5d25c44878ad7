// Package config handles configuration loading for bureauscrub.
// It supports YAML config files with environment variable overrides.
// Every business-rule constant of the pipeline lives in PolicyConfig;
// nothing in the engine is hard-coded.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Target-pick variants for the time-to-target curve. The two deployed
// renditions of this pipeline disagree on which post-anchor open to
// use, so the choice is an explicit policy input.
const (
	TargetPickEarliest         = "earliest_post_anchor"
	TargetPickFirstEncountered = "first_encountered"
)

// Config represents the complete application configuration.
type Config struct {
	Input  InputConfig  `mapstructure:"input"  yaml:"input"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	API    APIConfig    `mapstructure:"api"    yaml:"api"`
	DB     DBConfig     `mapstructure:"db"     yaml:"db"`
	Policy PolicyConfig `mapstructure:"policy" yaml:"policy"`
}

// InputConfig selects and locates the record source.
type InputConfig struct {
	Source  string `mapstructure:"source"   yaml:"source"` // "csv" or "postgres"
	CSVPath string `mapstructure:"csv_path" yaml:"csv_path"`
	Table   string `mapstructure:"table"    yaml:"table"` // postgres staging table
}

// OutputConfig locates the emitted view documents.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// APIConfig holds the view server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// DBConfig holds the Postgres connection used by the record source and
// the run sink.
type DBConfig struct {
	URL    string `mapstructure:"url"    yaml:"url"`
	Schema string `mapstructure:"schema" yaml:"schema"`
}

// PolicyConfig carries every externally supplied business rule.
type PolicyConfig struct {
	// Product code sets. One deployed variant treats 191 (personal
	// loan) as the target product, the other 123 (credit card);
	// override target_codes accordingly.
	AnchorCodes []string `mapstructure:"anchor_codes" yaml:"anchor_codes"`
	TargetCodes []string `mapstructure:"target_codes" yaml:"target_codes"`

	ThinFileMin int `mapstructure:"thin_file_min" yaml:"thin_file_min"`

	Risk          RiskPolicy          `mapstructure:"risk"          yaml:"risk"`
	Affordability AffordabilityBands  `mapstructure:"affordability" yaml:"affordability"`
	Curve         CurvePolicy         `mapstructure:"curve"         yaml:"curve"`
	Funnel        FunnelPolicy        `mapstructure:"funnel"        yaml:"funnel"`
	Quality       QualityPolicy       `mapstructure:"quality"       yaml:"quality"`
}

// RiskPolicy holds the risk-score deltas and eligibility thresholds.
type RiskPolicy struct {
	Base                   int     `mapstructure:"base"                     yaml:"base"`
	CleanBonus             int     `mapstructure:"clean_bonus"              yaml:"clean_bonus"`
	OnTimeBonus            int     `mapstructure:"on_time_bonus"            yaml:"on_time_bonus"`
	OnTimeRatioMinPct      float64 `mapstructure:"on_time_ratio_min_pct"    yaml:"on_time_ratio_min_pct"`
	SingleTradelinePenalty int     `mapstructure:"single_tradeline_penalty" yaml:"single_tradeline_penalty"`
	ChargeOffPenalty       int     `mapstructure:"charge_off_penalty"       yaml:"charge_off_penalty"`
	HighDPDPenalty         int     `mapstructure:"high_dpd_penalty"         yaml:"high_dpd_penalty"`
	HighDPDMin             int     `mapstructure:"high_dpd_min"             yaml:"high_dpd_min"`
	AnyDPDPenalty          int     `mapstructure:"any_dpd_penalty"          yaml:"any_dpd_penalty"`
	PrimaryMin             int     `mapstructure:"primary_min"              yaml:"primary_min"`
	SecondaryMin           int     `mapstructure:"secondary_min"            yaml:"secondary_min"`
}

// AffordabilityBands holds the credit-exposure tier thresholds.
type AffordabilityBands struct {
	MicroMax float64 `mapstructure:"micro_max" yaml:"micro_max"`
	MidMax   float64 `mapstructure:"mid_max"   yaml:"mid_max"`
	MassMax  float64 `mapstructure:"mass_max"  yaml:"mass_max"`
}

// CurvePolicy controls the cohort curve construction.
type CurvePolicy struct {
	TargetPick     string `mapstructure:"target_pick"      yaml:"target_pick"`
	MaxMonths      int    `mapstructure:"max_months"       yaml:"max_months"`
	GoldenMin      int    `mapstructure:"golden_min"       yaml:"golden_min"`
	GoldenMax      int    `mapstructure:"golden_max"       yaml:"golden_max"`
	MilestoneMax   int    `mapstructure:"milestone_max"    yaml:"milestone_max"`
}

// ProductPolicy holds the demand and revenue model for one product.
type ProductPolicy struct {
	DemandRate     float64 `mapstructure:"demand_rate"      yaml:"demand_rate"`
	TakeRate       float64 `mapstructure:"take_rate"        yaml:"take_rate"`
	AvgTicket      float64 `mapstructure:"avg_ticket"       yaml:"avg_ticket"`
	AvgTenorMonths int     `mapstructure:"avg_tenor_months" yaml:"avg_tenor_months"`
	PrepaymentAdj  float64 `mapstructure:"prepayment_adj"   yaml:"prepayment_adj"`
	NetMargin      float64 `mapstructure:"net_margin"       yaml:"net_margin"`
	YieldPct       float64 `mapstructure:"yield_pct"        yaml:"yield_pct"`
	CreditCostPct  float64 `mapstructure:"credit_cost_pct"  yaml:"credit_cost_pct"`
}

// FunnelPolicy holds the funnel and projection constants.
type FunnelPolicy struct {
	PL  ProductPolicy `mapstructure:"pl"  yaml:"pl"`
	Lac ProductPolicy `mapstructure:"lac" yaml:"lac"`

	Month6Factor  float64 `mapstructure:"month6_factor"  yaml:"month6_factor"`
	Month12Factor float64 `mapstructure:"month12_factor" yaml:"month12_factor"`
	Month24Factor float64 `mapstructure:"month24_factor" yaml:"month24_factor"`
}

// QualityPolicy holds the data-quality status bands.
type QualityPolicy struct {
	AvgTradelinesLow    float64 `mapstructure:"avg_tradelines_low"     yaml:"avg_tradelines_low"`
	AvgTradelinesHigh   float64 `mapstructure:"avg_tradelines_high"    yaml:"avg_tradelines_high"`
	WarnFactor          float64 `mapstructure:"warn_factor"            yaml:"warn_factor"`
	AnchorNoneWarnPct   float64 `mapstructure:"anchor_none_warn_pct"   yaml:"anchor_none_warn_pct"`
	AnchorNoneCheckPct  float64 `mapstructure:"anchor_none_check_pct"  yaml:"anchor_none_check_pct"`
	Month0WarnPct       float64 `mapstructure:"month0_warn_pct"        yaml:"month0_warn_pct"`
	Month0CheckPct      float64 `mapstructure:"month0_check_pct"       yaml:"month0_check_pct"`
	FreshnessMaxDays    int     `mapstructure:"freshness_max_days"     yaml:"freshness_max_days"`
	HighQualityMinPct   float64 `mapstructure:"high_quality_min_pct"   yaml:"high_quality_min_pct"`
	BucketDQualityMaxPct float64 `mapstructure:"bucket_d_quality_max_pct" yaml:"bucket_d_quality_max_pct"`
}

// Default returns the full configuration with baseline policy values.
// These match the personal-loan deployment variant.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Source:  "csv",
			CSVPath: "AR_sample.csv",
			Table:   "bureau_tradelines",
		},
		Output: OutputConfig{Dir: "data"},
		API: APIConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		DB: DBConfig{Schema: "bureauscrub"},
		Policy: PolicyConfig{
			AnchorCodes: []string{"241", "242"},
			TargetCodes: []string{"191"},
			ThinFileMin: 3,
			Risk: RiskPolicy{
				Base:                   50,
				CleanBonus:             40,
				OnTimeBonus:            20,
				OnTimeRatioMinPct:      90,
				SingleTradelinePenalty: 10,
				ChargeOffPenalty:       40,
				HighDPDPenalty:         30,
				HighDPDMin:             90,
				AnyDPDPenalty:          10,
				PrimaryMin:             70,
				SecondaryMin:           40,
			},
			Affordability: AffordabilityBands{
				MicroMax: 50000,
				MidMax:   200000,
				MassMax:  1000000,
			},
			Curve: CurvePolicy{
				TargetPick:   TargetPickEarliest,
				MaxMonths:    36,
				GoldenMin:    2,
				GoldenMax:    10,
				MilestoneMax: 18,
			},
			Funnel: FunnelPolicy{
				PL: ProductPolicy{
					DemandRate:     0.32,
					TakeRate:       0.25,
					AvgTicket:      75000,
					AvgTenorMonths: 18,
					PrepaymentAdj:  0.75,
					NetMargin:      0.16,
					YieldPct:       24,
					CreditCostPct:  5,
				},
				Lac: ProductPolicy{
					DemandRate:     0.20,
					TakeRate:       0.35,
					AvgTicket:      150000,
					AvgTenorMonths: 24,
					PrepaymentAdj:  0.80,
					NetMargin:      0.15,
					YieldPct:       20,
					CreditCostPct:  2,
				},
				Month6Factor:  0.5,
				Month12Factor: 1.0,
				Month24Factor: 2.0,
			},
			Quality: QualityPolicy{
				AvgTradelinesLow:     4,
				AvgTradelinesHigh:    8,
				WarnFactor:           1.25,
				AnchorNoneWarnPct:    10,
				AnchorNoneCheckPct:   20,
				Month0WarnPct:        5,
				Month0CheckPct:       15,
				FreshnessMaxDays:     90,
				HighQualityMinPct:    80,
				BucketDQualityMaxPct: 5,
			},
		},
	}
}

// DefaultPolicy returns the baseline policy on its own; handy for the
// pipeline stages and their tests.
func DefaultPolicy() PolicyConfig {
	return Default().Policy
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.bureauscrub/config.yaml (home directory)
//  3. /etc/bureauscrub/config.yaml (system)
//
// Environment variables override config file values.
// Format: BUREAUSCRUB_<SECTION>_<KEY>, e.g. BUREAUSCRUB_DB_URL
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".bureauscrub"))
	v.AddConfigPath("/etc/bureauscrub")

	v.SetEnvPrefix("BUREAUSCRUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BUREAUSCRUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key with its baseline value so partial
// config files and env overrides merge cleanly.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("input.source", d.Input.Source)
	v.SetDefault("input.csv_path", d.Input.CSVPath)
	v.SetDefault("input.table", d.Input.Table)

	v.SetDefault("output.dir", d.Output.Dir)

	v.SetDefault("api.host", d.API.Host)
	v.SetDefault("api.port", d.API.Port)
	v.SetDefault("api.cors_origins", d.API.CORSOrigins)

	v.SetDefault("db.url", d.DB.URL)
	v.SetDefault("db.schema", d.DB.Schema)

	v.SetDefault("policy.anchor_codes", d.Policy.AnchorCodes)
	v.SetDefault("policy.target_codes", d.Policy.TargetCodes)
	v.SetDefault("policy.thin_file_min", d.Policy.ThinFileMin)

	v.SetDefault("policy.risk.base", d.Policy.Risk.Base)
	v.SetDefault("policy.risk.clean_bonus", d.Policy.Risk.CleanBonus)
	v.SetDefault("policy.risk.on_time_bonus", d.Policy.Risk.OnTimeBonus)
	v.SetDefault("policy.risk.on_time_ratio_min_pct", d.Policy.Risk.OnTimeRatioMinPct)
	v.SetDefault("policy.risk.single_tradeline_penalty", d.Policy.Risk.SingleTradelinePenalty)
	v.SetDefault("policy.risk.charge_off_penalty", d.Policy.Risk.ChargeOffPenalty)
	v.SetDefault("policy.risk.high_dpd_penalty", d.Policy.Risk.HighDPDPenalty)
	v.SetDefault("policy.risk.high_dpd_min", d.Policy.Risk.HighDPDMin)
	v.SetDefault("policy.risk.any_dpd_penalty", d.Policy.Risk.AnyDPDPenalty)
	v.SetDefault("policy.risk.primary_min", d.Policy.Risk.PrimaryMin)
	v.SetDefault("policy.risk.secondary_min", d.Policy.Risk.SecondaryMin)

	v.SetDefault("policy.affordability.micro_max", d.Policy.Affordability.MicroMax)
	v.SetDefault("policy.affordability.mid_max", d.Policy.Affordability.MidMax)
	v.SetDefault("policy.affordability.mass_max", d.Policy.Affordability.MassMax)

	v.SetDefault("policy.curve.target_pick", d.Policy.Curve.TargetPick)
	v.SetDefault("policy.curve.max_months", d.Policy.Curve.MaxMonths)
	v.SetDefault("policy.curve.golden_min", d.Policy.Curve.GoldenMin)
	v.SetDefault("policy.curve.golden_max", d.Policy.Curve.GoldenMax)
	v.SetDefault("policy.curve.milestone_max", d.Policy.Curve.MilestoneMax)

	setProductDefaults(v, "policy.funnel.pl", d.Policy.Funnel.PL)
	setProductDefaults(v, "policy.funnel.lac", d.Policy.Funnel.Lac)
	v.SetDefault("policy.funnel.month6_factor", d.Policy.Funnel.Month6Factor)
	v.SetDefault("policy.funnel.month12_factor", d.Policy.Funnel.Month12Factor)
	v.SetDefault("policy.funnel.month24_factor", d.Policy.Funnel.Month24Factor)

	v.SetDefault("policy.quality.avg_tradelines_low", d.Policy.Quality.AvgTradelinesLow)
	v.SetDefault("policy.quality.avg_tradelines_high", d.Policy.Quality.AvgTradelinesHigh)
	v.SetDefault("policy.quality.warn_factor", d.Policy.Quality.WarnFactor)
	v.SetDefault("policy.quality.anchor_none_warn_pct", d.Policy.Quality.AnchorNoneWarnPct)
	v.SetDefault("policy.quality.anchor_none_check_pct", d.Policy.Quality.AnchorNoneCheckPct)
	v.SetDefault("policy.quality.month0_warn_pct", d.Policy.Quality.Month0WarnPct)
	v.SetDefault("policy.quality.month0_check_pct", d.Policy.Quality.Month0CheckPct)
	v.SetDefault("policy.quality.freshness_max_days", d.Policy.Quality.FreshnessMaxDays)
	v.SetDefault("policy.quality.high_quality_min_pct", d.Policy.Quality.HighQualityMinPct)
	v.SetDefault("policy.quality.bucket_d_quality_max_pct", d.Policy.Quality.BucketDQualityMaxPct)
}

func setProductDefaults(v *viper.Viper, prefix string, p ProductPolicy) {
	v.SetDefault(prefix+".demand_rate", p.DemandRate)
	v.SetDefault(prefix+".take_rate", p.TakeRate)
	v.SetDefault(prefix+".avg_ticket", p.AvgTicket)
	v.SetDefault(prefix+".avg_tenor_months", p.AvgTenorMonths)
	v.SetDefault(prefix+".prepayment_adj", p.PrepaymentAdj)
	v.SetDefault(prefix+".net_margin", p.NetMargin)
	v.SetDefault(prefix+".yield_pct", p.YieldPct)
	v.SetDefault(prefix+".credit_cost_pct", p.CreditCostPct)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
