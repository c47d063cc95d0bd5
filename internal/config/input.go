package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk description of a simulation run: one shared cap
// schedule, a set of default parameters, and a list of scenario overrides.
type Config struct {
	CapSchedule domain.CapSchedule  `yaml:"cap_schedule" json:"cap_schedule"`
	Defaults    domain.ParameterSet `yaml:"defaults" json:"defaults"`
	Scenarios   []ScenarioOverride  `yaml:"scenarios" json:"scenarios"`
}

// ScenarioOverride overrides individual default parameters for one scenario.
// Unset fields inherit from the defaults block.
type ScenarioOverride struct {
	Name                string                 `yaml:"name"`
	StartAge            *int                   `yaml:"start_age,omitempty"`
	WithdrawAge         *int                   `yaml:"withdraw_age,omitempty"`
	StartYear           *int                   `yaml:"start_year,omitempty"`
	StartMonth          *time.Month            `yaml:"start_month,omitempty"`
	MonthlyContribution *decimal.Decimal       `yaml:"monthly_contribution,omitempty"`
	AnnualReturn        *decimal.Decimal       `yaml:"annual_return,omitempty"`
	Inflation           *decimal.Decimal       `yaml:"inflation,omitempty"`
	AUMFee              *decimal.Decimal       `yaml:"aum_fee,omitempty"`
	DepositFee          *decimal.Decimal       `yaml:"deposit_fee,omitempty"`
	ExtraExpenseDrag    *decimal.Decimal       `yaml:"extra_expense_drag,omitempty"`
	CapitalGainsTax     *decimal.Decimal       `yaml:"capital_gains_tax,omitempty"`
	WithdrawalMode      *domain.WithdrawalMode `yaml:"withdrawal_mode,omitempty"`
}

// InputParser handles parsing of input configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML configuration file.
func (ip *InputParser) LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateConfiguration checks the structural shape of the configuration and
// the semantic constraints of every resolved parameter set.
func (ip *InputParser) ValidateConfiguration(cfg *Config) error {
	if len(cfg.CapSchedule.ByYear) == 0 {
		return fmt.Errorf("cap_schedule.by_year must list at least one year")
	}
	for year, cap := range cfg.CapSchedule.ByYear {
		if cap.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("cap_schedule.by_year[%d] must be positive", year)
		}
	}
	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	sets, err := ip.BuildParameterSets(cfg)
	if err != nil {
		return err
	}
	for i, params := range sets {
		if err := params.Validate(); err != nil {
			return fmt.Errorf("scenario %d (%s): %w", i, params.Name, err)
		}
	}
	return nil
}

// BuildParameterSets resolves every scenario into a complete parameter set:
// defaults, then overrides, then the shared cap schedule and the statutory
// fallbacks (25% capital gains tax, annuity mode, January start).
func (ip *InputParser) BuildParameterSets(cfg *Config) ([]domain.ParameterSet, error) {
	sets := make([]domain.ParameterSet, 0, len(cfg.Scenarios))
	for i, sc := range cfg.Scenarios {
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i)
		}
		params := cfg.Defaults
		params.Name = sc.Name
		params.CapSchedule = cfg.CapSchedule

		if sc.StartAge != nil {
			params.StartAge = *sc.StartAge
		}
		if sc.WithdrawAge != nil {
			params.WithdrawAge = *sc.WithdrawAge
		}
		if sc.StartYear != nil {
			params.StartYear = *sc.StartYear
		}
		if sc.StartMonth != nil {
			params.StartMonth = *sc.StartMonth
		}
		if sc.MonthlyContribution != nil {
			params.MonthlyContribution = *sc.MonthlyContribution
		}
		if sc.AnnualReturn != nil {
			params.AnnualReturn = *sc.AnnualReturn
		}
		if sc.Inflation != nil {
			params.Inflation = *sc.Inflation
		}
		if sc.AUMFee != nil {
			params.AUMFee = *sc.AUMFee
		}
		if sc.DepositFee != nil {
			params.DepositFee = *sc.DepositFee
		}
		if sc.ExtraExpenseDrag != nil {
			params.ExtraExpenseDrag = *sc.ExtraExpenseDrag
		}
		if sc.CapitalGainsTax != nil {
			params.CapitalGainsTax = *sc.CapitalGainsTax
		}
		if sc.WithdrawalMode != nil {
			params.WithdrawalMode = *sc.WithdrawalMode
		}

		if params.CapitalGainsTax.IsZero() {
			params.CapitalGainsTax = domain.DefaultCapitalGainsTax
		}
		if params.WithdrawalMode == "" {
			params.WithdrawalMode = domain.ModeAnnuity
		}
		if params.StartMonth == 0 {
			params.StartMonth = time.January
		}
		sets = append(sets, params)
	}
	return sets, nil
}

// CreateExampleConfiguration returns a ready-to-run example: the 2026 cap,
// market-average fees, and a start-age comparison at 30/40/50/59.
func (ip *InputParser) CreateExampleConfiguration() *Config {
	age := func(a int) *int { return &a }
	return &Config{
		CapSchedule: domain.CapSchedule{
			ByYear: map[int]decimal.Decimal{
				2026: decimal.NewFromInt(83641),
			},
			ProjectionGrowth: decimal.NewFromFloat(0.02),
		},
		Defaults: domain.ParameterSet{
			StartAge:            30,
			WithdrawAge:         60,
			StartYear:           2026,
			StartMonth:          time.January,
			MonthlyContribution: decimal.NewFromInt(3000),
			AnnualReturn:        decimal.NewFromFloat(0.05),
			Inflation:           decimal.NewFromFloat(0.025),
			AUMFee:              decimal.NewFromFloat(0.0065),
			DepositFee:          decimal.Zero,
			CapitalGainsTax:     domain.DefaultCapitalGainsTax,
			WithdrawalMode:      domain.ModeAnnuity,
		},
		Scenarios: []ScenarioOverride{
			{Name: "Age 30", StartAge: age(30)},
			{Name: "Age 40", StartAge: age(40)},
			{Name: "Age 50", StartAge: age(50)},
			{Name: "Age 59", StartAge: age(59)},
		},
	}
}

// WriteExampleConfiguration writes the example configuration as YAML.
func (ip *InputParser) WriteExampleConfiguration(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleConfiguration())
	if err != nil {
		return fmt.Errorf("failed to marshal example configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
