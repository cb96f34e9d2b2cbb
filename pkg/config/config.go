package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smartroute/smartroute/pkg/util"
	"gopkg.in/yaml.v3"
)

const environmentPrefix = "SMARTROUTE_"

type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Currency      CurrencyConfig      `yaml:"currency"`
	Planner       PlannerConfig       `yaml:"planner"`
	Places        PlacesConfig        `yaml:"places"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
}

type ProviderConfig struct {
	// Empty WorkerURL means estimates only
	WorkerURL       string        `yaml:"worker_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RetryMaxElapsed time.Duration `yaml:"retry_max_elapsed"`
	FallbackEnabled bool          `yaml:"fallback_enabled"`
}

type CurrencyConfig struct {
	RateURL string `yaml:"rate_url"`
	Default string `yaml:"default"`
}

type PlannerConfig struct {
	MinTransfer     int    `yaml:"min_transfer"`
	MaxTransfers    int    `yaml:"max_transfers"`
	HubCandidateCap int    `yaml:"hub_candidate_cap"`
	LegFilter       string `yaml:"leg_filter"`
	Language        string `yaml:"language"`
}

type PlacesConfig struct {
	// Empty File loads the bundled European cities dataset
	File            string `yaml:"file"`
	SuggestionLimit int    `yaml:"suggestion_limit"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type ElasticsearchConfig struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Index    string `yaml:"index"`
}

func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Timeout:         10 * time.Second,
			RetryMaxElapsed: 8 * time.Second,
			FallbackEnabled: true,
		},
		Currency: CurrencyConfig{
			RateURL: "https://api.frankfurter.app/latest?from=EUR&to=PLN",
			Default: "PLN",
		},
		Planner: PlannerConfig{
			MinTransfer:     30,
			MaxTransfers:    1,
			HubCandidateCap: 5000,
			Language:        "pl",
		},
		Places: PlacesConfig{
			SuggestionLimit: 120,
		},
		Elasticsearch: ElasticsearchConfig{
			Index: "smartroute-places",
		},
	}
}

// Load applies the YAML file at path (if any) and then the SMARTROUTE_* environment over the defaults
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := config.ApplyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) ApplyEnvironment(env map[string]string) error {
	textFields := map[string]*string{
		"WORKER_URL":             &c.Provider.WorkerURL,
		"FX_URL":                 &c.Currency.RateURL,
		"CURRENCY":               &c.Currency.Default,
		"PLACES_FILE":            &c.Places.File,
		"LEG_FILTER":             &c.Planner.LegFilter,
		"LANGUAGE":               &c.Planner.Language,
		"REDIS_ADDRESS":          &c.Redis.Address,
		"REDIS_PASSWORD":         &c.Redis.Password,
		"ELASTICSEARCH_ADDRESS":  &c.Elasticsearch.Address,
		"ELASTICSEARCH_USERNAME": &c.Elasticsearch.Username,
		"ELASTICSEARCH_PASSWORD": &c.Elasticsearch.Password,
		"ELASTICSEARCH_INDEX":    &c.Elasticsearch.Index,
	}
	for name, field := range textFields {
		if value, exists := env[environmentPrefix+name]; exists && value != "" {
			*field = value
		}
	}

	numberFields := map[string]*int{
		"REDIS_DATABASE":    &c.Redis.Database,
		"MIN_TRANSFER":      &c.Planner.MinTransfer,
		"MAX_TRANSFERS":     &c.Planner.MaxTransfers,
		"HUB_CANDIDATE_CAP": &c.Planner.HubCandidateCap,
	}
	for name, field := range numberFields {
		value, exists := env[environmentPrefix+name]
		if !exists || value == "" {
			continue
		}

		number, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s%s: %w", environmentPrefix, name, err)
		}
		*field = number
	}

	if value, exists := env[environmentPrefix+"FALLBACK"]; exists {
		c.Provider.FallbackEnabled = util.EnvironmentFlag(value, c.Provider.FallbackEnabled)
	}

	return nil
}

func (c *Config) Validate() error {
	var problems []error

	if c.Planner.MinTransfer < 0 {
		problems = append(problems, errors.New("planner.min_transfer must not be negative"))
	}
	if c.Planner.MaxTransfers < 0 {
		problems = append(problems, errors.New("planner.max_transfers must not be negative"))
	}
	if c.Planner.HubCandidateCap < 0 {
		problems = append(problems, errors.New("planner.hub_candidate_cap must not be negative"))
	}
	if c.Planner.Language != "pl" && c.Planner.Language != "en" {
		problems = append(problems, fmt.Errorf("planner.language %q is not one of pl, en", c.Planner.Language))
	}
	if c.Provider.Timeout <= 0 {
		problems = append(problems, errors.New("provider.timeout must be positive"))
	}
	if c.Places.SuggestionLimit <= 0 {
		problems = append(problems, errors.New("places.suggestion_limit must be positive"))
	}

	c.Currency.Default = strings.ToUpper(strings.TrimSpace(c.Currency.Default))
	if len(c.Currency.Default) != 3 {
		problems = append(problems, fmt.Errorf("currency.default %q is not a currency code", c.Currency.Default))
	}

	return errors.Join(problems...)
}
