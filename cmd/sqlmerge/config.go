package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/merge/config"
	"github.com/viant/sqlmerge/moption"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Config represents merge job configuration
type Config struct {
	DSN                  string            `yaml:"dsn"`
	Table                string            `yaml:"table"`
	Schema               string            `yaml:"schema,omitempty"`
	Columns              []string          `yaml:"columns"`
	Mapping              map[string]string `yaml:"mapping,omitempty"`
	Match                []string          `yaml:"match"`
	ExcludeFromUpdate    []string          `yaml:"exclude_from_update,omitempty"`
	Collations           map[string]string `yaml:"collations,omitempty"`
	Identity             *Identity         `yaml:"identity,omitempty"`
	DeleteWhenNotMatched bool              `yaml:"delete_when_not_matched,omitempty"`
	UpdateWhen           []Predicate       `yaml:"update_when,omitempty"`
	DeleteWhen           []Predicate       `yaml:"delete_when,omitempty"`
	DisableIndexes       []string          `yaml:"disable_indexes,omitempty"`
	DisableAllIndexes    bool              `yaml:"disable_all_indexes,omitempty"`
	CommandTimeout       string            `yaml:"command_timeout,omitempty"`
	Bulk                 Bulk              `yaml:"bulk,omitempty"`
}

// Identity represents identity column configuration
type Identity struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction,omitempty"` // input, input_output, preset
}

// Predicate represents update/delete gate, i.e. {column: Status, operator: "!=", value: 3}
type Predicate struct {
	Column   string      `yaml:"column"`
	Operator string      `yaml:"operator"`
	Value    interface{} `yaml:"value,omitempty"`
}

// Bulk represents bulk copy tuning
type Bulk struct {
	BatchSize   int    `yaml:"batch_size,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
	NotifyAfter int    `yaml:"notify_after,omitempty"`
	Streaming   bool   `yaml:"streaming,omitempty"`
	Hint        string `yaml:"hint,omitempty"`
}

// LoadConfig reads YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks job level settings, merge settings are validated by the merge config builder
func (c *Config) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("table was empty")
	}
	for _, value := range []string{c.CommandTimeout, c.Bulk.Timeout} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
	}
	return nil
}

// MergeConfig builds merge config
func (c *Config) MergeConfig() (*config.Config, error) {
	builder := config.NewBuilder().
		WithSchema(c.Schema).
		AddColumns(c.Columns...).
		MatchTargetOn(c.Match...).
		ExcludeColumnFromUpdate(c.ExcludeFromUpdate...).
		DeleteWhenNotMatched(c.DeleteWhenNotMatched)
	for field, column := range c.Mapping {
		builder.MapColumn(field, column)
	}
	for column, collation := range c.Collations {
		builder.SetCollationOnColumn(column, collation)
	}
	if c.Identity != nil {
		direction, err := parseDirection(c.Identity.Direction)
		if err != nil {
			return nil, err
		}
		builder.SetIdentityColumn(c.Identity.Column, direction)
	}
	for _, predicate := range c.UpdateWhen {
		builder.UpdateWhen(predicate.asPredicate())
	}
	for _, predicate := range c.DeleteWhen {
		builder.DeleteWhen(predicate.asPredicate())
	}
	if len(c.DisableIndexes) > 0 {
		builder.DisableIndexes(c.DisableIndexes...)
	}
	if c.DisableAllIndexes {
		builder.DisableAllIndexes()
	}
	return builder.Build()
}

// Options returns merge options
func (c *Config) Options() []moption.Option {
	var result []moption.Option
	if c.CommandTimeout != "" {
		timeout, _ := time.ParseDuration(c.CommandTimeout)
		result = append(result, moption.WithCommandTimeout(timeout))
	}
	var loadOptions []loption.Option
	if c.Bulk.BatchSize > 0 {
		loadOptions = append(loadOptions, loption.WithBatchSize(c.Bulk.BatchSize))
	}
	if c.Bulk.Timeout != "" {
		timeout, _ := time.ParseDuration(c.Bulk.Timeout)
		loadOptions = append(loadOptions, loption.WithTimeout(timeout))
	}
	if c.Bulk.Streaming {
		loadOptions = append(loadOptions, loption.WithStreaming(true))
	}
	if c.Bulk.Hint != "" {
		loadOptions = append(loadOptions, loption.WithHint(c.Bulk.Hint))
	}
	if c.Bulk.NotifyAfter > 0 {
		loadOptions = append(loadOptions, loption.WithNotifyAfter(c.Bulk.NotifyAfter, func(copied int) {
			fmt.Fprintf(os.Stderr, "copied %d rows\n", copied)
		}))
	}
	if len(loadOptions) > 0 {
		result = append(result, moption.WithLoadOptions(loadOptions))
	}
	return result
}

func (p Predicate) asPredicate() config.Predicate {
	operator := config.Operator(strings.ToUpper(strings.TrimSpace(p.Operator)))
	if operator == "<>" {
		operator = config.OpNotEqual
	}
	return config.Predicate{Column: p.Column, Operator: operator, Value: p.Value}
}

func parseDirection(direction string) (config.Direction, error) {
	switch strings.ToLower(strings.ReplaceAll(direction, "_", "")) {
	case "", "input":
		return config.IdentityInput, nil
	case "inputoutput":
		return config.IdentityInputOutput, nil
	case "preset":
		return config.IdentityPreset, nil
	}
	return 0, fmt.Errorf("unsupported identity direction: %q", direction)
}

// ReadRecords reads JSON array of objects, numbers are normalised to int or float64
func ReadRecords(data []byte) ([]map[string]interface{}, error) {
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.UseNumber()
	var records []map[string]interface{}
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	for _, record := range records {
		for key, value := range record {
			record[key] = normalise(value)
		}
	}
	return records, nil
}

func normalise(value interface{}) interface{} {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	literal := number.String()
	if !strings.ContainsAny(literal, ".eE") {
		if i, err := toolbox.ToInt(literal); err == nil {
			return i
		}
	}
	return toolbox.AsFloat(literal)
}
