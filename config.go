package wofa

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config Chooses the weighting parameters of a Grader.
//
//	tail_mass: 0.5                 # x in λ = (1-x)^(1/η)
//	eta_offset: 1                  # η = longest run of the reference + eta_offset
//	eta: 0                         # a positive value fixes η instead
//	determinize_work_limit: 10000
type Config struct {
	TailMass             float64 `yaml:"tail_mass"`
	EtaOffset            int     `yaml:"eta_offset"`
	Eta                  int     `yaml:"eta"`
	DeterminizeWorkLimit int     `yaml:"determinize_work_limit"`
}

func DefaultConfig() Config {
	return Config{
		TailMass:             0.5,
		EtaOffset:            1,
		DeterminizeWorkLimit: DEFAULT_DETERMINIZE_WORK_LIMIT,
	}
}

// ParseConfig Reads a YAML config; keys that are absent keep their DefaultConfig value and unknown
// keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig Reads a YAML config file, see ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	if !(c.TailMass > 0 && c.TailMass < 1) {
		return fmt.Errorf("%w: tail_mass must lie strictly between 0 and 1, got %v", ErrInvalidConfig, c.TailMass)
	}
	if c.Eta < 0 {
		return fmt.Errorf("%w: eta must not be negative, got %d", ErrInvalidConfig, c.Eta)
	}
	if c.Eta == 0 && c.EtaOffset < 1 {
		return fmt.Errorf("%w: eta_offset must be positive when eta is not set, got %d", ErrInvalidConfig, c.EtaOffset)
	}
	if c.DeterminizeWorkLimit <= 0 {
		return fmt.Errorf("%w: determinize_work_limit must be positive, got %d", ErrInvalidConfig, c.DeterminizeWorkLimit)
	}
	return nil
}
