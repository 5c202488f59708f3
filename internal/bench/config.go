package bench

import (
	"fmt"
	"os"
	"strings"

	"github.com/scigolib/initarray/internal/utils"
	"gopkg.in/yaml.v3"
)

// Suite describes one benchmark sweep: which implementations to run, at
// which sizes, over which scenarios, and where results go.
type Suite struct {
	// Ns holds array lengths; entries accept k/m/g multipliers ("100k").
	Ns        []string `yaml:"ns"`
	Reps      int      `yaml:"reps"`
	Seed      int64    `yaml:"seed"`
	Impls     []string `yaml:"impls"`
	Scenarios []string `yaml:"scenarios"`
	Outfile   string   `yaml:"outfile"`
	// Archive names an optional bolt database collecting result history.
	Archive string `yaml:"archive"`
}

// DefaultSuite returns the full sweep the benchmark runs when nothing is
// overridden.
func DefaultSuite() Suite {
	return Suite{
		Ns:        []string{"10k", "100k", "1m"},
		Reps:      3,
		Seed:      42,
		Impls:     []string{"reference", "variant2", "variant4", DirectSliceName},
		Scenarios: append([]string(nil), Scenarios...),
		Outfile:   "results.csv",
	}
}

// LoadSuite reads a YAML suite file over the defaults: fields absent from
// the file keep their default values.
func LoadSuite(path string) (Suite, error) {
	s := DefaultSuite()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, utils.WrapError("suite config read failed", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, utils.WrapError("suite config parse failed", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Sizes parses the Ns entries into concrete lengths.
func (s *Suite) Sizes() ([]int, error) {
	return utils.ParseSizes(strings.Join(s.Ns, ","))
}

// Validate checks the suite for values the runner cannot work with.
func (s *Suite) Validate() error {
	if s.Reps <= 0 {
		return fmt.Errorf("suite: reps must be positive, got %d", s.Reps)
	}
	if len(s.Ns) == 0 {
		return fmt.Errorf("suite: no sizes configured")
	}
	if _, err := s.Sizes(); err != nil {
		return fmt.Errorf("suite: %w", err)
	}
	if len(s.Impls) == 0 {
		return fmt.Errorf("suite: no implementations configured")
	}
	if len(s.Scenarios) == 0 {
		return fmt.Errorf("suite: no scenarios configured")
	}
	known := make(map[string]bool, len(Scenarios))
	for _, sc := range Scenarios {
		known[sc] = true
	}
	for _, sc := range s.Scenarios {
		if !known[sc] {
			return fmt.Errorf("suite: unknown scenario %q", sc)
		}
	}
	if s.Outfile == "" {
		return fmt.Errorf("suite: outfile must not be empty")
	}
	return nil
}
