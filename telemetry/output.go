package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

// GeneStatsRecord is one team's summary of one gene field for one
// generation, written as a row of genes.csv.
type GeneStatsRecord struct {
	Generation int     `csv:"generation"`
	Team       string  `csv:"team"`
	Field      string  `csv:"field"`
	Mean       float64 `csv:"mean"`
	Std        float64 `csv:"std"`
	Min        float64 `csv:"min"`
	Max        float64 `csv:"max"`
}

// OutputManager handles structured experiment output with CSV logging.
// A nil OutputManager is valid and discards everything, so callers never
// branch on whether output is enabled.
type OutputManager struct {
	dir         string
	battlesFile *os.File
	genesFile   *os.File

	battlesHeaderWritten bool
	genesHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "battles.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating battles.csv: %w", err)
	}
	om.battlesFile = f

	f, err = os.Create(filepath.Join(dir, "genes.csv"))
	if err != nil {
		om.battlesFile.Close()
		return nil, fmt.Errorf("creating genes.csv: %w", err)
	}
	om.genesFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteBattle appends a battle outcome to battles.csv.
func (om *OutputManager) WriteBattle(r BattleRecord) error {
	if om == nil {
		return nil
	}

	records := []BattleRecord{r}

	if !om.battlesHeaderWritten {
		if err := gocsv.Marshal(records, om.battlesFile); err != nil {
			return fmt.Errorf("writing battle record: %w", err)
		}
		om.battlesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.battlesFile); err != nil {
		return fmt.Errorf("writing battle record: %w", err)
	}
	return nil
}

// WriteGeneStats appends one team's gene field summaries for a generation
// to genes.csv.
func (om *OutputManager) WriteGeneStats(generation int, team components.Team, stats []GeneFieldStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}

	records := make([]GeneStatsRecord, 0, len(stats))
	for _, s := range stats {
		records = append(records, GeneStatsRecord{
			Generation: generation,
			Team:       team.String(),
			Field:      s.Field.String(),
			Mean:       s.Mean,
			Std:        s.Std,
			Min:        s.Min,
			Max:        s.Max,
		})
	}

	if !om.genesHeaderWritten {
		if err := gocsv.Marshal(records, om.genesFile); err != nil {
			return fmt.Errorf("writing gene stats: %w", err)
		}
		om.genesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.genesFile); err != nil {
		return fmt.Errorf("writing gene stats: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.battlesFile != nil {
		if err := om.battlesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.genesFile != nil {
		if err := om.genesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
