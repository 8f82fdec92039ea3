package recorder

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Store persists recorded runs under a base directory.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one recorded run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	TrimMode  string             `json:"trim_mode"`
	Crashed   bool               `json:"crashed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// SampleHeader is the column order of a samples.csv file.
var SampleHeader = []string{
	"time", "latitude", "longitude", "altitude", "airspeed", "heading",
	"roll", "pitch", "climb_rate",
	"aileron", "elevator", "rudder", "throttle",
}

// SampleRow formats one sample in SampleHeader column order.
func SampleRow(smp Sample) []string {
	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
	return []string{
		ff(smp.Time), ff(smp.Latitude), ff(smp.Longitude),
		ff(smp.Altitude), ff(smp.Airspeed), ff(smp.Heading),
		ff(smp.Roll), ff(smp.Pitch), ff(smp.ClimbRate),
		ff(smp.Controls.Aileron), ff(smp.Controls.Elevator),
		ff(smp.Controls.Rudder), ff(smp.Controls.Throttle),
	}
}

// Save writes the recorded run to its own directory and returns the run
// id.
func (s *Store) Save(scenario string, dt float64, trimMode string, crashed bool, rec *Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  rec.Duration(),
		TrimMode:  trimMode,
		Crashed:   crashed,
		Metrics:   rec.Metrics(),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(SampleHeader); err != nil {
		return "", err
	}

	for _, smp := range rec.Samples() {
		if err := w.Write(SampleRow(smp)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every readable run under the base
// directory. Entries that are not run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads back the sample rows of a run. Rows that do not
// parse are skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(SampleHeader) {
			continue
		}

		fields := make([]float64, len(record))
		ok := true
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				ok = false
				break
			}
			fields[i] = v
		}
		if !ok {
			continue
		}

		samples = append(samples, Sample{
			Time:      fields[0],
			Latitude:  fields[1],
			Longitude: fields[2],
			Altitude:  fields[3],
			Airspeed:  fields[4],
			Heading:   fields[5],
			Roll:      fields[6],
			Pitch:     fields[7],
			ClimbRate: fields[8],
			Controls: fdm.Controls{
				Aileron:  fields[9],
				Elevator: fields[10],
				Rudder:   fields[11],
				Throttle: fields[12],
			},
		})
	}

	return samples, nil
}
