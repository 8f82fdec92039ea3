package recorder

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON document produced when a run is exported.
type ExportData struct {
	ID       string             `json:"id"`
	Scenario string             `json:"scenario"`
	TrimMode string             `json:"trim_mode"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Crashed  bool               `json:"crashed"`
	Count    int                `json:"count"`
	Metrics  map[string]float64 `json:"metrics"`
	Samples  []Sample           `json:"samples"`
}

// ExportJSON writes a loaded run as an indented JSON document to path.
func ExportJSON(path string, meta *RunMetadata, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, meta, samples)
}

// ExportJSONStdout writes a loaded run as an indented JSON document to
// standard output.
func ExportJSONStdout(meta *RunMetadata, samples []Sample) error {
	return writeExport(os.Stdout, meta, samples)
}

func writeExport(w io.Writer, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		ID:       meta.ID,
		Scenario: meta.Scenario,
		TrimMode: meta.TrimMode,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Crashed:  meta.Crashed,
		Count:    len(samples),
		Metrics:  meta.Metrics,
		Samples:  samples,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
