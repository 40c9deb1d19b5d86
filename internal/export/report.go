package export

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// BenchResult is one timed run of a motion profile.
type BenchResult struct {
	Preset       string        `json:"preset"`
	Enabled      bool          `json:"enabled"`
	Particles    int           `json:"particles"`
	Links        int           `json:"links"`
	Frames       int           `json:"frames"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	FramesPerSec float64       `json:"frames_per_sec"`
}

type BenchReport struct {
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Seed    int64         `json:"seed"`
	Results []BenchResult `json:"results"`
}

func ExportJSON(path string, report BenchReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, report); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func WriteJSON(w io.Writer, report BenchReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
