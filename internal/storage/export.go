package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	Scene     string             `json:"scene"`
	Algorithm string             `json:"algorithm"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Positions [][][3]float64     `json:"positions"`
	Metrics   map[string]float64 `json:"metrics"`
}

func buildExport(scene, algorithm string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Scene:     scene,
		Algorithm: algorithm,
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
		Times:     make([]float64, len(result.Snapshots)),
		Positions: make([][][3]float64, len(result.Snapshots)),
		Metrics:   result.Metrics,
	}

	for i, snap := range result.Snapshots {
		data.Times[i] = snap.Time
		frame := make([][3]float64, len(snap.Positions))
		for j, p := range snap.Positions {
			frame[j] = [3]float64{p.X, p.Y, p.Z}
		}
		data.Positions[i] = frame
	}

	return data
}

// ExportJSON writes a run as indented JSON to path.
func ExportJSON(path, scene, algorithm string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, scene, algorithm, dt, duration, result)
}

// ExportJSONStdout writes a run as indented JSON to standard output.
func ExportJSONStdout(scene, algorithm string, dt, duration float64, result *sim.Result) error {
	return writeExport(os.Stdout, scene, algorithm, dt, duration, result)
}

func writeExport(w io.Writer, scene, algorithm string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(scene, algorithm, dt, duration, result))
}
