package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Snapshots: []sim.Snapshot{
			{Time: 0.0, Positions: []body.Vec3{{X: 10}, {X: -10}}},
			{Time: 0.01, Positions: []body.Vec3{{X: 9.9, Y: 0.5}, {X: -9.9, Y: -0.5}}},
		},
		Metrics:    map[string]float64{"energy_drift": 0.001},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("solar", 0.01, 1.0, 42, "barnes-hut", sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "solar" || meta.Seed != 42 || meta.Algorithm != "barnes-hut" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", meta.Bodies)
	}
	if meta.Metrics["energy_drift"] != 0.001 {
		t.Errorf("metrics not persisted: %v", meta.Metrics)
	}
}

func TestStoreLoadPositions(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("solar", 0.01, 1.0, 1, "direct", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		t.Fatalf("load positions failed: %v", err)
	}

	if len(times) != 2 || len(positions) != 2 {
		t.Fatalf("expected 2 rows, got %d times, %d positions", len(times), len(positions))
	}
	if times[1] != 0.01 {
		t.Errorf("time[1] = %v", times[1])
	}
	// Row layout: x0, y0, z0, x1, y1, z1.
	if len(positions[0]) != 6 {
		t.Fatalf("expected 6 coordinates per row, got %d", len(positions[0]))
	}
	if positions[1][1] != 0.5 {
		t.Errorf("y0 at step 1 = %v, want 0.5", positions[1][1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store should be empty, got %d runs", len(runs))
	}

	if _, err := st.Save("binary", 0.01, 1.0, 7, "direct", sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scene != "binary" {
		t.Errorf("list = %+v", runs)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list of missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, "solar", "barnes-hut", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}

	if exported.Scene != "solar" || exported.Steps != 1 {
		t.Errorf("export mismatch: %+v", exported)
	}
	if len(exported.Positions) != 2 || len(exported.Positions[0]) != 2 {
		t.Errorf("position frames malformed")
	}
	if exported.Positions[0][0][0] != 10 {
		t.Errorf("x of first body = %v, want 10", exported.Positions[0][0][0])
	}
}
