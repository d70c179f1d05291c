package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile  = "metadata.json"
	samplesFile   = "samples.csv"
	particlesFile = "particles.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Particles   int                `json:"particles"`
	Frames      int                `json:"frames"`
	SampleEvery int                `json:"sample_every"`
	Scenario    string             `json:"scenario,omitempty"`
	Params      field.Params       `json:"params"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata, sampled metrics and the
// final particle state. It fills in meta.ID and meta.Timestamp.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics
	if result.Final != nil {
		meta.Particles = result.Final.Len()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		return "", err
	}
	if result.Final != nil {
		if err := writeParticles(filepath.Join(runDir, particlesFile), result.Final.Particles); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"frame"}, result.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, sample := range result.Samples {
		row := []string{strconv.Itoa(sample.Frame)}
		for _, v := range sample.Values {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeParticles(path string, ps []field.Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "vx", "vy", "radius"}); err != nil {
		return err
	}
	for _, p := range ps {
		row := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.VX, 'g', -1, 64),
			strconv.FormatFloat(p.VY, 'g', -1, 64),
			strconv.FormatFloat(p.Radius, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every stored run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.read(runID, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) read(runID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return data, err
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadSamples returns the metric column names and sampled rows of a run.
func (s *Store) LoadSamples(runID string) ([]string, []sim.Sample, error) {
	records, err := s.readCSV(runID, samplesFile)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return []string{}, []sim.Sample{}, nil
	}

	columns := records[0][1:]
	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		// every row has one value per column; missing or bad cells read as 0
		vals := make([]float64, len(columns))
		for i, cell := range record[1:] {
			if i == len(vals) {
				break
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				vals[i] = v
			}
		}
		samples = append(samples, sim.Sample{Frame: frame, Values: vals})
	}

	return columns, samples, nil
}

// LoadField rebuilds the final field of a run from its stored particles.
func (s *Store) LoadField(runID string) (*field.Field, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	records, err := s.readCSV(runID, particlesFile)
	if err != nil {
		return nil, err
	}

	f := &field.Field{
		Width:     meta.Width,
		Height:    meta.Height,
		Params:    meta.Params,
		Style:     field.DefaultStyle(),
		Particles: make([]field.Particle, 0, len(records)),
	}
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue
		}
		var vals [5]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: particle row %d: %w", runID, i, err)
			}
			vals[j] = v
		}
		f.Particles = append(f.Particles, field.Particle{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3], Radius: vals[4]})
	}
	return f, nil
}
