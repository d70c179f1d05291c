package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/sim"
)

type ExportData struct {
	Run       RunMetadata      `json:"run"`
	Columns   []string         `json:"columns"`
	Samples   []sim.Sample     `json:"samples"`
	Particles []field.Particle `json:"particles,omitempty"`
}

// ExportJSON writes a stored run, samples and final particles included, to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	columns, samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: columns,
		Samples: samples,
	}
	if f, err := s.LoadField(runID); err == nil {
		data.Particles = f.Particles
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
