package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ExportData is the JSON export shape for a stored run.
type ExportData struct {
	ID          string             `json:"id"`
	RingSize    int                `json:"ring_size"`
	Coupling    float64            `json:"coupling"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Seed        int64              `json:"seed"`
	FreqPolicy  string             `json:"freq_policy"`
	PhasePolicy string             `json:"phase_policy"`
	Integrator  string             `json:"integrator"`
	Metrics     map[string]float64 `json:"metrics"`
	Samples     []Sample           `json:"samples"`
}

// ExportJSON writes a run and its series as indented JSON.
func ExportJSON(w io.Writer, meta *RunMeta, samples []Sample) error {
	data := ExportData{
		ID:          meta.ID,
		RingSize:    meta.RingSize,
		Coupling:    meta.Coupling,
		Dt:          meta.Dt,
		Steps:       meta.Steps,
		Seed:        meta.Seed,
		FreqPolicy:  meta.FreqPolicy,
		PhasePolicy: meta.PhasePolicy,
		Integrator:  meta.Integrator,
		Metrics:     meta.Metrics,
		Samples:     samples,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes the diagnostic series as CSV with a header row.
func ExportCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"step", "t", "order_r", "psi", "winding", "variance"}); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.OrderR, 'f', 6, 64),
			strconv.FormatFloat(s.Psi, 'f', 6, 64),
			strconv.Itoa(s.Winding),
			strconv.FormatFloat(s.Variance, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
