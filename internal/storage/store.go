// Package storage persists solve runs so they can be listed, exported,
// and replayed in the viewer without recomputation.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ebeamlab/belinear"
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
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Method       string    `json:"method"`
	StepSize     float64   `json:"step_size"`
	GammaInitial float64   `json:"gamma_initial"`
	Samples      int       `json:"samples"`
	DetFinal     float64   `json:"det_final"`
}

// Save writes a run directory with metadata.json and the cumulative
// matrix sequence as matrices.csv, one step per row.
func (s *Store) Save(method string, h, gammaInitial float64, ms []belinear.Matrix) (string, error) {
	if len(ms) == 0 {
		return "", fmt.Errorf("storage: empty matrix sequence")
	}

	runID := fmt.Sprintf("%s_%d", method, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		Method:       method,
		StepSize:     h,
		GammaInitial: gammaInitial,
		Samples:      len(ms) + 1,
		DetFinal:     ms[len(ms)-1].Det(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "matrices.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "z", "m11", "m12", "m21", "m22"}); err != nil {
		return "", err
	}
	for i, m := range ms {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(i+1)*h, 'g', 12, 64),
			strconv.FormatFloat(m[0][0], 'g', 17, 64),
			strconv.FormatFloat(m[0][1], 'g', 17, 64),
			strconv.FormatFloat(m[1][0], 'g', 17, 64),
			strconv.FormatFloat(m[1][1], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadMatrices reads a run's cumulative matrix sequence back.
func (s *Store) LoadMatrices(runID string) ([]belinear.Matrix, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "matrices.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []belinear.Matrix{}, nil
	}

	ms := make([]belinear.Matrix, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}
		var vals [4]float64
		ok := true
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(record[2+j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		ms = append(ms, belinear.Matrix{{vals[0], vals[1]}, {vals[2], vals[3]}})
	}
	return ms, nil
}
