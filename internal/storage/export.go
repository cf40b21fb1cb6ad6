package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/circlebench/internal/frame"
)

type ExportFrame struct {
	Frame     int     `json:"frame"`
	ClearMs   float64 `json:"clear_ms"`
	AdvanceMs float64 `json:"advance_ms"`
	RenderMs  float64 `json:"render_ms"`
	TotalMs   float64 `json:"total_ms"`
}

type ExportData struct {
	RunMetadata
	Frames []ExportFrame `json:"frames"`
}

// Export loads a run and its timings into one document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, timings, err := s.LoadTimings(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{RunMetadata: *meta, Frames: make([]ExportFrame, len(timings))}
	for i, t := range timings {
		data.Frames[i] = ExportFrame{
			Frame:     frames[i],
			ClearMs:   frame.Millis(t.Clear),
			AdvanceMs: frame.Millis(t.Advance),
			RenderMs:  frame.Millis(t.Render),
			TotalMs:   frame.Millis(t.Total()),
		}
	}
	return data, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
