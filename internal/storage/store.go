package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/circlebench/internal/bench"
	"github.com/san-kum/circlebench/internal/frame"
)

const (
	metadataFile = "metadata.json"
	timingsFile  = "timings.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scene      string             `json:"scene"`
	Renderer   string             `json:"renderer"`
	Timestamp  time.Time          `json:"timestamp"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	StartFrame int                `json:"start_frame"`
	FrameCount int                `json:"frame_count"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Metrics condenses a benchmark result into the values shown by list.
func Metrics(res *bench.Result) map[string]float64 {
	mean := res.Mean()
	return map[string]float64{
		"mean_clear_ms":   frame.Millis(mean.Clear),
		"mean_advance_ms": frame.Millis(mean.Advance),
		"mean_render_ms":  frame.Millis(mean.Render),
		"mean_total_ms":   frame.Millis(mean.Total()),
		"total_ms":        frame.Millis(res.Total().Total()),
	}
}

// Save writes a benchmark run as <scene>_<renderer>_<unix>. A numeric suffix
// keeps runs started within the same second apart.
func (s *Store) Save(scene string, res *bench.Result) (string, error) {
	ts := s.now()
	base := fmt.Sprintf("%s_%s_%d", scene, res.Renderer, ts.Unix())

	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; ; i++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:         runID,
		Scene:      scene,
		Renderer:   res.Renderer,
		Timestamp:  ts,
		Width:      res.Width,
		Height:     res.Height,
		StartFrame: res.StartFrame,
		FrameCount: len(res.Timings),
		Metrics:    Metrics(res),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, timingsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "clear_ms", "advance_ms", "render_ms", "total_ms"}); err != nil {
		return "", err
	}
	for i, t := range res.Timings {
		row := []string{
			strconv.Itoa(res.StartFrame + i),
			formatMs(t.Clear),
			formatMs(t.Advance),
			formatMs(t.Render),
			formatMs(t.Total()),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func formatMs(d time.Duration) string {
	return strconv.FormatFloat(frame.Millis(d), 'f', 6, 64)
}

// List returns every readable run, oldest first.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTimings reads a run's per-frame timings along with their frame numbers.
func (s *Store) LoadTimings(runID string) ([]int, []frame.Timing, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, timingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []int{}, []frame.Timing{}, nil
	}

	frames := make([]int, 0, len(records)-1)
	timings := make([]frame.Timing, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		n, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		var vals [3]time.Duration
		ok := true
		for j := range vals {
			ms, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = time.Duration(ms * float64(time.Millisecond))
		}
		if !ok {
			continue
		}
		frames = append(frames, n)
		timings = append(timings, frame.Timing{Clear: vals[0], Advance: vals[1], Render: vals[2]})
	}

	return frames, timings, nil
}
