package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/stacker/engine"
)

type Report struct {
	// Configuration
	Duration      time.Duration
	Games         int
	Workers       int
	Seed          uint64
	MaxPieces     int
	MaxCandidates int

	// Results
	TotalTime      time.Duration
	Results        []GameResult
	Totals         Totals
	StepTime       Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// GameResult is the outcome of one self-played game.
type GameResult struct {
	Index   int
	Seed    uint64
	Started bool
	Pieces  int
	Score   engine.Score
	State   engine.State
	Stuck   bool
	Spins   int
	Minis   int
	Perfect int
	Tetris  int
	Steps   []time.Duration
}

type Totals struct {
	Played    int
	Pieces    int
	Lines     int
	Points    int
	BestScore int
	TopOuts   int
	Stuck     int
	Spins     int
	Minis     int
	Perfect   int
	Tetris    int
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Summarize folds the per-game results into Totals and StepTime.
func (r *Report) Summarize() {
	r.Totals = Totals{}
	r.StepTime.Samples = r.StepTime.Samples[:0]
	for _, res := range r.Results {
		if !res.Started {
			continue
		}
		t := &r.Totals
		t.Played++
		t.Pieces += res.Pieces
		t.Lines += res.Score.Lines
		t.Points += res.Score.Points
		t.BestScore = max(t.BestScore, res.Score.Points)
		if res.State == engine.GameOver {
			t.TopOuts++
		}
		if res.Stuck {
			t.Stuck++
		}
		t.Spins += res.Spins
		t.Minis += res.Minis
		t.Perfect += res.Perfect
		t.Tetris += res.Tetris
		r.StepTime.Samples = append(r.StepTime.Samples, res.Steps...)
	}
	r.StepTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Stacker Self-Play Report

## Run Configuration
- **Time Limit:** {{.Duration}}
- **Games:** {{.Games}} ({{.Workers}} workers)
- **Base Seed:** {{.Seed}}
- **Piece Limit:** {{if .MaxPieces}}{{.MaxPieces}}{{else}}none{{end}}
- **Candidate Cap:** {{.MaxCandidates}}

## Results
- **Games Played:** {{.Totals.Played}}
- **Top Outs:** {{.Totals.TopOuts}}
- **Stuck:** {{.Totals.Stuck}}
- **Pieces:** {{.Totals.Pieces}} ({{rate .Totals.Pieces .TotalTime}} pieces/s)
- **Lines:** {{.Totals.Lines}}
- **Points:** {{.Totals.Points}} (best game {{.Totals.BestScore}})
- **Four-line Clears:** {{.Totals.Tetris}}
- **T-Spins:** {{.Totals.Spins}} full, {{.Totals.Minis}} mini
- **Perfect Clears:** {{.Totals.Perfect}}
- **Total Time:** {{.TotalTime}}
- **Step Time (per piece):**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Games
{{range .Results}}{{if .Started}}- #{{.Index}} seed={{.Seed}} pieces={{.Pieces}} lines={{.Score.Lines}} level={{.Score.Level}} points={{.Score.Points}} state={{.State}}{{if .Stuck}} (stuck){{end}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"rate": func(n int, d time.Duration) string {
			if d <= 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.1f", float64(n)/d.Seconds())
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
