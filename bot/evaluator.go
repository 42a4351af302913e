package bot

import "github.com/plus3/stacker/engine"

// Weights are the coefficients of the linear board score.
type Weights struct {
	AggregateHeight float64 `json:"aggregate_height"`
	CompleteLines   float64 `json:"complete_lines"`
	Holes           float64 `json:"holes"`
	Bumpiness       float64 `json:"bumpiness"`
	// LandingHeight is carried for configuration files but not scored.
	LandingHeight float64 `json:"landing_height"`
	Wells         float64 `json:"wells"`
}

// DefaultWeights returns the tuned coefficients.
func DefaultWeights() Weights {
	return Weights{
		AggregateHeight: -0.510066,
		CompleteLines:   0.760666,
		Holes:           -0.35663,
		Bumpiness:       -0.184483,
		LandingHeight:   0,
		Wells:           0.3,
	}
}

// Metrics are the raw board features the Evaluator weighs.
type Metrics struct {
	// Heights is the distance from the floor to the top filled cell of each
	// column, 0 when the column is empty.
	Heights         [engine.Width]int
	AggregateHeight int
	Holes           int
	CompleteLines   int
	Bumpiness       int
	Wells           int
}

// Evaluator scores boards. Higher is better.
type Evaluator struct {
	Weights Weights
}

// NewEvaluator returns an Evaluator using w.
func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{Weights: w}
}

// minWellDepth is how far below its neighbors a column must sit to count.
const minWellDepth = 3

// Metrics measures b.
func (e *Evaluator) Metrics(b *engine.Board) Metrics {
	var m Metrics
	for col := range engine.Width {
		top := -1
		for row := range engine.Height {
			if !b.Filled(row, col) {
				if top >= 0 {
					m.Holes++
				}
				continue
			}
			if top < 0 {
				top = row
			}
		}
		if top >= 0 {
			m.Heights[col] = engine.Height - top
		}
		m.AggregateHeight += m.Heights[col]
	}

	for row := range engine.Height {
		if b.RowComplete(row) {
			m.CompleteLines++
		}
	}

	for col := range engine.Width - 1 {
		d := m.Heights[col] - m.Heights[col+1]
		if d < 0 {
			d = -d
		}
		m.Bumpiness += d
	}

	for col := range engine.Width {
		h := m.Heights[col]
		var lowest int
		switch col {
		case 0:
			lowest = m.Heights[1]
		case engine.Width - 1:
			lowest = m.Heights[col-1]
		default:
			lowest = min(m.Heights[col-1], m.Heights[col+1])
		}
		if depth := lowest - h; depth >= minWellDepth {
			m.Wells += depth * depth
		}
	}
	return m
}

// Evaluate returns the weighted score of b.
func (e *Evaluator) Evaluate(b *engine.Board) float64 {
	m := e.Metrics(b)
	w := e.Weights
	return w.AggregateHeight*float64(m.AggregateHeight) +
		w.CompleteLines*float64(m.CompleteLines) +
		w.Holes*float64(m.Holes) +
		w.Bumpiness*float64(m.Bumpiness) +
		w.Wells*float64(m.Wells)
}
