package scoring

import (
	"math"

	"github.com/RyanBlaney/prosodia/algorithms/common"
	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/logging"
)

// Weights distributes the final score across the four curve sub-scores.
// The components must sum to 1.0; construction fails otherwise rather
// than renormalizing, so a miscounted weight table is caught once at
// setup instead of silently skewing every score.
type Weights struct {
	Alignment      float64 `json:"alignment"`
	PitchCloseness float64 `json:"pitch_closeness"`
	Contour        float64 `json:"contour"`
	Range          float64 `json:"range"`
}

// NewWeights validates and returns a weight table
func NewWeights(alignment, pitchCloseness, contour, rng float64) (Weights, error) {
	w := Weights{
		Alignment:      alignment,
		PitchCloseness: pitchCloseness,
		Contour:        contour,
		Range:          rng,
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// DefaultWeights returns the standard score weighting
func DefaultWeights() Weights {
	return Weights{
		Alignment:      0.3,
		PitchCloseness: 0.3,
		Contour:        0.2,
		Range:          0.2,
	}
}

// Validate checks that all weights are non-negative and sum to 1.0
func (w Weights) Validate() error {
	if w.Alignment < 0 || w.PitchCloseness < 0 || w.Contour < 0 || w.Range < 0 {
		return &pitch.ConfigError{Field: "weights", Reason: "components must be non-negative"}
	}
	sum := w.Alignment + w.PitchCloseness + w.Contour + w.Range
	if math.Abs(sum-1.0) > 1e-9 {
		return &pitch.ConfigError{Field: "weights", Reason: "components must sum to 1.0"}
	}
	return nil
}

// ComparatorConfig tunes the curve alignment
type ComparatorConfig struct {
	PitchTolerance   float64 `json:"pitch_tolerance"`   // Free deviation per aligned pair, in normalized units
	StepPenalty      float64 `json:"step_penalty"`      // Extra cost of stretching one sequence
	Strictness       float64 `json:"strictness"`        // Decay rate of the pitch closeness score
	DirectionEpsilon float64 `json:"direction_epsilon"` // Moves smaller than this count as flat
	Weights          Weights `json:"weights"`
}

// DefaultComparatorConfig returns standard comparison settings
func DefaultComparatorConfig() ComparatorConfig {
	return ComparatorConfig{
		PitchTolerance:   1.0,
		StepPenalty:      0.5,
		Strictness:       2.0,
		DirectionEpsilon: 0.05,
		Weights:          DefaultWeights(),
	}
}

// Validate checks the comparator configuration
func (c ComparatorConfig) Validate() error {
	if c.PitchTolerance <= 0 {
		return &pitch.ConfigError{Field: "pitch_tolerance", Reason: "must be positive"}
	}
	if c.StepPenalty < 0 {
		return &pitch.ConfigError{Field: "step_penalty", Reason: "must be non-negative"}
	}
	if c.Strictness <= 0 {
		return &pitch.ConfigError{Field: "strictness", Reason: "must be positive"}
	}
	if c.DirectionEpsilon < 0 {
		return &pitch.ConfigError{Field: "direction_epsilon", Reason: "must be non-negative"}
	}
	return c.Weights.Validate()
}

// Result carries the overall score and the sub-scores that produced it
type Result struct {
	Score          float64 `json:"score"` // 0-100
	Alignment      float64 `json:"alignment"`
	PitchCloseness float64 `json:"pitch_closeness"`
	Contour        float64 `json:"contour"`
	Range          float64 `json:"range"`
	PathLength     int     `json:"path_length"`
}

// Comparator aligns two normalized pitch curves with dynamic time
// warping and scores their similarity. The DP matrix is reused across
// calls; a Comparator is not safe for concurrent use.
type Comparator struct {
	config ComparatorConfig
	cost   []float64
	path   [][2]int
	logger logging.Logger
}

// NewComparator creates a curve comparator
func NewComparator(config ComparatorConfig) (*Comparator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Comparator{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "dtw_comparator",
		}),
	}, nil
}

// Compare aligns the reference and user curves and returns the scored
// result. Sequences with fewer than 2 points score 0 without running
// the alignment.
func (c *Comparator) Compare(reference, user []float64) Result {
	if len(reference) < 2 || len(user) < 2 {
		return Result{}
	}

	finalCost := c.fillMatrix(reference, user)
	c.backtrack(reference, user)

	n := len(reference)
	m := len(user)
	longest := n
	if m > longest {
		longest = m
	}

	result := Result{
		Alignment:      1.0 - common.Clamp01(finalCost/(float64(longest)*c.config.PitchTolerance)),
		PitchCloseness: c.pitchCloseness(reference, user),
		Contour:        c.contourAgreement(reference, user),
		Range:          rangeSimilarity(reference, user),
		PathLength:     len(c.path),
	}

	w := c.config.Weights
	result.Score = 100.0 * (w.Alignment*result.Alignment +
		w.PitchCloseness*result.PitchCloseness +
		w.Contour*result.Contour +
		w.Range*result.Range)

	c.logger.Debug("curves compared", logging.Fields{
		"score":       result.Score,
		"path_length": result.PathLength,
	})

	return result
}

// fillMatrix runs the DP recurrence and returns the final path cost.
// The matrix is stored flattened, row-major, (n+1) x (m+1).
func (c *Comparator) fillMatrix(a, b []float64) float64 {
	n := len(a)
	m := len(b)
	size := (n + 1) * (m + 1)
	if cap(c.cost) < size {
		c.cost = make([]float64, size)
	}
	cost := c.cost[:size]

	width := m + 1
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	cost[0] = 0.0

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			local := math.Abs(a[i-1]-b[j-1]) / c.config.PitchTolerance
			best := cost[(i-1)*width+(j-1)]
			if up := cost[(i-1)*width+j] + c.config.StepPenalty; up < best {
				best = up
			}
			if left := cost[i*width+(j-1)] + c.config.StepPenalty; left < best {
				best = left
			}
			cost[i*width+j] = local + best
		}
	}

	return cost[n*width+m]
}

// backtrack recovers the alignment path into c.path, ordered from the
// start of both sequences. Entries are zero-based point indices.
func (c *Comparator) backtrack(a, b []float64) {
	n := len(a)
	m := len(b)
	width := m + 1
	cost := c.cost[:(n+1)*(m+1)]

	c.path = c.path[:0]
	i, j := n, m
	for i > 0 && j > 0 {
		c.path = append(c.path, [2]int{i - 1, j - 1})
		if i == 1 && j == 1 {
			break
		}

		diag := cost[(i-1)*width+(j-1)]
		up := cost[(i-1)*width+j] + c.config.StepPenalty
		left := cost[i*width+(j-1)] + c.config.StepPenalty

		switch {
		case diag <= up && diag <= left:
			i--
			j--
		case up <= left:
			i--
		default:
			j--
		}
	}

	// Reverse in place so the path runs start to end
	for lo, hi := 0, len(c.path)-1; lo < hi; lo, hi = lo+1, hi-1 {
		c.path[lo], c.path[hi] = c.path[hi], c.path[lo]
	}
}

func (c *Comparator) pitchCloseness(a, b []float64) float64 {
	if len(c.path) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, pair := range c.path {
		sum += math.Abs(a[pair[0]] - b[pair[1]])
	}
	meanDiff := sum / float64(len(c.path))

	return math.Exp(-c.config.Strictness * meanDiff)
}

// contourAgreement is the fraction of path steps where both curves
// moved the same way: rising, falling, or flat within epsilon.
func (c *Comparator) contourAgreement(a, b []float64) float64 {
	if len(c.path) < 2 {
		return 0.0
	}

	agree := 0
	steps := len(c.path) - 1
	for s := 0; s < steps; s++ {
		da := a[c.path[s+1][0]] - a[c.path[s][0]]
		db := b[c.path[s+1][1]] - b[c.path[s][1]]
		if direction(da, c.config.DirectionEpsilon) == direction(db, c.config.DirectionEpsilon) {
			agree++
		}
	}

	return float64(agree) / float64(steps)
}

func direction(delta, epsilon float64) int {
	switch {
	case delta > epsilon:
		return 1
	case delta < -epsilon:
		return -1
	default:
		return 0
	}
}

func rangeSimilarity(a, b []float64) float64 {
	spreadA := spread(a)
	spreadB := spread(b)

	if spreadA < 1e-12 && spreadB < 1e-12 {
		return 1.0
	}
	if spreadA < 1e-12 || spreadB < 1e-12 {
		return 0.0
	}

	if spreadA < spreadB {
		return spreadA / spreadB
	}
	return spreadB / spreadA
}

func spread(values []float64) float64 {
	min := values[0]
	max := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
