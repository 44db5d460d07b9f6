package trace

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/geom"
)

// ErrNoHistory is returned by FromResult for runs without WithHistory.
var ErrNoHistory = errors.New("trace: result has no iteration history")

// Meta describes the run a trace was taken from.
type Meta struct {
	Engine    string
	Workers   int
	MaxIters  int
	Tolerance float64
}

// Trace is the persisted form of a run.
type Trace struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Engine    string    `json:"engine,omitempty"`
	Workers   int       `json:"workers,omitempty"`
	K         int       `json:"k"`
	MaxIters  int       `json:"max_iters"`
	Tolerance float64   `json:"tolerance"`
	Converged bool      `json:"converged"`

	Points     [][2]float64 `json:"points"`
	Initial    [][2]float64 `json:"initial"`
	Iterations []Iteration  `json:"iterations"`
}

// Iteration is the state after one assignment and update step.
type Iteration struct {
	Centroids [][2]float64 `json:"centroids"`
	Labels    []int        `json:"labels"`
	Shift     float64      `json:"shift"`
}

// FromResult builds a trace from a run made with lloyd.WithHistory.
// points must be the slice the run was given.
func FromResult(points []geom.Point, res *lloyd.Result, meta Meta) (*Trace, error) {
	if res == nil || len(res.History) == 0 {
		return nil, ErrNoHistory
	}

	t := &Trace{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Engine:     meta.Engine,
		Workers:    meta.Workers,
		K:          res.K(),
		MaxIters:   meta.MaxIters,
		Tolerance:  meta.Tolerance,
		Converged:  res.Converged,
		Points:     pairs(points),
		Initial:    pairs(res.History[0].Centroids),
		Iterations: make([]Iteration, 0, len(res.History)-1),
	}
	for _, s := range res.History[1:] {
		t.Iterations = append(t.Iterations, Iteration{
			Centroids: pairs(s.Centroids),
			Labels:    slices.Clone(s.Assignments),
			Shift:     s.Shift,
		})
	}
	return t, nil
}

// PointSet returns the traced input points.
func (t *Trace) PointSet() []geom.Point {
	return points(t.Points)
}

// Final returns the centroid set after the last iteration, or the initial
// centroids when no iteration ran.
func (t *Trace) Final() []geom.Point {
	if len(t.Iterations) == 0 {
		return points(t.Initial)
	}
	return points(t.Iterations[len(t.Iterations)-1].Centroids)
}

func pairs(ps []geom.Point) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Pair()
	}
	return out
}

func points(prs [][2]float64) []geom.Point {
	out := make([]geom.Point, len(prs))
	for i, pr := range prs {
		out[i] = geom.FromPair(pr)
	}
	return out
}
