package predict

import (
	"math"

	"github.com/Veraticus/playdash/internal/model"
)

// Model maps a feature vector to a rating. Implementations are immutable and safe
// for concurrent use.
type Model interface {
	Predict(x model.FeatureVector) (float64, error)
	Name() string
}

// Forest averages the outputs of its decision trees.
type Forest struct {
	name  string
	trees []Tree
}

// Name returns the model name.
func (f *Forest) Name() string { return f.name }

// Trees returns the number of trees.
func (f *Forest) Trees() int { return len(f.trees) }

// Predict walks every tree and returns the mean leaf value.
func (f *Forest) Predict(x model.FeatureVector) (float64, error) {
	var sum float64
	for _, t := range f.trees {
		sum += t.eval(x)
	}
	return sum / float64(len(f.trees)), nil
}

func (t Tree) eval(x model.FeatureVector) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Linear is intercept + coefficients · x.
type Linear struct {
	name         string
	coefficients [model.FeatureCount]float64
	intercept    float64
}

// Name returns the model name.
func (l *Linear) Name() string { return l.name }

// Predict returns the linear response.
func (l *Linear) Predict(x model.FeatureVector) (float64, error) {
	y := l.intercept
	for i, c := range l.coefficients {
		y += c * x[i]
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, ErrInvalidModel
	}
	return y, nil
}
