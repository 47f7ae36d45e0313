// Package predict loads the trained rating model and turns prediction form input into
// a rating.
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/playdash/internal/encoding"
	"github.com/Veraticus/playdash/internal/model"
)

// Model artifact errors.
var (
	ErrSchemaMismatch = errors.New("model feature schema does not match")
	ErrInvalidModel   = errors.New("invalid model artifact")
)

// Artifact kinds.
const (
	KindForest = "forest"
	KindLinear = "linear"
)

// Artifact is the JSON export of a trained regressor.
type Artifact struct {
	Encodings    map[string]map[string]int `json:"encodings,omitempty"`
	Name         string                    `json:"name"`
	Kind         string                    `json:"kind"`
	Features     []string                  `json:"features"`
	Trees        []Tree                    `json:"trees,omitempty"`
	Coefficients []float64                 `json:"coefficients,omitempty"`
	Intercept    float64                   `json:"intercept,omitempty"`
}

// Tree is one decision tree of a forest. Node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a split or, when Left is -1, a leaf.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// IsLeaf reports whether the node terminates the walk.
func (n Node) IsLeaf() bool {
	return n.Left == -1
}

// ReadArtifact decodes an artifact and checks its feature schema.
func ReadArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := a.checkSchema(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadArtifact reads an artifact from path.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer func() { _ = f.Close() }()

	a, err := ReadArtifact(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// LoadModel reads an artifact and builds its model.
func LoadModel(path string) (Model, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return a.Model()
}

// Model validates the artifact and builds the model it describes.
func (a *Artifact) Model() (Model, error) {
	switch a.Kind {
	case KindForest:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%w: forest has no trees", ErrInvalidModel)
		}
		for i, t := range a.Trees {
			if err := t.validate(); err != nil {
				return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
			}
		}
		return &Forest{name: a.displayName(), trees: a.Trees}, nil

	case KindLinear:
		if len(a.Coefficients) != model.FeatureCount {
			return nil, fmt.Errorf("%w: linear model has %d coefficients, want %d",
				ErrInvalidModel, len(a.Coefficients), model.FeatureCount)
		}
		l := &Linear{name: a.displayName(), intercept: a.Intercept}
		copy(l.coefficients[:], a.Coefficients)
		return l, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidModel, a.Kind)
	}
}

// EncodingTable returns the training-time encodings embedded in the artifact, or nil
// when it carries none.
func (a *Artifact) EncodingTable() (*encoding.Table, error) {
	if len(a.Encodings) == 0 {
		return nil, nil
	}
	t, err := encoding.FromMap(encoding.SourceArtifact, a.Encodings)
	if err != nil {
		return nil, fmt.Errorf("model encodings: %w", err)
	}
	return t, nil
}

func (a *Artifact) checkSchema() error {
	if len(a.Features) != model.FeatureCount {
		return fmt.Errorf("%w: artifact has %d features, want %d",
			ErrSchemaMismatch, len(a.Features), model.FeatureCount)
	}
	for i, name := range a.Features {
		if name != model.FeatureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, want %q",
				ErrSchemaMismatch, i, name, model.FeatureNames[i])
		}
	}
	return nil
}

func (a *Artifact) displayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Kind
}

// validate checks that children come after their parent, which also rules out cycles.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("no nodes")
	}
	for i, n := range t.Nodes {
		if n.IsLeaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= model.FeatureCount {
			return fmt.Errorf("node %d splits on feature %d", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d has child %d out of range", i, child)
			}
		}
	}
	return nil
}
