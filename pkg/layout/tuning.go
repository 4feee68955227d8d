package layout

import (
	"github.com/BurntSushi/toml"

	"github.com/erdcraft/erdcraft/pkg/errors"
)

// Tuning collects the empirically chosen layout constants. The thresholds
// are configuration, not invariants: larger node counts switch to vertical
// stacking, but the exact cut-over points carry no semantic meaning and may
// be adjusted per deployment via a TOML file.
type Tuning struct {
	// FlatVerticalThreshold is the node count above which a flat layout
	// stacks ranks vertically instead of left-to-right.
	FlatVerticalThreshold int `toml:"flat_vertical_threshold"`
	// GroupVerticalThreshold is the member count above which a group's
	// internal layout goes vertical.
	GroupVerticalThreshold int `toml:"group_vertical_threshold"`
	// FocusVerticalThreshold is the subgraph size above which a focus
	// layout goes vertical.
	FocusVerticalThreshold int `toml:"focus_vertical_threshold"`

	// RankTolerance is the maximum primary-axis distance between two nodes
	// that the crossing minimizer still considers to be in the same rank.
	RankTolerance float64 `toml:"rank_tolerance"`
	// ExhaustiveLimit is the largest rank size the crossing minimizer
	// optimizes by full permutation enumeration. Above it the barycenter
	// heuristic is used. 7! = 5040 keeps the exact search bounded.
	ExhaustiveLimit int `toml:"exhaustive_limit"`
	// MinimizerPasses is the number of full passes the crossing minimizer
	// makes over all ranks.
	MinimizerPasses int `toml:"minimizer_passes"`
	// OrderingSweeps is the number of up/down barycenter sweeps the layered
	// layout uses for its coarse within-rank ordering.
	OrderingSweeps int `toml:"ordering_sweeps"`

	// PackFactor scales sqrt(total block area) into the target shelf width
	// used when packing group blocks.
	PackFactor float64 `toml:"pack_factor"`
	// PackMinWidth is the floor of the target shelf width.
	PackMinWidth float64 `toml:"pack_min_width"`
	// PackGap is the padding between packed group blocks.
	PackGap float64 `toml:"pack_gap"`

	// Spacing is the ordered table of node/rank gaps. The first step whose
	// MaxNodes covers the graph's node count wins; a step with MaxNodes 0
	// is unbounded and should come last.
	Spacing []SpacingStep `toml:"spacing"`
}

// SpacingStep is one discrete spacing level: graphs up to MaxNodes nodes use
// these gaps. Gaps grow with node count so dense diagrams stay readable.
type SpacingStep struct {
	MaxNodes int     `toml:"max_nodes"`
	NodeGap  float64 `toml:"node_gap"`
	RankGap  float64 `toml:"rank_gap"`
}

// DefaultTuning returns the built-in constants.
func DefaultTuning() Tuning {
	return Tuning{
		FlatVerticalThreshold:  25,
		GroupVerticalThreshold: 6,
		FocusVerticalThreshold: 8,
		RankTolerance:          60,
		ExhaustiveLimit:        7,
		MinimizerPasses:        3,
		OrderingSweeps:         4,
		PackFactor:             1.8,
		PackMinWidth:           1600,
		PackGap:                60,
		Spacing: []SpacingStep{
			{MaxNodes: 10, NodeGap: 40, RankGap: 90},
			{MaxNodes: 25, NodeGap: 60, RankGap: 130},
			{MaxNodes: 50, NodeGap: 80, RankGap: 170},
			{MaxNodes: 0, NodeGap: 100, RankGap: 220},
		},
	}
}

// LoadTuning reads a TOML tuning file and overlays it on the defaults, so a
// file only needs to name the values it changes.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "load tuning file %s", path)
	}
	if err := t.validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.ExhaustiveLimit < 1 {
		return errors.New(errors.ErrCodeInvalidTuning, "exhaustive_limit must be >= 1, got %d", t.ExhaustiveLimit)
	}
	if t.RankTolerance <= 0 {
		return errors.New(errors.ErrCodeInvalidTuning, "rank_tolerance must be positive, got %g", t.RankTolerance)
	}
	if t.PackFactor <= 0 {
		return errors.New(errors.ErrCodeInvalidTuning, "pack_factor must be positive, got %g", t.PackFactor)
	}
	if len(t.Spacing) == 0 {
		return errors.New(errors.ErrCodeInvalidTuning, "spacing table must not be empty")
	}
	return nil
}

// spacing returns the node and rank gaps for a graph of n nodes.
func (t Tuning) spacing(n int) (nodeGap, rankGap float64) {
	for _, s := range t.Spacing {
		if s.MaxNodes == 0 || n <= s.MaxNodes {
			return s.NodeGap, s.RankGap
		}
	}
	last := t.Spacing[len(t.Spacing)-1]
	return last.NodeGap, last.RankGap
}

// flatOrientation picks the rank-stacking axis for a flat layout of n nodes.
func (t Tuning) flatOrientation(n int) Orientation {
	if n > t.FlatVerticalThreshold {
		return Vertical
	}
	return Horizontal
}

// groupOrientation picks the axis for a group's internal layout.
func (t Tuning) groupOrientation(members int) Orientation {
	if members > t.GroupVerticalThreshold {
		return Vertical
	}
	return Horizontal
}

// focusOrientation picks the axis for a focus subgraph of n nodes.
func (t Tuning) focusOrientation(n int) Orientation {
	if n > t.FocusVerticalThreshold {
		return Vertical
	}
	return Horizontal
}
