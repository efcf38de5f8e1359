// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"github.com/matthewsot/bitwuzla/pp"
	"github.com/matthewsot/bitwuzla/prop"
	"github.com/mitchellh/mapstructure"
)

// BV solver modes.
const (
	BVSolverBitblast = "bitblast"
	BVSolverProp     = "prop"
	BVSolverPreProp  = "preprop"
)

// Options is the full recognised configuration surface.
type Options struct {
	Incremental       bool   `mapstructure:"incremental"`
	ProduceModels     bool   `mapstructure:"produce-models"`
	ProduceUnsatCores bool   `mapstructure:"produce-unsat-cores"`
	Verbosity         uint64 `mapstructure:"verbosity"`
	LogLevel          uint64 `mapstructure:"loglevel"`
	Seed              uint64 `mapstructure:"seed"`

	BVSolver     string `mapstructure:"bv-solver"`
	SatSolver    string `mapstructure:"sat-solver"`
	CrispAddress string `mapstructure:"crisp-address"`
	RewriteLevel uint64 `mapstructure:"rewrite-level"`

	PropNProps              uint64 `mapstructure:"prop-nprops"`
	PropNUpdates            uint64 `mapstructure:"prop-nupdates"`
	PropPathSel             string `mapstructure:"prop-path-sel"`
	PropProbPickInvValue    uint64 `mapstructure:"prop-prob-pick-inv-value"`
	PropProbPickRandomInput uint64 `mapstructure:"prop-prob-pick-random-input"`
	PropConstBits           bool   `mapstructure:"prop-const-bits"`
	PropIneqBounds          bool   `mapstructure:"prop-ineq-bounds"`
	PropSext                bool   `mapstructure:"prop-sext"`
	PropOptLtConcatSext     bool   `mapstructure:"prop-opt-lt-concat-sext"`

	PPContrAnds             bool `mapstructure:"pp-contradicting-ands"`
	PPElimBVExtracts        bool `mapstructure:"pp-elim-bv-extracts"`
	PPEmbeddedConstr        bool `mapstructure:"pp-embedded-constraints"`
	PPFlattenAnd            bool `mapstructure:"pp-flatten-and"`
	PPNormalize             bool `mapstructure:"pp-normalize"`
	PPNormalizeShareAware   bool `mapstructure:"pp-normalize-share-aware"`
	PPSkeletonPreproc       bool `mapstructure:"pp-skeleton-preproc"`
	PPVariableSubst         bool `mapstructure:"pp-variable-subst"`
	PPVariableSubstNormEq   bool `mapstructure:"pp-variable-subst-norm-eq"`
	PPVariableSubstNormIneq bool `mapstructure:"pp-variable-subst-norm-bv-ineq"`
}

// DefaultOptions returns the defaults of every option.
func DefaultOptions() Options {
	return Options{
		BVSolver:                BVSolverBitblast,
		SatSolver:               "xo",
		RewriteLevel:            2,
		PropPathSel:             "essential",
		PropProbPickInvValue:    990,
		PropProbPickRandomInput: 10,
		PPContrAnds:             true,
		PPEmbeddedConstr:        true,
		PPFlattenAnd:            true,
		PPVariableSubst:         true,
	}
}

// OptionKind types an option for the CLI surface.
type OptionKind int

const (
	OptBool OptionKind = iota
	OptUint
	OptMode
	OptString
)

// OptionInfo is the metadata of one option: names, description,
// default, bounds, and modes for mode options.
type OptionInfo struct {
	Short   string
	Long    string
	Desc    string
	Kind    OptionKind
	Default interface{}
	Min     uint64
	Max     uint64
	Modes   []string
}

// Describe enumerates the recognised options.
func Describe() []OptionInfo {
	return []OptionInfo{
		{Short: "i", Long: "incremental", Desc: "enable push/pop and repeated check-sat", Kind: OptBool, Default: false},
		{Short: "m", Long: "produce-models", Desc: "retain SAT assignments for get-value", Kind: OptBool, Default: false},
		{Short: "c", Long: "produce-unsat-cores", Desc: "record assertion provenance for unsat cores", Kind: OptBool, Default: false},
		{Short: "v", Long: "verbosity", Desc: "verbosity level", Kind: OptUint, Default: uint64(0), Min: 0, Max: 4},
		{Short: "l", Long: "loglevel", Desc: "log level", Kind: OptUint, Default: uint64(0), Min: 0, Max: 10},
		{Short: "s", Long: "seed", Desc: "random seed", Kind: OptUint, Default: uint64(0), Min: 0, Max: 1<<63 - 1},
		{Short: "S", Long: "bv-solver", Desc: "bit-vector solver engine", Kind: OptMode, Default: BVSolverBitblast, Modes: []string{BVSolverBitblast, BVSolverProp, BVSolverPreProp}},
		{Short: "E", Long: "sat-solver", Desc: "SAT backend", Kind: OptMode, Default: "xo", Modes: []string{"xo", "crisp"}},
		{Long: "crisp-address", Desc: "crisp server address for the remote SAT backend (@socket or host:port)", Kind: OptString, Default: ""},
		{Short: "r", Long: "rewrite-level", Desc: "rewrite level", Kind: OptUint, Default: uint64(2), Min: 0, Max: 2},
		{Long: "prop-nprops", Desc: "propagation step budget (0: unbounded)", Kind: OptUint, Default: uint64(0), Min: 0, Max: 1<<63 - 1},
		{Long: "prop-nupdates", Desc: "assignment update budget (0: unbounded)", Kind: OptUint, Default: uint64(0), Min: 0, Max: 1<<63 - 1},
		{Long: "prop-path-sel", Desc: "path selection strategy", Kind: OptMode, Default: "essential", Modes: []string{"essential", "random"}},
		{Long: "prop-prob-pick-inv-value", Desc: "probability (permille) of choosing the inverse value", Kind: OptUint, Default: uint64(990), Min: 0, Max: 1000},
		{Long: "prop-prob-pick-random-input", Desc: "probability (permille) of re-picking the input randomly", Kind: OptUint, Default: uint64(10), Min: 0, Max: 1000},
		{Long: "prop-const-bits", Desc: "track constant bits in the propagation solver", Kind: OptBool, Default: false},
		{Long: "prop-ineq-bounds", Desc: "infer bounds from inequalities", Kind: OptBool, Default: false},
		{Long: "prop-sext", Desc: "sign-extension-aware moves", Kind: OptBool, Default: false},
		{Long: "prop-opt-lt-concat-sext", Desc: "optimize ult over concat/sext", Kind: OptBool, Default: false},
		{Long: "pp-contradicting-ands", Desc: "detect contradicting ands", Kind: OptBool, Default: true},
		{Long: "pp-elim-bv-extracts", Desc: "eliminate redundant bit-vector extracts", Kind: OptBool, Default: false},
		{Long: "pp-embedded-constraints", Desc: "substitute embedded constraints", Kind: OptBool, Default: true},
		{Long: "pp-flatten-and", Desc: "flatten top-level conjunctions", Kind: OptBool, Default: true},
		{Long: "pp-normalize", Desc: "normalize arithmetic", Kind: OptBool, Default: false},
		{Long: "pp-normalize-share-aware", Desc: "share-aware normalization", Kind: OptBool, Default: false},
		{Long: "pp-skeleton-preproc", Desc: "boolean skeleton preprocessing", Kind: OptBool, Default: false},
		{Long: "pp-variable-subst", Desc: "variable substitution", Kind: OptBool, Default: true},
		{Long: "pp-variable-subst-norm-eq", Desc: "normalize equalities before substitution", Kind: OptBool, Default: false},
		{Long: "pp-variable-subst-norm-bv-ineq", Desc: "normalize bit-vector inequalities before substitution", Kind: OptBool, Default: false},
	}
}

// FromMap decodes an option map (long names as keys) into Options,
// validating modes and bounds.
func FromMap(in map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, Raise("InvalidOption", "%s", err)
	}
	if err := dec.Decode(in); err != nil {
		return opts, Raise("InvalidOption", "%s", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks modes and numeric bounds.
func (o *Options) Validate() error {
	switch o.BVSolver {
	case BVSolverBitblast, BVSolverProp, BVSolverPreProp:
	default:
		return Raise("InvalidOption", "unknown bv-solver mode %q", o.BVSolver)
	}
	switch o.SatSolver {
	case "", "xo":
	case "crisp":
		if o.CrispAddress == "" {
			return Raise("InvalidOption", "sat-solver crisp requires crisp-address")
		}
	default:
		return Raise("InvalidOption", "unknown sat-solver %q", o.SatSolver)
	}
	if o.RewriteLevel > 2 {
		return Raise("InvalidOption", "rewrite-level %d out of [0, 2]", o.RewriteLevel)
	}
	if o.Verbosity > 4 {
		return Raise("InvalidOption", "verbosity %d out of [0, 4]", o.Verbosity)
	}
	switch o.PropPathSel {
	case "", "essential", "random":
	default:
		return Raise("InvalidOption", "unknown prop-path-sel %q", o.PropPathSel)
	}
	if o.PropProbPickInvValue > 1000 || o.PropProbPickRandomInput > 1000 {
		return Raise("InvalidOption", "propagation probabilities are permille values in [0, 1000]")
	}
	return nil
}

// PPOptions projects the preprocessing toggles.
func (o *Options) PPOptions() pp.Options {
	return pp.Options{
		FlattenAnd:              o.PPFlattenAnd,
		VariableSubst:           o.PPVariableSubst,
		VariableSubstNormEq:     o.PPVariableSubstNormEq,
		VariableSubstNormBVIneq: o.PPVariableSubstNormIneq,
		SkeletonPreproc:         o.PPSkeletonPreproc,
		EmbeddedConstraints:     o.PPEmbeddedConstr,
		ContrAnds:               o.PPContrAnds,
		ElimBVExtracts:          o.PPElimBVExtracts,
		Normalize:               o.PPNormalize,
		NormalizeShareAware:     o.PPNormalizeShareAware,
	}
}

// PropOptions projects the propagation solver configuration.
func (o *Options) PropOptions() prop.Options {
	sel := prop.Essential
	if o.PropPathSel == "random" {
		sel = prop.Random
	}
	return prop.Options{
		NProps:              o.PropNProps,
		NUpdates:            o.PropNUpdates,
		PathSel:             sel,
		ProbPickInvValue:    float64(o.PropProbPickInvValue) / 1000,
		ProbPickRandomInput: float64(o.PropProbPickRandomInput) / 1000,
		ConstBits:           o.PropConstBits,
		IneqBounds:          o.PropIneqBounds,
		Seed:                int64(o.Seed),
	}
}
