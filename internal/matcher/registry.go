package matcher

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"molcover/internal/config"
)

// Backend kinds selectable on the command line.
const (
	KindRules = "rules"
	KindTable = "table"
	KindExec  = "exec"
)

var ErrUnknownKind = errors.New("unknown categorizer")

// Options carries everything any backend constructor may need.
type Options struct {
	Kind        string
	RulesFile   string        // rules: viper config path ("" = $MOLCOVER_RULES or embedded)
	LabelsFile  string        // table: label CSV
	Command     string        // exec: labeller command line
	ExecTimeout time.Duration // exec: per-molecule deadline
}

// Backend registry (kind → constructor). Last registration wins.
var backends = map[string]func(Options) (Backend, error){
	KindRules: func(o Options) (Backend, error) {
		rs, err := config.LoadRules(o.RulesFile)
		if err != nil {
			return nil, err
		}
		return NewRules(rs)
	},
	KindTable: func(o Options) (Backend, error) {
		if o.LabelsFile == "" {
			return nil, errors.New("table categorizer requires a labels file")
		}
		return LoadTable(o.LabelsFile)
	},
	KindExec: func(o Options) (Backend, error) {
		return NewExec(o.Command, o.ExecTimeout)
	},
}

// Register adds or replaces a backend constructor.
func Register(kind string, fn func(Options) (Backend, error)) { backends[kind] = fn }

// Kinds lists registered backend kinds, sorted.
func Kinds() []string {
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Open constructs the backend named by o.Kind and wraps it in an Adapter.
func Open(o Options, opts ...Option) (*Adapter, error) {
	fn, ok := backends[o.Kind]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownKind, o.Kind, Kinds())
	}
	b, err := fn(o)
	if err != nil {
		return nil, fmt.Errorf("%s categorizer: %w", o.Kind, err)
	}
	return NewAdapter(b, opts...), nil
}
