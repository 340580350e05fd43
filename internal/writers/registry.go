// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Report kinds.
const (
	KindSMILES = "smiles"
	KindFull   = "full"
	KindCounts = "counts"
)

// Renderers maps report kind → renderer. Register replaces entries.
var Renderers = map[string]func(io.Writer, *Report) error{
	KindSMILES: WriteSMILES,
	KindFull:   WriteFull,
	KindCounts: WriteCounts,
}

func Register(kind string, fn func(io.Writer, *Report) error) { Renderers[kind] = fn }

// Render dispatches to the renderer registered for kind.
func Render(kind string, w io.Writer, rep *Report) error {
	fn, ok := Renderers[kind]
	if !ok {
		return fmt.Errorf("unknown report kind %q (have %v)", kind, kinds())
	}
	return fn(w, rep)
}

func kinds() []string {
	out := make([]string, 0, len(Renderers))
	for k := range Renderers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
