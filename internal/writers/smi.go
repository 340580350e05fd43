package writers

import (
	"bufio"
	"io"
)

// WriteSMILES writes the selected molecules, one source line each, in
// selection order.
func WriteSMILES(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)
	for _, rec := range rep.Selected() {
		if _, err := bw.WriteString(rec.Line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
