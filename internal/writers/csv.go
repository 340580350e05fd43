package writers

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteFull writes one row per selected molecule: SMILES, the number of
// categories it exercises, then True/False for every category column.
func WriteFull(w io.Writer, rep *Report) error {
	cols := rep.Columns()
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(cols)+2)
	header = append(header, "SMILES", "Count")
	for _, c := range cols {
		header = append(header, string(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, p := range rep.Selection {
		set := rep.Sets[p.Index]
		row[0] = rep.Records[p.Index].Notation
		row[1] = strconv.Itoa(set.Len())
		for i, c := range cols {
			row[i+2] = pyBool(set.Contains(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCounts writes the headerless aggregate report: one "category,count"
// row per category column, counting every selected molecule that exercises it.
func WriteCounts(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	for _, c := range rep.State.Counts(rep.Vocabulary) {
		if err := cw.Write([]string{string(c.ID), strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// pyBool matches the True/False spelling of the label tables this tool
// reads back (see matcher.Table).
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
