// Package witness holds the counterexample output format: a Row per
// transition step and the final 0/1-string rendering read by external
// tooling. Row assembly from the verifier's counterexample tree lives in
// the verifier package (spec component "build_witness"); this package only
// owns the data shape and the print format, which spec.md treats as an
// external collaborator's concern.
package witness

import (
	"bytes"
	"fmt"
	"io"

	"github.com/JakubSarnik/pdrtpa/z"
)

// Row is one transition step's input assignment: a (possibly partial)
// sequence of literals over input_vars. A variable with no literal present
// is unconstrained and prints as 0.
type Row []z.Lit

// Result is the verifier's final answer: either Safe (no counterexample
// exists) or a non-empty sequence of Rows driving the circuit from the
// initial state into error.
type Result struct {
	Safe bool
	Rows []Row
}

// Print renders result in the line-oriented format:
//
//	1         (or 0 for Safe)
//	b0
//	<initial_cube as 0/1 string>
//	<row_0 as 0/1 string>
//	...
//	.
//
// The Safe case is exactly "0\nb0\n.\n".
func Print(w io.Writer, inputVars z.Range, initialCube []bool, result Result) error {
	if result.Safe {
		_, err := io.WriteString(w, "0\nb0\n.\n")
		return err
	}
	if _, err := io.WriteString(w, "1\nb0\n"); err != nil {
		return err
	}
	if err := printBits(w, initialCube); err != nil {
		return err
	}
	for _, row := range result.Rows {
		if err := printRow(w, inputVars, row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ".\n")
	return err
}

func printBits(w io.Writer, bits []bool) error {
	var buf bytes.Buffer
	for _, b := range bits {
		if b {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", buf.String())
	return err
}

func printRow(w io.Writer, inputVars z.Range, row Row) error {
	bits := make([]bool, inputVars.Size())
	for _, lit := range row {
		if !inputVars.Contains(lit.Var()) {
			continue
		}
		if lit.IsPos() {
			bits[inputVars.Offset(lit.Var())] = true
		}
	}
	return printBits(w, bits)
}
