// Command brewin is the CLI entry point: it parses and runs a single
// ".brew" program, or a YAML batch of them, against the tree-walking
// evaluator in internal/evaluator. Grounded on the
// cmd/<tool>/main.go + cmd/<tool>/cmd package split used by the pack's
// cobra-based CLIs (CWBudde-go-dws's cmd/dwscript).
package main

import (
	"fmt"
	"os"

	"github.com/brewinlang/interpreter/cmd/brewin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
