// Package driver is the exposed entry point of spec.md §6: Run(program
// source), which parses, populates the registry, calls main, and turns an
// uncaught exception into a FAULT_ERROR. Grounded on run() in
// original_source/interpreterv4.py and on the module-setup-then-evaluate
// shape of cmd/funxy/main.go's evaluateModule.
package driver

import (
	"fmt"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/evaluator"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// Parser is the external collaborator spec.md §1/§6 names: it turns
// source text into an opaque AST whose root is a `program` node. The
// evaluator package never imports this interface — only the driver does,
// keeping the core's dependency on "how text becomes a tree" at arm's
// length, exactly as spec.md §1 scopes it out of the core.
type Parser interface {
	Parse(source string) (*ast.Node, error)
}

// Options carries the runtime knobs internal/config resolves, kept
// separate from Parser/Host because those are wiring concerns while these
// are tunables with sensible zero-value defaults.
type Options struct {
	MaxCallDepth int
}

// Run parses source with p, validates and executes it against host,
// logging structured run events via klog (kept separate from the
// language's own output, which flows through host). Each call gets a
// fresh uuid correlation ID attached to its log lines, so a batch of runs
// (cmd/brewin's batch mode) can be told apart in logs — grounded on
// google/uuid being a direct teacher dependency, used here for exactly the
// correlation role a request ID plays in a server, adapted to a
// one-shot interpreter run.
func Run(p Parser, source string, host evaluator.Host) error {
	return RunWithOptions(p, source, host, Options{})
}

// RunWithOptions is Run with cmd/brewin's resolved configuration applied.
func RunWithOptions(p Parser, source string, host evaluator.Host, opts Options) error {
	runID := uuid.New().String()
	klog.V(1).Infof("run %s: starting", runID)

	root, err := p.Parse(source)
	if err != nil {
		klog.Errorf("run %s: parse failed: %v", runID, err)
		return hosterr.New(hosterr.NameError, "parse error: %v", err)
	}

	if root.Kind != ast.KindProgram {
		err := hosterr.New(hosterr.NameError, "initial element type is not 'program'")
		klog.Errorf("run %s: %v", runID, err)
		return err
	}

	ev := evaluator.New(host).WithMaxCallDepth(opts.MaxCallDepth)
	for _, fn := range root.List("functions") {
		ev.Registry.Register(fn)
	}

	if !ev.Registry.Has("main") {
		err := hosterr.New(hosterr.NameError, "no main() function found in program")
		klog.Errorf("run %s: %v", runID, err)
		return err
	}

	mainCall := ast.New(ast.KindFcall, map[string]any{"name": "main", "args": []*ast.Node{}})
	thunk, err := ev.Call(mainCall, object.NewEnvironment())
	if err != nil {
		klog.Errorf("run %s: host error: %v", runID, err)
		return err
	}

	result, err := thunk.Force(ev)
	if err != nil {
		klog.Errorf("run %s: host error: %v", runID, err)
		return err
	}

	if exc, ok := result.(*object.ExceptionSignal); ok {
		fault := hosterr.New(hosterr.FaultError, "exception %q was never caught in program", exc.Tag)
		klog.Errorf("run %s: %v", runID, fault)
		logStackTrace(runID, exc.Frames)
		return fault
	}

	klog.V(1).Infof("run %s: completed", runID)
	return nil
}

// logStackTrace logs the call-frame chain an uncaught ExceptionSignal
// unwound through (innermost first), via klog rather than the language's
// own output stream — diagnostic detail a user program never sees,
// mirroring how the teacher's Error.Inspect() renders its StackTrace
// (internal/evaluator/object_control.go) separately from interpreted
// program output.
func logStackTrace(runID string, frames []object.Frame) {
	if len(frames) == 0 {
		return
	}
	for i, f := range frames {
		klog.Errorf("run %s: stack[%d]: %s at %d:%d", runID, i, f.FuncName, f.Line, f.Column)
	}
}

// RunAndReport is a convenience wrapper for CLI entry points: it calls Run
// and, on a HostError, formats it the way the host's error() sink is
// described in spec.md §6 (call terminates the run).
func RunAndReport(p Parser, source string, host evaluator.Host) error {
	return RunAndReportWithOptions(p, source, host, Options{})
}

// RunAndReportWithOptions is RunAndReport with resolved configuration
// applied.
func RunAndReportWithOptions(p Parser, source string, host evaluator.Host, opts Options) error {
	err := RunWithOptions(p, source, host, opts)
	if err == nil {
		return nil
	}
	if herr, ok := err.(*hosterr.HostError); ok {
		return fmt.Errorf("%s: %s", herr.Kind, herr.Message)
	}
	return err
}
