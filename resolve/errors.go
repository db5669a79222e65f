package resolve

import (
	"fmt"
	"strings"
)

// Step records one hop in the dependency graph that a ResolutionError's
// path traversed, adapted from the shape of mvs.BuildListError (print the
// chain of requirements to the module where the
// error occurred): each step names the module that was being visited and
// why the walk continued from it ("requires", "requires.private").
type Step struct {
	ModuleID string
	Reason   string
}

// ResolutionError decorates an underlying cause with the stack of graph
// steps that led to it, so a fatal failure deep in the dependency graph
// can be reported with the full chain back to the user's original
// request, per §7's propagation rule.
type ResolutionError struct {
	Err   error
	Stack []Step
}

func (e *ResolutionError) Error() string {
	if len(e.Stack) == 0 {
		return e.Err.Error()
	}

	b := &strings.Builder{}
	for _, s := range e.Stack {
		fmt.Fprintf(b, "%s %s\n\t", s.ModuleID, s.Reason)
	}
	fmt.Fprintf(b, "%v", e.Err)
	return b.String()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// UnknownModuleError reports that the locator found no descriptor
// matching a requested package name.
type UnknownModuleError struct {
	Package string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("package %q not found", e.Package)
}

// VersionMismatchError reports that a resolved module's version did not
// satisfy the requesting predicate.
type VersionMismatchError struct {
	Package string
	Wanted  string // e.g. ">= 1.2"
	Found   string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("requires %s %s but found %s", e.Package, e.Wanted, e.Found)
}

// ConflictError reports that a Conflicts predicate in one module matched
// another module found by the locator. Whether that module is part of the
// resolution graph is not checked.
type ConflictError struct {
	Module      string
	Conflicting string
	Predicate   string // e.g. "< 2.0"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with %s %s", e.Module, e.Conflicting, e.Predicate)
}

// ErrEmptyRequestList is returned when the caller's request list (the
// world module's Requires) is empty.
var ErrEmptyRequestList = fmt.Errorf("no modules requested")
