package script

import "fmt"

// ResolutionKind classifies label and target-specifier failures.
type ResolutionKind int

const (
	// UndefinedLabel means a referenced label has no declaration.
	UndefinedLabel ResolutionKind = iota
	// DuplicateLabel means a label was declared more than once.
	DuplicateLabel
	// MissingTarget means no target specifier was declared.
	MissingTarget
	// DuplicateTarget means more than one target specifier was declared.
	DuplicateTarget
	// LibInStage means a .lib directive appeared in a stage script.
	LibInStage
	// EventInGlobals means a stage event directive appeared in a globals
	// script.
	EventInGlobals
)

// ResolutionError reports a failure to resolve labels, entry points, or the
// target specifier for a translation unit.
type ResolutionError struct {
	Kind ResolutionKind
	// Name is the offending label name, if any.
	Name string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case UndefinedLabel:
		return fmt.Sprintf("undefined label %q", e.Name)
	case DuplicateLabel:
		return fmt.Sprintf("duplicate label %q", e.Name)
	case MissingTarget:
		return "missing target specifier (.stage or .globals)"
	case DuplicateTarget:
		return "more than one target specifier"
	case LibInStage:
		return ".lib is only allowed in globals scripts"
	case EventInGlobals:
		return "stage entry points are not allowed in globals scripts"
	}
	return "resolution error"
}
