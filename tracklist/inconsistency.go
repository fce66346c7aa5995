package tracklist

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// InconsistencyError reports a violated structural precondition, such as
// grouping channels that are not contiguous in the list. These are programmer
// errors: continuing would leave the grouping invariants broken, so the
// offending call panics with one of these instead of returning.
type InconsistencyError struct {
	File string
	Line int
	Msg  string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s:%d: inconsistency: %s", filepath.Base(e.File), e.Line, e.Msg)
}

func inconsistencyf(format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	panic(&InconsistencyError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)})
}
