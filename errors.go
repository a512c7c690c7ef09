package cember

import "fmt"

// ParseErr reports problems with the content of generated artifacts.
type ParseErr struct {
	Line int // 1-based line number, zero if unknown
	Msg  string
}

func (e *ParseErr) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func newParseErr(line int, format string, a ...interface{}) *ParseErr {
	return &ParseErr{
		Line: line,
		Msg:  fmt.Sprintf(format, a...),
	}
}
