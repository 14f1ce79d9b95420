package rtpanic

import (
	"fmt"
	"io"
)

// TraceFrame is one entry in the diagnostic trace-frame stack, pushed and
// popped by generated code around calls the compiler can attribute to a
// source location. It is independent of the shadow-stack root frames: a
// function may have root slots with no trace frame, or vice versa.
// Grounded on original_source/runtime/src/panic.c's RtTraceFrame.
type TraceFrame struct {
	FunctionName string
	FilePath     string
	Line         int
	Column       int
	prev         *TraceFrame
}

func (tf *TraceFrame) Prev() *TraceFrame     { return tf.prev }
func (tf *TraceFrame) SetPrev(p *TraceFrame) { tf.prev = p }

// Report writes the diagnostic for p to w: the panic message, the
// innermost trace frame's location if one is on the stack, and the full
// stacktrace walking every frame outward. The format matches
// original_source/runtime/src/panic.c's rt_panic output shape.
func Report(w io.Writer, p *Panic, top *TraceFrame) {
	fmt.Fprintf(w, "panic: %s\n", p.Message)
	if top == nil {
		return
	}
	fmt.Fprintf(w, "location: %s:%d:%d\n", top.FilePath, top.Line, top.Column)
	fmt.Fprintln(w, "stacktrace:")
	for f := top; f != nil; f = f.prev {
		fmt.Fprintf(w, "  %s (%s:%d:%d)\n", f.FunctionName, f.FilePath, f.Line, f.Column)
	}
}

// Guard recovers a *Panic escaping fn, reports it to w, and returns the
// process exit code: 0 on normal return, 1 on an
// explicit panic, 2 on any other runtime-raised panic. Non-Panic values
// (a genuine Go bug in the runtime itself) are re-panicked rather than
// swallowed.
func Guard(w io.Writer, traceTop func() *TraceFrame, fn func()) (exitCode int) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		p, ok := r.(*Panic)
		if !ok {
			panic(r)
		}
		Report(w, p, traceTop())
		if p.Kind == KindExplicit {
			exitCode = 1
		} else {
			exitCode = 2
		}
	}()
	fn()
	return 0
}
