package codegen

import (
	"fmt"
	"io"

	"github.com/niflheim-lang/niflheim/internal/ssa"
)

// emitter wraps an io.Writer with helpers for emitting GAS Intel-syntax
// x86-64 assembly text: same err-sticky-write shape and indent/label/comment
// vocabulary as an LLVM-IR emitter, aimed at a different output dialect.
type emitter struct {
	w   io.Writer
	err error // first write error
}

// emit writes a formatted line with no indentation (directives, labels).
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// emitComment writes a comment line, GAS Intel-syntax style.
func (e *emitter) emitComment(text string) {
	e.emit("  # %s", text)
}

// emitLabel writes a basic block label.
func (e *emitter) emitLabel(fnName string, b *ssa.Block) {
	e.emit("%s:", blockLabel(fnName, b))
}

// emitInst writes an indented instruction line.
func (e *emitter) emitInst(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "  "+format+"\n", args...)
}

// funcLabel returns the assembly symbol for an SSA function.
func funcLabel(fn *ssa.Func) string {
	return "nifl_" + fn.Name
}

// blockLabel returns the assembly label for an SSA block within fn.
func blockLabel(fnName string, b *ssa.Block) string {
	if b.ID == 0 {
		return ".L" + fnName + "_entry"
	}
	return fmt.Sprintf(".L%s_b%d", fnName, b.ID)
}
