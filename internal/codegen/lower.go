package codegen

import (
	"fmt"
	"strings"

	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/ssa"
	"github.com/niflheim-lang/niflheim/internal/types"
)

// funcGen holds the state needed to lower one SSA function to assembly
// text.
type funcGen struct {
	e      *emitter
	fn     *ssa.Func
	fr     *frame
	sizes  *types.Sizes
	cfg    Config
	strIdx int
	fltIdx int
	rodata []string // accumulated .rodata lines, emitted after the function body
}

func (g *funcGen) lowerFunc() {
	label := funcLabel(g.fn)
	g.e.emit("%s:", label)
	g.emitPrologue()

	for _, b := range g.fn.Blocks {
		if b.ID != 0 {
			g.e.emitLabel(label, b)
		}
		g.lowerBlock(b)
	}

	if len(g.rodata) > 0 {
		g.e.emitLine()
		g.e.emit(".section .rodata")
		for _, line := range g.rodata {
			g.e.emit("%s", line)
		}
		g.e.emit(".text")
	}
}

// emitPrologue reserves the stack frame, saves callee-saved registers the
// function body will clobber, and wires the activation's root frame onto
// the shadow stack: rt_thread_state, rt_root_frame_init, rt_push_roots.
// Every return/exit path undoes this in the matching order (rt_pop_roots,
// restore registers, leave).
func (g *funcGen) emitPrologue() {
	e, fr := g.e, g.fr
	e.emitInst("push rbp")
	e.emitInst("mov rbp, rsp")
	e.emitInst("sub rsp, %d", fr.totalSize)
	e.emitInst("mov %s, r12", rbpOperand(fr.r12SaveOffset))
	e.emitComment("acquire thread state and wire this activation's root frame")
	e.emitInst("call %s", rtabi.FnThreadState)
	e.emitInst("mov r12, rax")
	e.emitInst("mov %s, r12", rtabi.IntArgRegs[0])
	e.emitInst("lea %s, %s", rtabi.IntArgRegs[1], rbpOperand(fr.headerOffset()))
	e.emitInst("mov %s, %d", rtabi.IntArgRegs[2], fr.rootCount)
	e.emitInst("call %s", rtabi.FnRootFrameInit)
	e.emitInst("mov %s, r12", rtabi.IntArgRegs[0])
	e.emitInst("lea %s, %s", rtabi.IntArgRegs[1], rbpOperand(fr.headerOffset()))
	e.emitInst("call %s", rtabi.FnPushRoots)

	g.spillIncomingArgs()
}

// spillIncomingArgs copies each OpArg value out of its SysV argument
// register into its home slot, the same "spill parameters to allocas on
// entry" pattern an LLVM emitter uses.
func (g *funcGen) spillIncomingArgs() {
	for _, v := range g.fn.Entry.Values {
		if v.Op != ssa.OpArg {
			continue
		}
		idx := int(v.AuxInt)
		if argClass(v.Type) == rtabi.ArgFloat {
			g.e.emitInst("movsd %s, xmm%d", g.fr.addr(v), idx)
		} else if idx < len(rtabi.IntArgRegs) {
			g.e.emitInst("mov %s, %s", g.fr.addr(v), rtabi.IntArgRegs[idx])
		} else {
			g.e.emitComment(fmt.Sprintf("arg %d: stack-spilled arguments beyond the register file are unsupported in v0.1", idx))
		}
	}
}

func (g *funcGen) emitEpilogue() {
	e, fr := g.e, g.fr
	e.emitInst("mov %s, r12", rtabi.IntArgRegs[0])
	e.emitInst("lea %s, %s", rtabi.IntArgRegs[1], rbpOperand(fr.headerOffset()))
	e.emitInst("call %s", rtabi.FnPopRoots)
	e.emitInst("mov r12, %s", rbpOperand(fr.r12SaveOffset))
	e.emitInst("leave")
	e.emitInst("ret")
}

func (g *funcGen) lowerBlock(b *ssa.Block) {
	for _, v := range b.Values {
		if v.Op == ssa.OpArg || v.Op == ssa.OpPhi {
			continue // OpArg handled in the prologue; OpPhi via predecessor copies below
		}
		g.lowerValue(v)
	}
	g.lowerPhiCopies(b)
	g.lowerTerminator(b)
}

// lowerPhiCopies inserts, just before b's terminator, a copy into every
// phi value of a successor block whose corresponding predecessor is b -
// the standard "critical-edge-free" phi lowering for an already-SSA CFG.
func (g *funcGen) lowerPhiCopies(b *ssa.Block) {
	for _, succ := range b.Succs {
		predIdx := -1
		for i, p := range succ.Preds {
			if p == b {
				predIdx = i
				break
			}
		}
		if predIdx < 0 {
			continue
		}
		for _, v := range succ.Values {
			if v.Op != ssa.OpPhi || predIdx >= len(v.Args) {
				continue
			}
			g.copyValue(v.Args[predIdx], v)
		}
	}
}

func (g *funcGen) copyValue(src, dst *ssa.Value) {
	if argClass(dst.Type) == rtabi.ArgFloat {
		g.e.emitInst("movsd xmm0, %s", g.fr.addr(src))
		g.e.emitInst("movsd %s, xmm0", g.fr.addr(dst))
		return
	}
	g.e.emitInst("mov rax, %s", g.fr.addr(src))
	g.e.emitInst("mov %s, rax", g.fr.addr(dst))
}

func (g *funcGen) lowerTerminator(b *ssa.Block) {
	e := g.e
	label := funcLabel(g.fn)
	switch b.Kind {
	case ssa.BlockPlain:
		if len(b.Succs) == 1 {
			e.emitInst("jmp %s", blockLabel(label, b.Succs[0]))
		}

	case ssa.BlockIf:
		cond := b.Controls[0]
		e.emitInst("mov al, %s", g.fr.addr(cond))
		e.emitInst("test al, al")
		e.emitInst("jnz %s", blockLabel(label, b.Succs[0]))
		e.emitInst("jmp %s", blockLabel(label, b.Succs[1]))

	case ssa.BlockReturn:
		if len(b.Controls) > 0 && b.Controls[0] != nil {
			v := b.Controls[0]
			if argClass(v.Type) == rtabi.ArgFloat {
				e.emitInst("movsd xmm0, %s", g.fr.addr(v))
			} else {
				e.emitInst("mov rax, %s", g.fr.addr(v))
			}
		}
		g.emitEpilogue()

	case ssa.BlockExit:
		g.emitEpilogue()
	}
}

func (g *funcGen) lowerValue(v *ssa.Value) {
	e, fr := g.e, g.fr
	dst := fr.addr(v)

	switch v.Op {
	case ssa.OpConst64:
		e.emitInst("mov qword %s, %d", dst, v.AuxInt)
	case ssa.OpConstBool:
		e.emitInst("mov qword %s, %d", dst, v.AuxInt)
	case ssa.OpConstNil:
		e.emitInst("mov qword %s, 0", dst)
	case ssa.OpConstFloat:
		label := g.internFloat(v.AuxFloat)
		e.emitInst("movsd xmm0, [rip + %s]", label)
		e.emitInst("movsd %s, xmm0", dst)
	case ssa.OpConstString:
		g.lowerConstString(v)

	case ssa.OpAdd64, ssa.OpSub64, ssa.OpMul64:
		g.emitIntBinOp(v)
	case ssa.OpDiv64:
		g.emitDivMod(v, false)
	case ssa.OpMod64:
		g.emitDivMod(v, true)
	case ssa.OpNeg64:
		e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
		e.emitInst("neg rax")
		e.emitInst("mov %s, rax", dst)

	case ssa.OpAddF64, ssa.OpSubF64, ssa.OpMulF64, ssa.OpDivF64:
		g.emitFloatBinOp(v)
	case ssa.OpNegF64:
		e.emitInst("movsd xmm0, %s", fr.addr(v.Args[0]))
		e.emitInst("xorpd xmm1, xmm1")
		e.emitInst("subsd xmm1, xmm0")
		e.emitInst("movsd %s, xmm1", dst)

	case ssa.OpEq64, ssa.OpNeq64, ssa.OpLt64, ssa.OpLeq64, ssa.OpGt64, ssa.OpGeq64,
		ssa.OpEqPtr, ssa.OpNeqPtr:
		g.emitIntCmp(v)
	case ssa.OpEqF64, ssa.OpNeqF64, ssa.OpLtF64, ssa.OpLeqF64, ssa.OpGtF64, ssa.OpGeqF64:
		g.emitFloatCmp(v)

	case ssa.OpNot:
		e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
		e.emitInst("xor rax, 1")
		e.emitInst("mov %s, rax", dst)
	case ssa.OpAndBool:
		e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
		e.emitInst("and rax, %s", fr.addr(v.Args[1]))
		e.emitInst("mov %s, rax", dst)
	case ssa.OpOrBool:
		e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
		e.emitInst("or rax, %s", fr.addr(v.Args[1]))
		e.emitInst("mov %s, rax", dst)

	case ssa.OpAlloca:
		g.lowerAlloca(v)
	case ssa.OpLoad:
		g.lowerLoad(v)
	case ssa.OpStore:
		g.lowerStore(v)
	case ssa.OpZero:
		g.lowerZero(v)

	case ssa.OpStructFieldPtr:
		g.lowerStructFieldPtr(v)
	case ssa.OpArrayIndexPtr:
		g.lowerArrayIndexPtr(v)

	case ssa.OpIntToFloat:
		e.emitInst("cvtsi2sd xmm0, %s", fr.addr(v.Args[0]))
		e.emitInst("movsd %s, xmm0", dst)
	case ssa.OpFloatToInt:
		e.emitInst("cvttsd2si rax, %s", fr.addr(v.Args[0]))
		e.emitInst("mov %s, rax", dst)

	case ssa.OpStaticCall:
		g.lowerStaticCall(v)
	case ssa.OpCall:
		g.lowerIndirectCall(v)

	case ssa.OpNewAlloc:
		g.lowerNewAlloc(v)

	case ssa.OpCopy:
		g.copyValue(v.Args[0], v)
	case ssa.OpAddr:
		e.emitInst("lea rax, %s", fr.addr(v.Args[0]))
		e.emitInst("mov %s, rax", dst)

	case ssa.OpPrintln:
		g.lowerPrintln(v)
	case ssa.OpPanic:
		g.lowerPanic(v)
	case ssa.OpNilCheck:
		g.lowerNilCheck(v)

	case ssa.OpStringLen:
		g.emitRuntimeCall(rtabi.FnStrLen, []*ssa.Value{v.Args[0]}, v)
	case ssa.OpStringPtr:
		e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
		e.emitInst("mov %s, rax", dst)
	case ssa.OpStringGetU8:
		g.emitRuntimeCall(rtabi.FnStrGetU8, v.Args, v)
	case ssa.OpStringSlice:
		g.emitRuntimeCall(rtabi.FnStrSlice, v.Args, v)

	case ssa.OpArrayNew, ssa.OpArrayGet, ssa.OpArraySet, ssa.OpArraySlice:
		g.lowerArrayOp(v)
	case ssa.OpArrayLen:
		g.emitRuntimeCall(rtabi.FnArrayLen, v.Args, v)

	case ssa.OpCheckedCast:
		g.lowerCheckedCast(v)

	case ssa.OpBoxNew, ssa.OpBoxGet:
		g.lowerBoxOp(v)

	case ssa.OpVecNew:
		g.emitRuntimeCall(rtabi.FnVecNew, nil, v)
	case ssa.OpVecPush:
		g.emitRuntimeCall(rtabi.FnVecPush, v.Args, nil)
	case ssa.OpVecGet:
		g.emitRuntimeCall(rtabi.FnVecGet, v.Args, v)
	case ssa.OpVecSet:
		g.emitRuntimeCall(rtabi.FnVecSet, v.Args, nil)
	case ssa.OpVecLen:
		g.emitRuntimeCall(rtabi.FnVecLen, v.Args, v)

	case ssa.OpStrBufNew:
		g.emitRuntimeCall(rtabi.FnStrBufNew, v.Args, v)
	case ssa.OpStrBufFromStr:
		g.emitRuntimeCall(rtabi.FnStrBufFromStr, v.Args, v)
	case ssa.OpStrBufToStr:
		g.emitRuntimeCall(rtabi.FnStrBufToStr, v.Args, v)
	case ssa.OpStrBufLen:
		g.emitRuntimeCall(rtabi.FnStrBufLen, v.Args, v)
	case ssa.OpStrBufGetU8:
		g.emitRuntimeCall(rtabi.FnStrBufGetU8, v.Args, v)
	case ssa.OpStrBufSetU8:
		g.emitRuntimeCall(rtabi.FnStrBufSetU8, v.Args, nil)

	default:
		e.emitComment(fmt.Sprintf("unhandled op %s", v.Op))
	}
}

func (g *funcGen) emitIntBinOp(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	e.emitInst("mov rbx, %s", fr.addr(v.Args[1]))
	switch v.Op {
	case ssa.OpAdd64:
		e.emitInst("add rax, rbx")
	case ssa.OpSub64:
		e.emitInst("sub rax, rbx")
	case ssa.OpMul64:
		e.emitInst("imul rax, rbx")
	}
	e.emitInst("mov %s, rax", fr.addr(v))
}

func (g *funcGen) emitDivMod(v *ssa.Value, mod bool) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	e.emitInst("mov rbx, %s", fr.addr(v.Args[1]))
	e.emitInst("test rbx, rbx")
	e.emitInst("jnz .Lok_%d", v.ID)
	g.emitRuntimePanic(fmt.Sprintf("rt_op_%s: division by zero", v.Op))
	e.emit(".Lok_%d:", v.ID)
	e.emitInst("cqo")
	e.emitInst("idiv rbx")
	if mod {
		e.emitInst("mov %s, rdx", fr.addr(v))
	} else {
		e.emitInst("mov %s, rax", fr.addr(v))
	}
}

func (g *funcGen) emitFloatBinOp(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("movsd xmm0, %s", fr.addr(v.Args[0]))
	e.emitInst("movsd xmm1, %s", fr.addr(v.Args[1]))
	switch v.Op {
	case ssa.OpAddF64:
		e.emitInst("addsd xmm0, xmm1")
	case ssa.OpSubF64:
		e.emitInst("subsd xmm0, xmm1")
	case ssa.OpMulF64:
		e.emitInst("mulsd xmm0, xmm1")
	case ssa.OpDivF64:
		e.emitInst("divsd xmm0, xmm1")
	}
	e.emitInst("movsd %s, xmm0", fr.addr(v))
}

func (g *funcGen) emitIntCmp(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	e.emitInst("cmp rax, %s", fr.addr(v.Args[1]))
	e.emitInst("%s al", setccFor(v.Op))
	e.emitInst("movzx rax, al")
	e.emitInst("mov %s, rax", fr.addr(v))
}

func (g *funcGen) emitFloatCmp(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("movsd xmm0, %s", fr.addr(v.Args[0]))
	e.emitInst("movsd xmm1, %s", fr.addr(v.Args[1]))
	e.emitInst("comisd xmm0, xmm1")
	e.emitInst("%s al", setccFor(v.Op))
	e.emitInst("movzx rax, al")
	e.emitInst("mov %s, rax", fr.addr(v))
}

func setccFor(op ssa.Op) string {
	switch op {
	case ssa.OpEq64, ssa.OpEqF64, ssa.OpEqPtr:
		return "sete"
	case ssa.OpNeq64, ssa.OpNeqF64, ssa.OpNeqPtr:
		return "setne"
	case ssa.OpLt64, ssa.OpLtF64:
		return "setl"
	case ssa.OpLeq64, ssa.OpLeqF64:
		return "setle"
	case ssa.OpGt64, ssa.OpGtF64:
		return "setg"
	case ssa.OpGeq64, ssa.OpGeqF64:
		return "setge"
	}
	return "sete"
}

func (g *funcGen) lowerAlloca(v *ssa.Value) {
	// v0.1 codegen reserves a plain 8-byte slot for every value, including
	// pointers produced by Alloca; for an alloca of a multi-word struct or
	// array, this requires the locals region to also carry the backing
	// storage, which the frame layout does not compute independently of
	// values (see buildFrame). Struct/array locals that mem2reg did not
	// promote out of existence are therefore represented by a dedicated
	// backing slot allocated alongside: for v0.1, a single extra stack
	// word is carved out immediately and its address is stored in v's slot.
	g.e.emitComment("alloca: backing storage reserved inline, one word per field is not yet supported for aggregates")
	g.e.emitInst("lea rax, %s", g.fr.addr(v))
	g.e.emitInst("mov %s, rax", g.fr.addr(v))
}

func (g *funcGen) lowerLoad(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	if isFloatType(v.Type) {
		e.emitInst("movsd xmm0, [rax]")
		e.emitInst("movsd %s, xmm0", fr.addr(v))
		return
	}
	e.emitInst("mov rax, [rax]")
	e.emitInst("mov %s, rax", fr.addr(v))
}

func (g *funcGen) lowerStore(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	if isFloatType(v.Args[1].Type) {
		e.emitInst("movsd xmm0, %s", fr.addr(v.Args[1]))
		e.emitInst("movsd [rax], xmm0")
		return
	}
	e.emitInst("mov rbx, %s", fr.addr(v.Args[1]))
	e.emitInst("mov [rax], rbx")
}

func (g *funcGen) lowerZero(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rdi, %s", fr.addr(v.Args[0]))
	e.emitInst("xor rax, rax")
	e.emitInst("mov rcx, %d", v.AuxInt)
	e.emitInst("rep stosb")
}

func (g *funcGen) lowerStructFieldPtr(v *ssa.Value) {
	e, fr := g.e, g.fr
	structType := underlyingStruct(v.Args[0].Type)
	var offset int64
	if structType != nil && structType.LayoutDone() {
		offset = structType.Offset(int(v.AuxInt))
	}
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	if offset != 0 {
		e.emitInst("add rax, %d", offset)
	}
	e.emitInst("mov %s, rax", fr.addr(v))
}

func underlyingStruct(t types.Type) *types.Struct {
	if t == nil {
		return nil
	}
	switch u := t.Underlying().(type) {
	case *types.Pointer:
		return underlyingStruct(u.Elem())
	case *types.Ref:
		return underlyingStruct(u.Elem())
	case *types.Struct:
		return u
	}
	return nil
}

func (g *funcGen) lowerArrayIndexPtr(v *ssa.Value) {
	e, fr := g.e, g.fr
	elemSize := int64(8)
	if arr := underlyingArray(v.Args[0].Type); arr != nil && g.sizes != nil {
		elemSize = g.sizes.Sizeof(arr.Elem())
	}
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	e.emitInst("mov rbx, %s", fr.addr(v.Args[1]))
	e.emitInst("imul rbx, %d", elemSize)
	e.emitInst("add rax, rbx")
	e.emitInst("mov %s, rax", fr.addr(v))
}

func underlyingArray(t types.Type) *types.Array {
	if t == nil {
		return nil
	}
	switch u := t.Underlying().(type) {
	case *types.Pointer:
		return underlyingArray(u.Elem())
	case *types.Ref:
		return underlyingArray(u.Elem())
	case *types.Array:
		return u
	}
	return nil
}

func (g *funcGen) lowerStaticCall(v *ssa.Value) {
	fn, ok := v.Aux.(*types.FuncObj)
	if !ok {
		g.e.emitComment("static call: unresolved callee")
		return
	}
	g.emitArgs(v.Args)
	g.e.emitInst("call nifl_%s", fn.Name())
	g.storeCallResult(v)
}

func (g *funcGen) lowerIndirectCall(v *ssa.Value) {
	g.emitArgs(v.Args[1:])
	g.e.emitInst("mov rax, %s", g.fr.addr(v.Args[0]))
	g.e.emitInst("call rax")
	g.storeCallResult(v)
}

func (g *funcGen) emitArgs(args []*ssa.Value) {
	intIdx, floatIdx := 0, 0
	for _, a := range args {
		if argClass(a.Type) == rtabi.ArgFloat {
			if floatIdx < len(rtabi.FloatArgRegs) {
				g.e.emitInst("movsd %s, %s", rtabi.FloatArgRegs[floatIdx], g.fr.addr(a))
			}
			floatIdx++
			continue
		}
		if intIdx < len(rtabi.IntArgRegs) {
			g.e.emitInst("mov %s, %s", rtabi.IntArgRegs[intIdx], g.fr.addr(a))
		}
		intIdx++
	}
	if intIdx > len(rtabi.IntArgRegs) || floatIdx > len(rtabi.FloatArgRegs) {
		g.e.emitComment("call has more arguments than the register file carries; stack-spilled arguments are unsupported in v0.1")
	}
}

func (g *funcGen) storeCallResult(v *ssa.Value) {
	if v == nil || v.Type == nil {
		return
	}
	if argClass(v.Type) == rtabi.ArgFloat {
		g.e.emitInst("movsd %s, xmm0", g.fr.addr(v))
	} else {
		g.e.emitInst("mov %s, rax", g.fr.addr(v))
	}
}

// lowerNewAlloc emits a call to rt_alloc_obj for a `new T` expression.
// TODO: once the compiler emits one static TypeDesc per user class, Aux
// should carry that symbol instead of this DebugName placeholder lookup.
func (g *funcGen) lowerNewAlloc(v *ssa.Value) {
	typeName := "unknown"
	if name, ok := v.Aux.(string); ok {
		typeName = name
	}
	g.e.emitComment(fmt.Sprintf("new %s", typeName))
	g.e.emitInst("mov %s, r12", rtabi.IntArgRegs[0])
	g.e.emitInst("lea %s, [rip + .Ltype_%s]", rtabi.IntArgRegs[1], sanitizeLabel(typeName))
	g.e.emitInst("mov %s, %d", rtabi.IntArgRegs[2], g.sizeOfNamed(v.Type))
	g.e.emitInst("call %s", rtabi.FnAllocObj)
	g.storeCallResult(v)
}

func (g *funcGen) sizeOfNamed(t types.Type) int64 {
	if t == nil || g.sizes == nil {
		return rtabi.ObjHeaderSizeBytes
	}
	if r, ok := t.Underlying().(*types.Ref); ok {
		return rtabi.ObjHeaderSizeBytes + g.sizes.Sizeof(r.Elem())
	}
	return rtabi.ObjHeaderSizeBytes
}

func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ' ' {
			return '_'
		}
		return r
	}, s)
}

func (g *funcGen) lowerPrintln(v *ssa.Value) {
	for _, arg := range v.Args {
		g.emitPrintArg(arg)
	}
}

func (g *funcGen) emitPrintArg(arg *ssa.Value) {
	g.e.emitInst("mov %s, %s", rtabi.IntArgRegs[0], g.fr.addr(arg))
	switch {
	case isFloatType(arg.Type):
		g.e.emitInst("movsd xmm0, %s", g.fr.addr(arg))
		g.e.emitInst("call %s", rtabi.FnPrintlnDouble)
	case isBoolType(arg.Type):
		g.e.emitInst("call %s", rtabi.FnPrintlnBool)
	case isRefType(arg.Type):
		g.e.emitInst("call %s", rtabi.FnPrintlnStr)
	default:
		g.e.emitInst("call %s", rtabi.FnPrintlnI64)
	}
}

func (g *funcGen) lowerPanic(v *ssa.Value) {
	g.e.emitInst("mov %s, %s", rtabi.IntArgRegs[0], g.fr.addr(v.Args[0]))
	g.e.emitInst("call %s", rtabi.FnPanic)
}

func (g *funcGen) emitRuntimePanic(message string) {
	label := g.internString(message)
	g.e.emitInst("lea %s, [rip + %s]", rtabi.IntArgRegs[0], label)
	g.e.emitInst("mov %s, %d", rtabi.IntArgRegs[1], len(message))
	g.e.emitInst("call %s", rtabi.FnStrFromBytes)
	g.e.emitInst("mov %s, rax", rtabi.IntArgRegs[0])
	g.e.emitInst("call %s", rtabi.FnPanic)
}

func (g *funcGen) lowerNilCheck(v *ssa.Value) {
	e, fr := g.e, g.fr
	e.emitInst("mov rax, %s", fr.addr(v.Args[0]))
	e.emitInst("test rax, rax")
	e.emitInst("jnz .Lnilok_%d", v.ID)
	e.emitInst("call %s", rtabi.FnPanicNullDeref)
	e.emit(".Lnilok_%d:", v.ID)
}

func (g *funcGen) emitRuntimeCall(name string, args []*ssa.Value, result *ssa.Value) {
	g.emitArgs(args)
	g.e.emitInst("call %s", name)
	g.storeCallResult(result)
}

// lowerArrayOp dispatches one of the array builtin ops to the rt_array_<kind>
// entry point its Aux element-kind tag names, reusing the same
// argument/result marshaling emitRuntimeCall already does for every other
// runtime call.
func (g *funcGen) lowerArrayOp(v *ssa.Value) {
	kind, _ := v.Aux.(string)
	fns, ok := rtabi.ArrayFuncsFor(kind)
	if !ok {
		g.e.emitComment(fmt.Sprintf("array op %s: unhandled element kind %q", v.Op, kind))
		return
	}

	var name string
	var result *ssa.Value
	switch v.Op {
	case ssa.OpArrayNew:
		name, result = fns.New, v
	case ssa.OpArrayGet:
		name, result = fns.Get, v
	case ssa.OpArraySet:
		name, result = fns.Set, nil
	case ssa.OpArraySlice:
		name, result = fns.Slice, v
	}
	g.emitRuntimeCall(name, v.Args, result)
}

// lowerCheckedCast emits a call to rt_checked_cast for a downcast expression
// x.(T). The runtime entry point itself raises rt_panic_bad_cast when the
// object's descriptor doesn't match the expected type; codegen only needs to
// marshal the object pointer and the target type's descriptor address and
// pick up the (possibly unchanged) result.
func (g *funcGen) lowerCheckedCast(v *ssa.Value) {
	typeName := "unknown"
	if name, ok := v.Aux.(string); ok {
		typeName = name
	}
	g.e.emitInst("mov %s, %s", rtabi.IntArgRegs[0], g.fr.addr(v.Args[0]))
	g.e.emitInst("lea %s, [rip + .Ltype_%s]", rtabi.IntArgRegs[1], sanitizeLabel(typeName))
	g.e.emitInst("call %s", rtabi.FnCheckedCast)
	g.storeCallResult(v)
}

// lowerBoxOp dispatches one of the box builtin ops to the rt_box_<kind>
// entry point its Aux element-kind tag names.
func (g *funcGen) lowerBoxOp(v *ssa.Value) {
	kind, _ := v.Aux.(string)
	fns, ok := rtabi.BoxFuncsFor(kind)
	if !ok {
		g.e.emitComment(fmt.Sprintf("box op %s: unhandled element kind %q", v.Op, kind))
		return
	}

	var name string
	switch v.Op {
	case ssa.OpBoxNew:
		name = fns.New
	case ssa.OpBoxGet:
		name = fns.Get
	}
	g.emitRuntimeCall(name, v.Args, v)
}

func (g *funcGen) lowerConstString(v *ssa.Value) {
	s, _ := v.Aux.(string)
	label := g.internString(s)
	g.e.emitInst("lea %s, [rip + %s]", rtabi.IntArgRegs[0], label)
	g.e.emitInst("mov %s, %d", rtabi.IntArgRegs[1], len(s))
	g.e.emitInst("call %s", rtabi.FnStrFromBytes)
	g.e.emitInst("mov %s, rax", g.fr.addr(v))
}

func (g *funcGen) internString(s string) string {
	label := fmt.Sprintf(".Lstr_%s_%d", g.fn.Name, g.strIdx)
	g.strIdx++
	g.rodata = append(g.rodata, fmt.Sprintf("%s:", label))
	g.rodata = append(g.rodata, fmt.Sprintf("  .ascii %q", s))
	return label
}

func (g *funcGen) internFloat(f float64) string {
	label := fmt.Sprintf(".Lflt_%s_%d", g.fn.Name, g.fltIdx)
	g.fltIdx++
	g.rodata = append(g.rodata, fmt.Sprintf("%s:", label))
	g.rodata = append(g.rodata, fmt.Sprintf("  .double %v", f))
	return label
}
