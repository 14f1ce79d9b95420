// Package rtabi is the single source of truth for the binary contract
// between generated code and the runtime: object header layout, the
// SysV AMD64 calling convention codegen must honor, and the table of
// runtime entry-point names and signatures, retargeted from an arm64/LLVM
// ABI table to the x86-64 Intel-syntax ABI this runtime targets.
package rtabi

// TargetTriple identifies the codegen backend's sole target, matching
// the Linux x86-64 target this compiler and runtime are built for.
const TargetTriple = "x86_64-linux-gnu"

// Object header layout: 24 bytes total, fields in
// declaration order, no implicit padding beyond natural alignment.
const (
	ObjHeaderTypeOffset     = 0  // uintptr, 8 bytes: pointer to TypeDesc
	ObjHeaderSizeOffset     = 8  // uint64, 8 bytes: total object size
	ObjHeaderFlagsOffset    = 16 // uint32, 4 bytes: GC flag bits
	ObjHeaderReservedOffset = 20 // uint32, 4 bytes: reserved, must be zero
	ObjHeaderSizeBytes      = 24
)

// TypeDesc field offsets within the descriptor struct codegen emits one
// static instance of per user-defined class.
const (
	TypeDescIDOffset             = 0
	TypeDescFlagsOffset          = 4
	TypeDescABIVersionOffset     = 8
	TypeDescAlignBytesOffset     = 12
	TypeDescFixedSizeBytesOffset = 16
	TypeDescDebugNameOffset      = 24
	TypeDescTraceFnOffset        = 32
	TypeDescPointerOffsetsOffset = 40
	TypeDescPointerCountOffset   = 48
)

// ABIVersion is the descriptor schema version every TypeDesc instance
// codegen emits must declare.
const ABIVersion = 1

// Primitive sizes and alignments, SysV AMD64 (no struct packing pragmas).
const (
	SizeI64    = 8
	SizeU64    = 8
	SizeU8     = 1
	SizeBool   = 1
	SizeDouble = 8
	SizePtr    = 8

	AlignI64    = 8
	AlignU64    = 8
	AlignU8     = 1
	AlignBool   = 1
	AlignDouble = 8
	AlignPtr    = 8
)

// SysV AMD64 integer/pointer argument registers, in order. A call with
// more than six integer/pointer arguments spills the remainder to the
// stack; codegen reports this as unsupported for v0.1, which performs no
// register allocation at all.
var IntArgRegs = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// IntReturnReg and FloatReturnReg name the SysV return-value registers.
const (
	IntReturnReg   = "rax"
	FloatReturnReg = "xmm0"
)

// FloatArgRegs are the SysV AMD64 floating-point argument registers.
var FloatArgRegs = [8]string{"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6", "xmm7"}

// CalleeSavedRegs must be preserved across a call per SysV AMD64; codegen's
// prologue/epilogue save and restore exactly these it actually uses.
var CalleeSavedRegs = []string{"rbx", "rbp", "r12", "r13", "r14", "r15"}

// StackAlignBytes is the alignment RSP must hold immediately before a
// `call` instruction transfers control, per SysV AMD64.
const StackAlignBytes = 16

// IntelDirective is the GAS directive codegen emits at the top of every
// assembly file so the remainder can be written in Intel syntax, matching
// the convention original_source/compiler/codegen.py's stub already uses.
const IntelDirective = ".intel_syntax noprefix"
