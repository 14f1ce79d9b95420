package rtabi

// ArgClass describes one parameter of a runtime entry point for codegen's call
// emission: its SysV class (Int or Float) drives which register file it is
// marshaled through.
type ArgClass int

const (
	ArgInt ArgClass = iota
	ArgFloat
)

// FuncSignature describes one rt_* entry point's calling convention from
// codegen's point of view: its argument classes in order and whether it
// returns a value (and in which class).
type FuncSignature struct {
	Name       string
	Args       []ArgClass
	HasResult  bool
	ResultType ArgClass
}

// Runtime entry-point name constants: the x86-64 runtime's actual C-ABI
// symbol names.
const (
	FnInit         = "rt_init"
	FnShutdown     = "rt_shutdown"
	FnThreadState  = "rt_thread_state"

	FnRootFrameInit      = "rt_root_frame_init"
	FnPushRoots          = "rt_push_roots"
	FnPopRoots           = "rt_pop_roots"
	FnRootSlotStore      = "rt_root_slot_store"
	FnRootSlotLoad       = "rt_root_slot_load"
	FnGCRegisterGlobalRoot   = "rt_gc_register_global_root"
	FnGCUnregisterGlobalRoot = "rt_gc_unregister_global_root"

	FnAllocObj   = "rt_alloc_obj"
	FnCheckedCast = "rt_checked_cast"

	FnGCCollect      = "rt_gc_collect"
	FnGCMaybeCollect = "rt_gc_maybe_collect"
	FnGCGetStats     = "rt_gc_get_stats"
	FnGCResetState   = "rt_gc_reset_state"

	FnPanic          = "rt_panic"
	FnPanicNullDeref = "rt_panic_null_deref"
	FnPanicBadCast   = "rt_panic_bad_cast"
	FnPanicOOM       = "rt_panic_oom"
	FnPrintlnI64   = "rt_println_i64"
	FnPrintlnU64   = "rt_println_u64"
	FnPrintlnU8    = "rt_println_u8"
	FnPrintlnBool  = "rt_println_bool"
	FnPrintlnDouble = "rt_println_double"
	FnPrintlnStr   = "rt_println_str"

	FnStrFromBytes = "rt_str_from_bytes"
	FnStrFromChar  = "rt_str_from_char"
	FnStrLen       = "rt_str_len"
	FnStrGetU8     = "rt_str_get_u8"
	FnStrSlice     = "rt_str_slice"

	FnBoxI64New    = "rt_box_i64_new"
	FnBoxI64Get    = "rt_box_i64_get"
	FnBoxU64New    = "rt_box_u64_new"
	FnBoxU64Get    = "rt_box_u64_get"
	FnBoxU8New     = "rt_box_u8_new"
	FnBoxU8Get     = "rt_box_u8_get"
	FnBoxBoolNew   = "rt_box_bool_new"
	FnBoxBoolGet   = "rt_box_bool_get"
	FnBoxDoubleNew = "rt_box_double_new"
	FnBoxDoubleGet = "rt_box_double_get"

	FnArrayI64New    = "rt_array_i64_new"
	FnArrayI64Get    = "rt_array_i64_get"
	FnArrayI64Set    = "rt_array_i64_set"
	FnArrayI64Slice  = "rt_array_i64_slice"
	FnArrayU64New    = "rt_array_u64_new"
	FnArrayU64Get    = "rt_array_u64_get"
	FnArrayU64Set    = "rt_array_u64_set"
	FnArrayU64Slice  = "rt_array_u64_slice"
	FnArrayU8New     = "rt_array_u8_new"
	FnArrayU8Get     = "rt_array_u8_get"
	FnArrayU8Set     = "rt_array_u8_set"
	FnArrayU8Slice   = "rt_array_u8_slice"
	FnArrayBoolNew   = "rt_array_bool_new"
	FnArrayBoolGet   = "rt_array_bool_get"
	FnArrayBoolSet   = "rt_array_bool_set"
	FnArrayBoolSlice = "rt_array_bool_slice"
	FnArrayDoubleNew   = "rt_array_double_new"
	FnArrayDoubleGet   = "rt_array_double_get"
	FnArrayDoubleSet   = "rt_array_double_set"
	FnArrayDoubleSlice = "rt_array_double_slice"
	FnArrayRefNew    = "rt_array_ref_new"
	FnArrayRefGet    = "rt_array_ref_get"
	FnArrayRefSet    = "rt_array_ref_set"
	FnArrayRefSlice  = "rt_array_ref_slice"
	FnArrayLen       = "rt_array_len"

	FnVecNew    = "rt_vec_new"
	FnVecPush   = "rt_vec_push"
	FnVecGet    = "rt_vec_get"
	FnVecSet    = "rt_vec_set"
	FnVecLen    = "rt_vec_len"

	FnStrBufNew      = "rt_strbuf_new"
	FnStrBufFromStr  = "rt_strbuf_from_str"
	FnStrBufToStr    = "rt_strbuf_to_str"
	FnStrBufLen      = "rt_strbuf_len"
	FnStrBufGetU8    = "rt_strbuf_get_u8"
	FnStrBufSetU8    = "rt_strbuf_set_u8"
)

// EntryMain is the symbol codegen emits the user program's entry point
// under (funcLabel of the function named main).
const EntryMain = "nifl_main"

// ArrayElementFuncs names the four rt_array_<kind>_{new,get,set,slice}
// entry points for one array element kind.
type ArrayElementFuncs struct {
	New, Get, Set, Slice string
}

// arrayFuncsByKind keys ArrayElementFuncs by the element-kind tag codegen's
// array ops carry in Aux ("i64", "u64", "u8", "bool", "double", "ref").
var arrayFuncsByKind = map[string]ArrayElementFuncs{
	"i64":    {FnArrayI64New, FnArrayI64Get, FnArrayI64Set, FnArrayI64Slice},
	"u64":    {FnArrayU64New, FnArrayU64Get, FnArrayU64Set, FnArrayU64Slice},
	"u8":     {FnArrayU8New, FnArrayU8Get, FnArrayU8Set, FnArrayU8Slice},
	"bool":   {FnArrayBoolNew, FnArrayBoolGet, FnArrayBoolSet, FnArrayBoolSlice},
	"double": {FnArrayDoubleNew, FnArrayDoubleGet, FnArrayDoubleSet, FnArrayDoubleSlice},
	"ref":    {FnArrayRefNew, FnArrayRefGet, FnArrayRefSet, FnArrayRefSlice},
}

// ArrayFuncsFor looks up the entry-point names for an array element kind.
func ArrayFuncsFor(kind string) (ArrayElementFuncs, bool) {
	f, ok := arrayFuncsByKind[kind]
	return f, ok
}

// BoxElementFuncs names the two rt_box_<kind>_{new,get} entry points for one
// boxed primitive kind.
type BoxElementFuncs struct {
	New, Get string
}

// boxFuncsByKind keys BoxElementFuncs by the element-kind tag codegen's box
// ops carry in Aux ("i64", "u64", "u8", "bool", "double").
var boxFuncsByKind = map[string]BoxElementFuncs{
	"i64":    {FnBoxI64New, FnBoxI64Get},
	"u64":    {FnBoxU64New, FnBoxU64Get},
	"u8":     {FnBoxU8New, FnBoxU8Get},
	"bool":   {FnBoxBoolNew, FnBoxBoolGet},
	"double": {FnBoxDoubleNew, FnBoxDoubleGet},
}

// BoxFuncsFor looks up the entry-point names for a boxed primitive kind.
func BoxFuncsFor(kind string) (BoxElementFuncs, bool) {
	f, ok := boxFuncsByKind[kind]
	return f, ok
}

// RuntimeFunctions returns the signature table codegen consults when
// emitting a call to a runtime entry point, to marshal arguments into the
// correct SysV register class.
func RuntimeFunctions() map[string]FuncSignature {
	ptr := ArgInt
	i64 := ArgInt
	f64 := ArgFloat
	return map[string]FuncSignature{
		FnAllocObj:    {Name: FnAllocObj, Args: []ArgClass{ptr, ptr, i64}, HasResult: true, ResultType: ptr},
		FnCheckedCast: {Name: FnCheckedCast, Args: []ArgClass{ptr, ptr}, HasResult: true, ResultType: ptr},

		FnGCMaybeCollect: {Name: FnGCMaybeCollect, Args: []ArgClass{i64}},
		FnGCCollect:      {Name: FnGCCollect},

		FnPanic:          {Name: FnPanic, Args: []ArgClass{ptr}},
		FnPanicNullDeref: {Name: FnPanicNullDeref},
		FnPanicBadCast:   {Name: FnPanicBadCast, Args: []ArgClass{ptr, ptr}},
		FnPanicOOM:       {Name: FnPanicOOM},
		FnPrintlnI64:    {Name: FnPrintlnI64, Args: []ArgClass{i64}},
		FnPrintlnU64:    {Name: FnPrintlnU64, Args: []ArgClass{i64}},
		FnPrintlnU8:     {Name: FnPrintlnU8, Args: []ArgClass{i64}},
		FnPrintlnBool:   {Name: FnPrintlnBool, Args: []ArgClass{i64}},
		FnPrintlnDouble: {Name: FnPrintlnDouble, Args: []ArgClass{f64}},
		FnPrintlnStr:    {Name: FnPrintlnStr, Args: []ArgClass{ptr}},

		FnStrFromBytes: {Name: FnStrFromBytes, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: ptr},
		FnStrFromChar:  {Name: FnStrFromChar, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnStrLen:       {Name: FnStrLen, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnStrGetU8:     {Name: FnStrGetU8, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnStrSlice:     {Name: FnStrSlice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnBoxI64New:    {Name: FnBoxI64New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnBoxI64Get:    {Name: FnBoxI64Get, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnBoxU64New:    {Name: FnBoxU64New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnBoxU64Get:    {Name: FnBoxU64Get, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnBoxU8New:     {Name: FnBoxU8New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnBoxU8Get:     {Name: FnBoxU8Get, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnBoxBoolNew:   {Name: FnBoxBoolNew, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnBoxBoolGet:   {Name: FnBoxBoolGet, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnBoxDoubleNew: {Name: FnBoxDoubleNew, Args: []ArgClass{f64}, HasResult: true, ResultType: ptr},
		FnBoxDoubleGet: {Name: FnBoxDoubleGet, Args: []ArgClass{ptr}, HasResult: true, ResultType: f64},

		FnArrayI64New:   {Name: FnArrayI64New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayI64Get:   {Name: FnArrayI64Get, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnArrayI64Set:   {Name: FnArrayI64Set, Args: []ArgClass{ptr, i64, i64}},
		FnArrayI64Slice: {Name: FnArrayI64Slice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayU64New:   {Name: FnArrayU64New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayU64Get:   {Name: FnArrayU64Get, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnArrayU64Set:   {Name: FnArrayU64Set, Args: []ArgClass{ptr, i64, i64}},
		FnArrayU64Slice: {Name: FnArrayU64Slice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayU8New:   {Name: FnArrayU8New, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayU8Get:   {Name: FnArrayU8Get, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnArrayU8Set:   {Name: FnArrayU8Set, Args: []ArgClass{ptr, i64, i64}},
		FnArrayU8Slice: {Name: FnArrayU8Slice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayBoolNew:   {Name: FnArrayBoolNew, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayBoolGet:   {Name: FnArrayBoolGet, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnArrayBoolSet:   {Name: FnArrayBoolSet, Args: []ArgClass{ptr, i64, i64}},
		FnArrayBoolSlice: {Name: FnArrayBoolSlice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayDoubleNew:   {Name: FnArrayDoubleNew, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayDoubleGet:   {Name: FnArrayDoubleGet, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: f64},
		FnArrayDoubleSet:   {Name: FnArrayDoubleSet, Args: []ArgClass{ptr, i64, f64}},
		FnArrayDoubleSlice: {Name: FnArrayDoubleSlice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayRefNew:   {Name: FnArrayRefNew, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnArrayRefGet:   {Name: FnArrayRefGet, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: ptr},
		FnArrayRefSet:   {Name: FnArrayRefSet, Args: []ArgClass{ptr, i64, ptr}},
		FnArrayRefSlice: {Name: FnArrayRefSlice, Args: []ArgClass{ptr, i64, i64}, HasResult: true, ResultType: ptr},

		FnArrayLen: {Name: FnArrayLen, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},

		FnVecNew:  {Name: FnVecNew, HasResult: true, ResultType: ptr},
		FnVecPush: {Name: FnVecPush, Args: []ArgClass{ptr, ptr}},
		FnVecGet:  {Name: FnVecGet, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: ptr},
		FnVecSet:  {Name: FnVecSet, Args: []ArgClass{ptr, i64, ptr}},
		FnVecLen:  {Name: FnVecLen, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},

		FnStrBufNew:     {Name: FnStrBufNew, Args: []ArgClass{i64}, HasResult: true, ResultType: ptr},
		FnStrBufFromStr: {Name: FnStrBufFromStr, Args: []ArgClass{ptr}, HasResult: true, ResultType: ptr},
		FnStrBufToStr:   {Name: FnStrBufToStr, Args: []ArgClass{ptr}, HasResult: true, ResultType: ptr},
		FnStrBufLen:     {Name: FnStrBufLen, Args: []ArgClass{ptr}, HasResult: true, ResultType: i64},
		FnStrBufGetU8:   {Name: FnStrBufGetU8, Args: []ArgClass{ptr, i64}, HasResult: true, ResultType: i64},
		FnStrBufSetU8:   {Name: FnStrBufSetU8, Args: []ArgClass{ptr, i64, i64}},
	}
}
