package rtdesc

import "github.com/niflheim-lang/niflheim/internal/rtpanic"

// CheckedCast implements rt_checked_cast: the null reference flows through
// unchanged, and any non-null obj must carry exactly want's type descriptor
// or the cast panics with BadCast. Downcast sites emit this check and then
// dereference the result themselves (with their own null-dereference check,
// rtpanic.NullDeref), so CheckedCast itself never treats null as an error.
func CheckedCast(obj Obj, want *TypeDesc) Obj {
	if obj == nil {
		return nil
	}
	if got := TypeOf(obj); got != want {
		rtpanic.BadCast(got.DebugName, want.DebugName)
	}
	return obj
}
