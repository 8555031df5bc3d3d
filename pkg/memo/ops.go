package memo

// ops.go implements the in-place mutation family as a single higher-order
// method, Apply, parameterized by the primitive operation rather than by an
// operator-overload hierarchy Go has no way to express. The named helpers
// below are hand-written specializations of Apply for the common operator
// set; each is a three-line wrapper around Apply and nothing more.
//
// Free functions, not methods: Go does not allow a method to introduce
// type parameters beyond its receiver's, so a constraint like Numeric
// (narrower than Entry[K, V]'s own V any) can only be expressed this way.
//
// © 2025 memoscope authors. MIT License.

// Apply resolves e's current value in the current scope (treating "no
// value yet" as the zero value of V, matching a fresh override layer that
// has not yet been read), applies fn to it, and assigns the result — the
// resolve-then-assign sequence every in-place operator below reduces to.
func Apply[K comparable, V any](e *Entry[K, V], fn func(current V) V) error {
	cur, _ := e.CurrentValue()
	return e.Assign(fn(cur))
}

// Integer is the constraint shared by the bitwise and modulo helpers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Numeric is the constraint shared by the arithmetic helpers.
type Numeric interface {
	Integer | ~float32 | ~float64
}

// Add implements +=.
func Add[K comparable, V Numeric](e *Entry[K, V], delta V) error {
	return Apply(e, func(v V) V { return v + delta })
}

// Sub implements -=.
func Sub[K comparable, V Numeric](e *Entry[K, V], delta V) error {
	return Apply(e, func(v V) V { return v - delta })
}

// Mul implements *=.
func Mul[K comparable, V Numeric](e *Entry[K, V], factor V) error {
	return Apply(e, func(v V) V { return v * factor })
}

// Div implements /=, integer and true division alike — the distinction is
// V's own type, not this helper.
func Div[K comparable, V Numeric](e *Entry[K, V], divisor V) error {
	return Apply(e, func(v V) V { return v / divisor })
}

// Mod implements %=.
func Mod[K comparable, V Integer](e *Entry[K, V], divisor V) error {
	return Apply(e, func(v V) V { return v % divisor })
}

// And implements &=.
func And[K comparable, V Integer](e *Entry[K, V], mask V) error {
	return Apply(e, func(v V) V { return v & mask })
}

// Or implements |=.
func Or[K comparable, V Integer](e *Entry[K, V], mask V) error {
	return Apply(e, func(v V) V { return v | mask })
}

// Xor implements ^=.
func Xor[K comparable, V Integer](e *Entry[K, V], mask V) error {
	return Apply(e, func(v V) V { return v ^ mask })
}

// Shl implements <<=.
func Shl[K comparable, V Integer](e *Entry[K, V], bits V) error {
	return Apply(e, func(v V) V { return v << bits })
}

// Shr implements >>=.
func Shr[K comparable, V Integer](e *Entry[K, V], bits V) error {
	return Apply(e, func(v V) V { return v >> bits })
}

// Concat implements the ++ concatenation operator for strings.
func Concat[K comparable](e *Entry[K, string], suffix string) error {
	return Apply(e, func(v string) string { return v + suffix })
}
