package cheader

import (
	"strconv"

	"github.com/go-clang/clang-v13/clang"
)

// Kind says what a symbol evaluated to.
type Kind int

const (
	Unresolved Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unresolved"
	}
}

// Value is the evaluated value of an enum member or object-like macro.
type Value struct {
	Kind Kind

	// Int holds the value of a signed integer, Uint of an unsigned one.
	Int      int64
	Uint     uint64
	Unsigned bool

	Float float64
	Str   string
}

// IntValue returns a signed integer value.
func IntValue(v int64) Value {
	return Value{Kind: Int, Int: v}
}

// UintValue returns an unsigned integer value.
func UintValue(v uint64) Value {
	return Value{Kind: Int, Uint: v, Unsigned: true}
}

func (v Value) String() string {
	switch v.Kind {
	case Int:
		if v.Unsigned {
			return strconv.FormatUint(v.Uint, 10) + "u"
		}
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		return strconv.Quote(v.Str)
	default:
		return "<unresolved>"
	}
}

// valueFromEval converts a libclang evaluation result.
func valueFromEval(er clang.EvalResult) Value {
	switch er.Kind() {
	case clang.Eval_Int:
		if er.IsUnsignedInt() {
			return UintValue(er.AsUnsigned())
		}
		return IntValue(er.AsLongLong())
	case clang.Eval_Float:
		return Value{Kind: Float, Float: er.AsDouble()}
	case clang.Eval_StrLiteral, clang.Eval_ObjCStrLiteral, clang.Eval_CFStr:
		return Value{Kind: String, Str: er.AsStr()}
	default:
		return Value{Kind: Unresolved}
	}
}
