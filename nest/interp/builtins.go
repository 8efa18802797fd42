package interp

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SandwichEater577/Nes/internal/value"
)

type builtinFn func(it *Interp, args []value.Value) (value.Value, error)

var builtins = map[string]builtinFn{
	"print":   biPrint,
	"println": biPrintln,
	"input":   biInput,
	"len":     biLen,
	"type":    biType,
	"str":     biStr,
	"int":     biInt,
	"float":   biFloat,
	"abs":     biAbs,
	"sqrt":    biSqrt,
	"min":     biMin,
	"max":     biMax,
	"pow":     biPow,
}

func arityErr(name string, want, got int) error {
	return errf("%s() expects %d args, got %d", name, want, got)
}

func biPrint(it *Interp, args []value.Value) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(it.Stdout, " ")
		}
		fmt.Fprint(it.Stdout, a.String())
	}
	return value.None(), nil
}

func biPrintln(it *Interp, args []value.Value) (value.Value, error) {
	if _, err := biPrint(it, args); err != nil {
		return value.None(), err
	}
	fmt.Fprintln(it.Stdout)
	return value.None(), nil
}

func biInput(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) > 1 {
		return value.None(), errf("input() expects 0 or 1 args, got %d", len(args))
	}
	if len(args) == 1 {
		fmt.Fprint(it.Stdout, args[0].String())
	}
	sc := bufio.NewScanner(it.Stdin)
	if sc.Scan() {
		return value.Str(strings.TrimSpace(sc.Text())), nil
	}
	return value.Str(""), nil
}

func biLen(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("len", 1, len(args))
	}
	if args[0].Kind() != value.KindStr {
		return value.None(), errf("len() expects a string, got %s", args[0].TypeName())
	}
	return value.Int(int64(len(args[0].Str()))), nil
}

func biType(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("type", 1, len(args))
	}
	return value.Str(args[0].TypeName()), nil
}

func biStr(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("str", 1, len(args))
	}
	return value.Str(args[0].String()), nil
}

func biInt(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("int", 1, len(args))
	}
	a := args[0]
	switch a.Kind() {
	case value.KindInt:
		return a, nil
	case value.KindFloat:
		return value.Int(int64(a.Float())), nil
	case value.KindBool:
		if a.Bool() {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.KindStr:
		n, err := parseIntLoose(a.Str())
		if err != nil {
			return value.None(), errf("int(): cannot parse %q", a.Str())
		}
		return value.Int(n), nil
	case value.KindNone:
		return value.Int(0), nil
	default:
		return value.None(), errf("int(): cannot convert %s", a.TypeName())
	}
}

func biFloat(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("float", 1, len(args))
	}
	a := args[0]
	switch a.Kind() {
	case value.KindInt, value.KindFloat, value.KindBool:
		return value.Float(a.AsFloat()), nil
	case value.KindStr:
		f, err := parseFloatLoose(a.Str())
		if err != nil {
			return value.None(), errf("float(): cannot parse %q", a.Str())
		}
		return value.Float(f), nil
	default:
		return value.None(), errf("float(): cannot convert %s", a.TypeName())
	}
}

func biAbs(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("abs", 1, len(args))
	}
	a := args[0]
	switch a.Kind() {
	case value.KindInt:
		n := a.Int()
		if n < 0 {
			n = -n
		}
		return value.Int(n), nil
	case value.KindFloat:
		return value.Float(math.Abs(a.Float())), nil
	default:
		return value.None(), errf("abs() requires a number")
	}
}

func biSqrt(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None(), arityErr("sqrt", 1, len(args))
	}
	return value.Float(math.Sqrt(args[0].AsFloat())), nil
}

func biMin(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.None(), arityErr("min", 2, len(args))
	}
	if args[0].AsFloat() <= args[1].AsFloat() {
		return value.Float(args[0].AsFloat()), nil
	}
	return value.Float(args[1].AsFloat()), nil
}

func biMax(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.None(), arityErr("max", 2, len(args))
	}
	if args[0].AsFloat() >= args[1].AsFloat() {
		return value.Float(args[0].AsFloat()), nil
	}
	return value.Float(args[1].AsFloat()), nil
}

func biPow(it *Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.None(), arityErr("pow", 2, len(args))
	}
	return value.Float(math.Pow(args[0].AsFloat(), args[1].AsFloat())), nil
}

func parseIntLoose(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseFloatLoose(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
