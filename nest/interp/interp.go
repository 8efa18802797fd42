// Package interp implements the NesT tree-walking interpreter.
package interp

import (
	"fmt"
	"io"
	"math"

	"github.com/SandwichEater577/Nes/internal/value"
	"github.com/SandwichEater577/Nes/nest/ast"
)

// RuntimeError carries the first failing condition encountered while
// running a NesT program.
type RuntimeError struct{ Msg string }

func (e *RuntimeError) Error() string { return e.Msg }

func errf(format string, args ...any) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// signal is the control-flow result of executing a statement sequence.
type signal uint8

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)

type flow struct {
	sig signal
	val value.Value
}

var flowNone = flow{sig: sigNone}

// fnDef is a user-defined function's stored shape.
type fnDef struct {
	params []string
	body   []ast.Stmt
}

// Interp holds NesT runtime state: the lexical scope stack, the
// function table, and the (currently unused) directive table.
type Interp struct {
	scopes     []map[string]value.Value
	fns        map[string]fnDef
	directives map[string]value.Value

	Stdout io.Writer
	Stdin  io.Reader
}

// New creates a fresh interpreter with one empty global scope.
func New(stdout io.Writer, stdin io.Reader) *Interp {
	return &Interp{
		scopes:     []map[string]value.Value{make(map[string]value.Value)},
		fns:        make(map[string]fnDef),
		directives: make(map[string]value.Value),
		Stdout:     stdout,
		Stdin:      stdin,
	}
}

// Run executes a parsed program from a fresh global scope.
func (it *Interp) Run(prog *ast.Program) error {
	_, err := it.execBlock(prog.Stmts)
	return err
}

func (it *Interp) pushScope() { it.scopes = append(it.scopes, make(map[string]value.Value)) }

func (it *Interp) popScope() {
	if len(it.scopes) > 1 {
		it.scopes = it.scopes[:len(it.scopes)-1]
	}
}

func (it *Interp) top() map[string]value.Value { return it.scopes[len(it.scopes)-1] }

func (it *Interp) getVar(name string) (value.Value, error) {
	for i := len(it.scopes) - 1; i >= 0; i-- {
		if v, ok := it.scopes[i][name]; ok {
			return v, nil
		}
	}
	return value.None(), errf("undefined variable '%s'", name)
}

// setVar mutates the innermost scope already holding name, or creates
// it in the top scope.
func (it *Interp) setVar(name string, v value.Value) {
	for i := len(it.scopes) - 1; i >= 0; i-- {
		if _, ok := it.scopes[i][name]; ok {
			it.scopes[i][name] = v
			return
		}
	}
	it.top()[name] = v
}

func (it *Interp) execBlock(stmts []ast.Stmt) (flow, error) {
	for _, s := range stmts {
		f, err := it.execStmt(s)
		if err != nil {
			return flowNone, err
		}
		if f.sig != sigNone {
			return f, nil
		}
	}
	return flowNone, nil
}

func (it *Interp) execStmt(s ast.Stmt) (flow, error) {
	switch st := s.(type) {
	case ast.Let:
		v, err := it.eval(st.Value)
		if err != nil {
			return flowNone, err
		}
		it.top()[st.Name] = v
		return flowNone, nil

	case ast.Assign:
		v, err := it.eval(st.Value)
		if err != nil {
			return flowNone, err
		}
		it.setVar(st.Name, v)
		return flowNone, nil

	case ast.If:
		cond, err := it.eval(st.Cond)
		if err != nil {
			return flowNone, err
		}
		it.pushScope()
		defer it.popScope()
		if cond.Truthy() {
			return it.execBlock(st.Then)
		}
		if st.Else != nil {
			return it.execBlock(st.Else)
		}
		return flowNone, nil

	case ast.For:
		return it.execFor(st)

	case ast.While:
		it.pushScope()
		defer it.popScope()
		for {
			cond, err := it.eval(st.Cond)
			if err != nil {
				return flowNone, err
			}
			if !cond.Truthy() {
				return flowNone, nil
			}
			f, err := it.execBlock(st.Body)
			if err != nil {
				return flowNone, err
			}
			switch f.sig {
			case sigBreak:
				return flowNone, nil
			case sigReturn:
				return f, nil
			}
		}

	case ast.FnDef:
		it.fns[st.Name] = fnDef{params: st.Params, body: st.Body}
		return flowNone, nil

	case ast.Return:
		v := value.None()
		if st.Value != nil {
			var err error
			v, err = it.eval(st.Value)
			if err != nil {
				return flowNone, err
			}
		}
		return flow{sig: sigReturn, val: v}, nil

	case ast.Break:
		return flow{sig: sigBreak}, nil

	case ast.Continue:
		return flow{sig: sigContinue}, nil

	case ast.ExprStmt:
		_, err := it.eval(st.X)
		return flowNone, err

	default:
		return flowNone, errf("unhandled statement %T", s)
	}
}

// execFor implements `for var in s..e { body }`: ascending
// half-open [s, e), descending inclusive-like [e, s-1] reversed.
func (it *Interp) execFor(st ast.For) (flow, error) {
	sv, err := it.eval(st.Start)
	if err != nil {
		return flowNone, err
	}
	if sv.Kind() != value.KindInt {
		return flowNone, errf("for range start must be int, got %s", sv.TypeName())
	}
	ev, err := it.eval(st.End)
	if err != nil {
		return flowNone, err
	}
	if ev.Kind() != value.KindInt {
		return flowNone, errf("for range end must be int, got %s", ev.TypeName())
	}
	s, e := sv.Int(), ev.Int()

	it.pushScope()
	defer it.popScope()

	step := func(i int64) (stop bool, retFlow flow, err error) {
		it.top()[st.Var] = value.Int(i)
		f, err := it.execBlock(st.Body)
		if err != nil {
			return true, flowNone, err
		}
		switch f.sig {
		case sigBreak:
			return true, flowNone, nil
		case sigReturn:
			return true, f, nil
		}
		return false, flowNone, nil
	}

	if s <= e {
		for i := s; i < e; i++ {
			stop, f, err := step(i)
			if err != nil {
				return flowNone, err
			}
			if stop {
				return f, nil
			}
		}
	} else {
		for i := s - 1; i >= e; i-- {
			stop, f, err := step(i)
			if err != nil {
				return flowNone, err
			}
			if stop {
				return f, nil
			}
		}
	}
	return flowNone, nil
}

func (it *Interp) eval(e ast.Expr) (value.Value, error) {
	switch x := e.(type) {
	case ast.Lit:
		return x.Value, nil

	case ast.Var:
		return it.getVar(x.Name)

	case ast.Unary:
		v, err := it.eval(x.X)
		if err != nil {
			return value.None(), err
		}
		switch x.Op {
		case ast.Neg:
			switch v.Kind() {
			case value.KindInt:
				return value.Int(-v.Int()), nil
			case value.KindFloat:
				return value.Float(-v.Float()), nil
			default:
				return value.None(), errf("cannot negate non-number")
			}
		default: // ast.Not
			return value.Bool(!v.Truthy()), nil
		}

	case ast.Binary:
		return it.evalBinary(x)

	case ast.Call:
		args := make([]value.Value, len(x.Args))
		for i, a := range x.Args {
			v, err := it.eval(a)
			if err != nil {
				return value.None(), err
			}
			args[i] = v
		}
		return it.callFn(x.Name, args)

	default:
		return value.None(), errf("unhandled expression %T", e)
	}
}

func (it *Interp) evalBinary(x ast.Binary) (value.Value, error) {
	lv, err := it.eval(x.X)
	if err != nil {
		return value.None(), err
	}
	switch x.Op {
	case ast.And:
		if !lv.Truthy() {
			return lv, nil
		}
		return it.eval(x.Y)
	case ast.Or:
		if lv.Truthy() {
			return lv, nil
		}
		return it.eval(x.Y)
	}

	rv, err := it.eval(x.Y)
	if err != nil {
		return value.None(), err
	}

	switch x.Op {
	case ast.Add:
		switch {
		case lv.Kind() == value.KindInt && rv.Kind() == value.KindInt:
			return value.Int(lv.Int() + rv.Int()), nil
		case lv.Kind() == value.KindFloat || rv.Kind() == value.KindFloat:
			return value.Float(lv.AsFloat() + rv.AsFloat()), nil
		case lv.Kind() == value.KindStr:
			return value.Str(lv.Str() + rv.String()), nil
		default:
			return value.None(), errf("cannot add %s + %s", lv.TypeName(), rv.TypeName())
		}
	case ast.Sub:
		return value.Float(lv.AsFloat() - rv.AsFloat()), nil
	case ast.Mul:
		if lv.Kind() == value.KindInt && rv.Kind() == value.KindInt {
			return value.Int(lv.Int() * rv.Int()), nil
		}
		return value.Float(lv.AsFloat() * rv.AsFloat()), nil
	case ast.Div:
		d := rv.AsFloat()
		if d == 0.0 {
			return value.None(), errf("division by zero")
		}
		return value.Float(lv.AsFloat() / d), nil
	case ast.Mod:
		if lv.Kind() == value.KindInt && rv.Kind() == value.KindInt {
			if rv.Int() == 0 {
				return value.None(), errf("modulo by zero")
			}
			return value.Int(lv.Int() % rv.Int()), nil
		}
		l, r := lv.AsFloat(), rv.AsFloat()
		return value.Float(mathMod(l, r)), nil
	case ast.Eq:
		return value.Bool(lv.String() == rv.String()), nil
	case ast.Ne:
		return value.Bool(lv.String() != rv.String()), nil
	case ast.Lt:
		return value.Bool(lv.AsFloat() < rv.AsFloat()), nil
	case ast.Gt:
		return value.Bool(lv.AsFloat() > rv.AsFloat()), nil
	case ast.Le:
		return value.Bool(lv.AsFloat() <= rv.AsFloat()), nil
	case ast.Ge:
		return value.Bool(lv.AsFloat() >= rv.AsFloat()), nil
	default:
		return value.None(), errf("unhandled operator")
	}
}

func mathMod(a, b float64) float64 {
	return math.Mod(a, b)
}

// callFn dispatches to a built-in (builtins.go) or a user-defined
// function, in that order (builtins shadow user definitions of the
// same name, matching the original's match-builtins-first order).
func (it *Interp) callFn(name string, args []value.Value) (value.Value, error) {
	if fn, ok := builtins[name]; ok {
		return fn(it, args)
	}
	def, ok := it.fns[name]
	if !ok {
		return value.None(), errf("undefined function '%s'", name)
	}
	if len(args) != len(def.params) {
		return value.None(), errf("%s() expects %d args, got %d", name, len(def.params), len(args))
	}
	it.pushScope()
	defer it.popScope()
	for i, p := range def.params {
		it.top()[p] = args[i]
	}
	f, err := it.execBlock(def.body)
	if err != nil {
		return value.None(), err
	}
	if f.sig == sigReturn {
		return f.val, nil
	}
	return value.None(), nil
}
