// interpreter.go — runtime value model, environments, the variable watch
// registry, and the tree-walking evaluator.
//
// VALUES
// ------
// Value is a tagged sum over null, bool, int64, float64, and string. Integer
// and float literals keep separate tags so that `print 4` emits "4" rather
// than "4.0"; arithmetic stays integral while both operands are integers,
// except division, which promotes to float when the quotient is not exact.
//
// ENVIRONMENTS & WATCH
// --------------------
// Environments form a lexical chain via parent. Lookups walk parent-ward; the
// first scope containing the name wins. Assign searches outward for an
// existing binding and, when none exists anywhere in the chain, creates the
// binding in the scope where Assign was called.
//
// The watch is one (name, callback) pair per evaluation, held in a registry
// shared by every environment of the chain: children receive the registry at
// construction, so a watch set anywhere observes every define/assign of that
// name, exactly once per mutation, and installing a new watch replaces the
// old one everywhere at once.
//
// ERRORS & CONTROL FLOW
// ---------------------
// Evaluation fails with *RuntimeError carrying a 1-based source position.
// Break/continue are modeled as control-signal results returned up the
// evaluator call stack, consumed by the nearest enclosing while loop. The
// grammar has no break/continue statement yet, so nothing currently produces
// the signals; the plumbing is in place for when it does.
package tint

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Version of the Tint toolchain.
const Version = "0.1.0"

////////////////////////////////////////////////////////////////////////////////
//                                   VALUES
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	TagNull ValueTag = iota // nil / absent (no payload)
	TagBool                 // bool
	TagInt                  // int64
	TagNum                  // float64
	TagStr                  // string
)

func (t ValueTag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "boolean"
	case TagInt:
		return "integer"
	case TagNum:
		return "number"
	case TagStr:
		return "string"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds: bool for TagBool, int64 for TagInt, float64 for TagNum, string for
// TagStr, nil for TagNull.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: TagNull}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: TagBool, Data: b} }
func Int(n int64) Value   { return Value{Tag: TagInt, Data: n} }
func Num(f float64) Value { return Value{Tag: TagNum, Data: f} }
func Str(s string) Value  { return Value{Tag: TagStr, Data: s} }

// String renders the print form: numbers in their natural decimal form,
// booleans as the language's own TRUE/FALSE literals, strings unquoted.
func (v Value) String() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagBool:
		if v.Data.(bool) {
			return "TRUE"
		}
		return "FALSE"
	case TagInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case TagNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case TagStr:
		return v.Data.(string)
	default:
		return "<unknown>"
	}
}

// Truthy maps any runtime value to a boolean for conditional and logical
// contexts: null is false, booleans are themselves, zero numbers and empty
// strings are false, everything else is true.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagNull:
		return false
	case TagBool:
		return v.Data.(bool)
	case TagInt:
		return v.Data.(int64) != 0
	case TagNum:
		return v.Data.(float64) != 0
	case TagStr:
		return v.Data.(string) != ""
	default:
		return true
	}
}

func isNumber(v Value) bool { return v.Tag == TagInt || v.Tag == TagNum }

func toFloat(v Value) float64 {
	if v.Tag == TagInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

// valuesEqual is the "==" rule: numeric equality across int/float, exact
// equality within a tag, false across different tags otherwise.
func valuesEqual(a, b Value) bool {
	if isNumber(a) && isNumber(b) {
		if a.Tag == TagInt && b.Tag == TagInt {
			return a.Data.(int64) == b.Data.(int64)
		}
		return toFloat(a) == toFloat(b)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNull:
		return true
	case TagBool:
		return a.Data.(bool) == b.Data.(bool)
	case TagStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return false
	}
}

////////////////////////////////////////////////////////////////////////////////
//                             ENVIRONMENTS & WATCH
////////////////////////////////////////////////////////////////////////////////

// WatchFunc receives a notification for every define/assign of the watched
// variable, with the value and the 1-based source position of the mutation.
type WatchFunc func(name string, v Value, line, col int)

// watchReg is the per-evaluation watch registry. Every Env of a chain points
// at the same instance, so SetWatch replaces the watch everywhere at once.
type watchReg struct {
	name string
	fn   WatchFunc
}

// Env is a lexical scope with a parent link. The root environment owns a
// fresh watch registry; children created with NewChild share their parent's.
type Env struct {
	parent *Env
	table  map[string]Value
	watch  *watchReg
}

// NewEnv creates a root environment.
func NewEnv() *Env {
	return &Env{table: make(map[string]Value), watch: &watchReg{}}
}

// NewChild creates a scope nested in e, inheriting the active watch.
func NewChild(e *Env) *Env {
	return &Env{parent: e, table: make(map[string]Value), watch: e.watch}
}

// SetWatch installs the single (name, callback) watch pair for the whole
// chain, replacing any previous watch. A nil fn clears the watch.
func (e *Env) SetWatch(name string, fn WatchFunc) {
	e.watch.name = name
	e.watch.fn = fn
}

func (e *Env) notifyWatch(name string, v Value, line, col int) {
	if e.watch.fn != nil && e.watch.name == name {
		e.watch.fn(name, v, line, col)
	}
}

// Define unconditionally (re)binds name in the current scope and fires the
// watch notification.
func (e *Env) Define(name string, v Value, line, col int) {
	e.table[name] = v
	e.notifyWatch(name, v, line, col)
}

// Assign updates the nearest existing binding of name. When no binding exists
// anywhere in the chain, the name is created in the scope Assign was called
// on — not the global scope. Either way the watch notification fires once.
func (e *Env) Assign(name string, v Value, line, col int) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.table[name]; ok {
			env.table[name] = v
			env.notifyWatch(name, v, line, col)
			return
		}
	}
	e.table[name] = v
	e.notifyWatch(name, v, line, col)
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.table[name]; ok {
			return v, true
		}
	}
	return Null, false
}

// Exists reports whether name is bound anywhere in the chain.
func (e *Env) Exists(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Names returns the bindings of the current scope only (REPL :env dump).
func (e *Env) Names() map[string]Value {
	out := make(map[string]Value, len(e.table))
	for k, v := range e.table {
		out[k] = v
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
//                                   ERRORS
////////////////////////////////////////////////////////////////////////////////

// RuntimeError represents an execution-time failure with a 1-based source
// position: division by zero, undefined variables, and any node or operator
// kind the evaluator does not recognize.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func rtErr(n Node, format string, args ...interface{}) error {
	line, col := n.Pos()
	return &RuntimeError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

////////////////////////////////////////////////////////////////////////////////
//                                 INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// ctrl is the control-flow signal returned alongside each statement's value:
// completed normally, break, or continue. Loops consume break/continue;
// blocks pass them through.
type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
)

// Interp evaluates Tint programs against a persistent global environment.
// Each Interp is single-threaded; concurrent callers must use their own.
type Interp struct {
	// Global is the root environment; it lives for the whole evaluation and
	// persists across EvalSource calls (REPL semantics).
	Global *Env

	out io.Writer
	log []string // every print line, in order
}

// NewInterp returns an interpreter with an empty global environment writing
// print output to stdout.
func NewInterp() *Interp {
	return &Interp{Global: NewEnv(), out: os.Stdout}
}

// SetOutput redirects print output. The append-only Output log is kept
// regardless of the writer.
func (ip *Interp) SetOutput(w io.Writer) { ip.out = w }

// Output returns every line printed so far, in execution order.
func (ip *Interp) Output() []string { return ip.log }

// Define pre-populates the global environment (initial bindings).
func (ip *Interp) Define(name string, v Value) { ip.Global.Define(name, v, 0, 0) }

// SetWatch installs the watch on the global chain. Environments created for
// blocks during evaluation inherit it.
func (ip *Interp) SetWatch(name string, fn WatchFunc) { ip.Global.SetWatch(name, fn) }

// EvalSource tokenizes, parses, and evaluates src in the global environment.
// The returned error is a *LexError, *ParseError, or *RuntimeError.
func (ip *Interp) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Null, err
	}
	return ip.Eval(prog)
}

// Eval evaluates a parsed AST in the global environment.
func (ip *Interp) Eval(n Node) (Value, error) {
	v, _, err := ip.eval(n, ip.Global)
	return v, err
}

// Eval is the one-shot convenience: a fresh interpreter per call.
func Eval(src string) (Value, error) {
	return NewInterp().EvalSource(src)
}

// EvalWith evaluates src with initial bindings and an optional watch. The
// bindings are installed before the watch, so they produce no notifications.
func EvalWith(src string, bindings map[string]Value, watch string, fn WatchFunc) (Value, error) {
	ip := NewInterp()
	for name, v := range bindings {
		ip.Define(name, v)
	}
	if watch != "" && fn != nil {
		ip.SetWatch(watch, fn)
	}
	return ip.EvalSource(src)
}

// eval dispatches over the closed node union. The switch is exhaustive; the
// default arm guards against future node kinds reaching an old evaluator.
func (ip *Interp) eval(n Node, env *Env) (Value, ctrl, error) {
	switch node := n.(type) {
	case *Program:
		return ip.evalStmts(node.Stmts, env)

	case *Block:
		// The child scope exists only for the duration of the block; the
		// caller's env is untouched on every exit path.
		return ip.evalStmts(node.Stmts, NewChild(env))

	case *Assign:
		v, err := ip.evalExpr(node.Value, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		env.Assign(node.Name, v, node.Line, node.Col)
		return v, ctrlNone, nil

	case *Print:
		v, err := ip.evalExpr(node.Value, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		line := v.String()
		ip.log = append(ip.log, line)
		fmt.Fprintln(ip.out, line)
		return Null, ctrlNone, nil

	case *If:
		cond, err := ip.evalExpr(node.Cond, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		if cond.Truthy() {
			return ip.eval(node.Then, env)
		}
		if node.Else != nil {
			return ip.eval(node.Else, env)
		}
		return Null, ctrlNone, nil

	case *While:
		return ip.evalWhile(node, env)

	case *Binary:
		v, err := ip.evalBinary(node, env)
		return v, ctrlNone, err

	case *Unary:
		v, err := ip.evalUnary(node, env)
		return v, ctrlNone, err

	case *NumberLit:
		return node.Val, ctrlNone, nil

	case *StringLit:
		return Str(node.Val), ctrlNone, nil

	case *BoolLit:
		return Bool(node.Val), ctrlNone, nil

	case *Ident:
		v, ok := env.Get(node.Name)
		if !ok {
			return Null, ctrlNone, rtErr(node, "undefined variable: %s", node.Name)
		}
		return v, ctrlNone, nil
	}

	return Null, ctrlNone, rtErr(n, "unknown node type: %T", n)
}

// evalStmts runs statements in order and yields the last statement's value,
// or null for an empty list. Break/continue signals stop execution and
// propagate to the nearest enclosing loop.
func (ip *Interp) evalStmts(stmts []Node, env *Env) (Value, ctrl, error) {
	result := Null
	for _, stmt := range stmts {
		v, c, err := ip.eval(stmt, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		result = v
		if c != ctrlNone {
			return result, c, nil
		}
	}
	return result, ctrlNone, nil
}

func (ip *Interp) evalWhile(node *While, env *Env) (Value, ctrl, error) {
	result := Null
	for {
		cond, err := ip.evalExpr(node.Cond, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		if !cond.Truthy() {
			return result, ctrlNone, nil
		}
		v, c, err := ip.eval(node.Body, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		switch c {
		case ctrlBreak:
			return result, ctrlNone, nil
		case ctrlContinue:
			continue
		}
		result = v
	}
}

// evalExpr evaluates in expression position, where control signals cannot
// occur.
func (ip *Interp) evalExpr(e Expr, env *Env) (Value, error) {
	v, _, err := ip.eval(e, env)
	return v, err
}

func (ip *Interp) evalBinary(node *Binary, env *Env) (Value, error) {
	left, err := ip.evalExpr(node.Left, env)
	if err != nil {
		return Null, err
	}

	// Short-circuit: the operand value itself is returned, not a coerced
	// boolean.
	switch node.Op {
	case "&&":
		if !left.Truthy() {
			return left, nil
		}
		return ip.evalExpr(node.Right, env)
	case "||":
		if left.Truthy() {
			return left, nil
		}
		return ip.evalExpr(node.Right, env)
	}

	right, err := ip.evalExpr(node.Right, env)
	if err != nil {
		return Null, err
	}

	switch node.Op {
	case "+":
		if left.Tag == TagStr || right.Tag == TagStr {
			return Str(left.String() + right.String()), nil
		}
		if !isNumber(left) || !isNumber(right) {
			return Null, rtErr(node, "cannot add %s and %s", left.Tag, right.Tag)
		}
		if left.Tag == TagInt && right.Tag == TagInt {
			return Int(left.Data.(int64) + right.Data.(int64)), nil
		}
		return Num(toFloat(left) + toFloat(right)), nil

	case "-", "*", "/", "%":
		return ip.arith(node, left, right)

	case "==":
		return Bool(valuesEqual(left, right)), nil
	case "!=":
		return Bool(!valuesEqual(left, right)), nil

	case "<", ">", "<=", ">=":
		return ip.compare(node, left, right)
	}

	return Null, rtErr(node, "unknown operator: %s", node.Op)
}

func (ip *Interp) arith(node *Binary, left, right Value) (Value, error) {
	if !isNumber(left) || !isNumber(right) {
		return Null, rtErr(node, "operator '%s' requires numbers, got %s and %s",
			node.Op, left.Tag, right.Tag)
	}
	bothInt := left.Tag == TagInt && right.Tag == TagInt
	lf, rf := toFloat(left), toFloat(right)

	switch node.Op {
	case "-":
		if bothInt {
			return Int(left.Data.(int64) - right.Data.(int64)), nil
		}
		return Num(lf - rf), nil
	case "*":
		if bothInt {
			return Int(left.Data.(int64) * right.Data.(int64)), nil
		}
		return Num(lf * rf), nil
	case "/":
		if rf == 0 {
			return Null, rtErr(node, "division by zero")
		}
		if bothInt {
			ln, rn := left.Data.(int64), right.Data.(int64)
			if ln%rn == 0 {
				return Int(ln / rn), nil
			}
		}
		return Num(lf / rf), nil
	case "%":
		if rf == 0 {
			return Null, rtErr(node, "division by zero")
		}
		if bothInt {
			return Int(left.Data.(int64) % right.Data.(int64)), nil
		}
		return Num(math.Mod(lf, rf)), nil
	}
	return Null, rtErr(node, "unknown operator: %s", node.Op)
}

// compare is the ordering rule: numbers compare numerically across int/float,
// strings compare lexically, and every other pairing is a runtime error.
func (ip *Interp) compare(node *Binary, left, right Value) (Value, error) {
	if isNumber(left) && isNumber(right) {
		lf, rf := toFloat(left), toFloat(right)
		switch node.Op {
		case "<":
			return Bool(lf < rf), nil
		case ">":
			return Bool(lf > rf), nil
		case "<=":
			return Bool(lf <= rf), nil
		case ">=":
			return Bool(lf >= rf), nil
		}
	}
	if left.Tag == TagStr && right.Tag == TagStr {
		ls, rs := left.Data.(string), right.Data.(string)
		switch node.Op {
		case "<":
			return Bool(ls < rs), nil
		case ">":
			return Bool(ls > rs), nil
		case "<=":
			return Bool(ls <= rs), nil
		case ">=":
			return Bool(ls >= rs), nil
		}
	}
	return Null, rtErr(node, "cannot compare %s and %s", left.Tag, right.Tag)
}

func (ip *Interp) evalUnary(node *Unary, env *Env) (Value, error) {
	operand, err := ip.evalExpr(node.Operand, env)
	if err != nil {
		return Null, err
	}
	switch node.Op {
	case "-":
		switch operand.Tag {
		case TagInt:
			return Int(-operand.Data.(int64)), nil
		case TagNum:
			return Num(-operand.Data.(float64)), nil
		}
		return Null, rtErr(node, "operator '-' requires a number, got %s", operand.Tag)
	case "!":
		return Bool(!operand.Truthy()), nil
	}
	return Null, rtErr(node, "unknown unary operator: %s", node.Op)
}
