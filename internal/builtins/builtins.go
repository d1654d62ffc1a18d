// Package builtins tabulates the fixed arity/type contract of every
// built-in sub and function named in spec.md §6. The linter consults this
// table for signature checking (pass L4); the instruction generator
// consults it for opcode identity and for which unnamed arguments are
// passed by reference.
//
// Grounded one-entry-per-name on original_source/rusty_linter/src/built_ins
// (one file per built-in there); kept as a single data table here since Go
// doesn't need a file per entry at this scale, mirroring how the teacher's
// internal/semantic/analyze_builtin_*.go methods are themselves pure
// signature dispatch.
package builtins

import "github.com/basiclang/basiccomp/internal/names"

// Function identifies a built-in function by a stable, order-independent id.
type Function int

const (
	FuncChr Function = iota
	FuncCvd
	FuncEnviron
	FuncEOF
	FuncErr
	FuncInkey
	FuncInstr
	FuncLBound
	FuncLCase
	FuncLeft
	FuncLen
	FuncLTrim
	FuncMid
	FuncMkd
	FuncPeek
	FuncRight
	FuncRTrim
	FuncSpace
	FuncStr
	FuncStrDollar // STRING$(n, c)
	FuncUBound
	FuncUCase
	FuncVal
	FuncVarPtr
	FuncVarSeg
)

// Sub identifies a built-in sub (statement) by a stable id.
type Sub int

const (
	SubBeep Sub = iota
	SubClose
	SubColor
	SubLocate
	SubWidth
	SubViewPrint
	SubField
	SubGet
	SubInput
	SubLineInput
	SubKill
	SubName
	SubOpen
	SubPut
	SubRead
	SubPoke
	SubDefSeg
	SubLSet
)

// Arity describes the accepted argument count of a built-in, as a
// [Min, Max] inclusive range. Max == -1 means unbounded.
type Arity struct {
	Min, Max int
}

// FunctionSignature is the arity/type contract the linter checks, and the
// by-ref mask the generator consults when lowering unnamed arguments
// (spec.md §4.5, "PushUnnamedByVal / PushUnnamedByRef").
type FunctionSignature struct {
	Name       string
	Arity      Arity
	ByRef      []bool // per positional argument; arguments beyond len(ByRef) default to by-val
	ReturnType names.Qualifier
}

// SubSignature is the same contract for a built-in sub (no return type).
type SubSignature struct {
	Name  string
	Arity Arity
	ByRef []bool
}

var functionSignatures = map[Function]FunctionSignature{
	FuncChr:       {Name: "CHR$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncCvd:       {Name: "CVD", Arity: Arity{1, 1}, ReturnType: names.QDouble},
	FuncEnviron:   {Name: "ENVIRON$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncEOF:       {Name: "EOF", Arity: Arity{1, 1}, ReturnType: names.QInteger},
	FuncErr:       {Name: "ERR", Arity: Arity{0, 0}, ReturnType: names.QInteger},
	FuncInkey:     {Name: "INKEY$", Arity: Arity{0, 0}, ReturnType: names.QString},
	FuncInstr:     {Name: "INSTR", Arity: Arity{2, 3}, ReturnType: names.QInteger},
	FuncLBound:    {Name: "LBOUND", Arity: Arity{1, 2}, ByRef: []bool{true}, ReturnType: names.QInteger},
	FuncLCase:     {Name: "LCASE$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncLeft:      {Name: "LEFT$", Arity: Arity{2, 2}, ReturnType: names.QString},
	FuncLen:       {Name: "LEN", Arity: Arity{1, 1}, ByRef: []bool{true}, ReturnType: names.QInteger},
	FuncLTrim:     {Name: "LTRIM$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncMid:       {Name: "MID$", Arity: Arity{2, 3}, ReturnType: names.QString},
	FuncMkd:       {Name: "MKD$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncPeek:      {Name: "PEEK", Arity: Arity{1, 1}, ReturnType: names.QInteger},
	FuncRight:     {Name: "RIGHT$", Arity: Arity{2, 2}, ReturnType: names.QString},
	FuncRTrim:     {Name: "RTRIM$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncSpace:     {Name: "SPACE$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncStr:       {Name: "STR$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncStrDollar: {Name: "STRING$", Arity: Arity{2, 2}, ReturnType: names.QString},
	FuncUBound:    {Name: "UBOUND", Arity: Arity{1, 2}, ByRef: []bool{true}, ReturnType: names.QInteger},
	FuncUCase:     {Name: "UCASE$", Arity: Arity{1, 1}, ReturnType: names.QString},
	FuncVal:       {Name: "VAL", Arity: Arity{1, 1}, ReturnType: names.QSingle},
	FuncVarPtr:    {Name: "VARPTR", Arity: Arity{1, 1}, ByRef: []bool{true}, ReturnType: names.QLong},
	FuncVarSeg:    {Name: "VARSEG", Arity: Arity{1, 1}, ByRef: []bool{true}, ReturnType: names.QInteger},
}

// LookupFunction returns the signature for name (case-insensitive), and
// whether it is a recognized built-in function at all.
func LookupFunction(name string) (Function, FunctionSignature, bool) {
	fn, ok := functionByName[normalize(name)]
	if !ok {
		return 0, FunctionSignature{}, false
	}
	return fn, functionSignatures[fn], true
}

var functionByName = buildFunctionIndex()

func buildFunctionIndex() map[string]Function {
	idx := make(map[string]Function, len(functionSignatures))
	for fn, sig := range functionSignatures {
		idx[normalize(sig.Name)] = fn
	}
	return idx
}

// COLOR takes 2-3 numeric args encoded with a leading presence-flags
// integer (bit0=foreground, bit1=background); LOCATE takes 2-4 integers
// flagged the same way (bit0=row,bit1=col,bit2=cursor); WIDTH takes 0-2
// integers each preceded by a presence flag. These flag-encoded subs are
// parsed directly into the flag+value argument list described in
// spec.md §6 and verified in the parser's own tests (Scenario F); the
// arities below describe the *encoded* argument list the linter sees,
// which already includes the flag integer(s).
var subSignatures = map[Sub]SubSignature{
	SubBeep:      {Name: "BEEP", Arity: Arity{0, 0}},
	SubClose:     {Name: "CLOSE", Arity: Arity{0, -1}},
	SubColor:     {Name: "COLOR", Arity: Arity{1, 3}},
	SubLocate:    {Name: "LOCATE", Arity: Arity{1, 5}},
	SubWidth:     {Name: "WIDTH", Arity: Arity{0, 4}},
	SubViewPrint: {Name: "VIEW PRINT", Arity: Arity{0, 2}},
	SubField:     {Name: "FIELD", Arity: Arity{4, -1}},
	SubGet:       {Name: "GET", Arity: Arity{2, 2}},
	SubInput:     {Name: "INPUT", Arity: Arity{1, -1}},
	SubLineInput: {Name: "LINE INPUT", Arity: Arity{1, 2}, ByRef: []bool{false, true}},
	SubKill:      {Name: "KILL", Arity: Arity{1, 1}},
	SubName:      {Name: "NAME", Arity: Arity{2, 2}},
	SubOpen:      {Name: "OPEN", Arity: Arity{2, 4}},
	SubPut:       {Name: "PUT", Arity: Arity{2, 2}},
	SubRead:      {Name: "READ", Arity: Arity{1, -1}},
	SubPoke:      {Name: "POKE", Arity: Arity{2, 2}},
	SubDefSeg:    {Name: "DEF SEG", Arity: Arity{0, 1}},
	SubLSet:      {Name: "LSET", Arity: Arity{2, 2}, ByRef: []bool{true, false}},
}

var subByName = buildSubIndex()

func buildSubIndex() map[string]Sub {
	idx := make(map[string]Sub, len(subSignatures))
	for s, sig := range subSignatures {
		idx[normalize(sig.Name)] = s
	}
	return idx
}

func LookupSub(name string) (Sub, SubSignature, bool) {
	s, ok := subByName[normalize(name)]
	if !ok {
		return 0, SubSignature{}, false
	}
	return s, subSignatures[s], true
}

func FunctionSig(fn Function) FunctionSignature { return functionSignatures[fn] }
func SubSig(s Sub) SubSignature                 { return subSignatures[s] }

func normalize(s string) string {
	return names.NewBareName(s).Key()
}

// IsByRef reports whether the positional argument at index i is passed by
// reference for a built-in function call, consulted when the generator
// lowers PushUnnamedByVal/PushUnnamedByRef (spec.md §4.5).
func (s FunctionSignature) IsByRef(i int) bool {
	if i < len(s.ByRef) {
		return s.ByRef[i]
	}
	return false
}

func (s SubSignature) IsByRef(i int) bool {
	if i < len(s.ByRef) {
		return s.ByRef[i]
	}
	return false
}

// Check validates an actual argument count against Arity, returning
// false if out of range (linter raises ArgumentCountMismatch).
func (a Arity) Check(n int) bool {
	if n < a.Min {
		return false
	}
	if a.Max >= 0 && n > a.Max {
		return false
	}
	return true
}
