package instrgen

import (
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

// AddressOrLabel is a jump target: a symbolic label until the resolution
// pass rewrites it to a resolved instruction address (spec.md §4.5,
// "label resolution"). Grounded on the Rust AddressOrLabel enum.
type AddressOrLabel struct {
	Resolved bool
	Address  int
	Label    string
}

func unresolved(label string) AddressOrLabel { return AddressOrLabel{Label: label} }

func resolvedAt(addr int) AddressOrLabel { return AddressOrLabel{Resolved: true, Address: addr} }

// Instruction is one emitted step. Only the fields relevant to Op are
// meaningful; the rest are zero. See the per-opcode comment in opcode.go
// for which payload field an opcode consumes.
type Instruction struct {
	Op  OpCode
	Pos token.Position

	Value      variant.Variant   // LoadIntoA
	RootPath   names.RootPath    // VarPathName
	Field      names.BareName    // VarPathProperty, AllocateUserDefined
	Qualifier  names.Qualifier   // Cast, AllocateBuiltIn
	Length     int               // FixLength, AllocateFixedLengthString
	ArrayType  typedast.Type     // AllocateArrayIntoA
	Target     AddressOrLabel    // Jump, JumpIfFalse, GoSub, Return, OnErrorGoTo, ResumeLabel
	LabelName  string            // Label
	RetIndex   int               // PushRet, EnqueueToReturnStack, DequeueFromReturnStack counterpart
	Param      typedast.Param    // PushNamed
	Subprogram string            // PushStaticStack (subprogram label, e.g. ":sub:Foo")
	ReturnName names.Name        // StashFunctionReturnValue
	ErrorKind  cerrors.Kind      // Throw
	BuiltinID  int               // BuiltInSub, BuiltInFunction
	DimVar     typedast.DimVar   // IsVariableDefined
	Printer    PrinterType       // PrintSetPrinterType
	FileHandle int               // PrintSetFileHandle
}

// Result is the instruction generator's published output: the resolved
// instruction stream, the statement-address table RESUME NEXT needs
// (spec.md §4.5), and a CompilationID stamped for diagnostics/snapshot
// correlation (SPEC_FULL.md's domain-stack wiring for google/uuid).
type Result struct {
	CompilationID     string
	Instructions      []Instruction
	StatementAddresses []int
}
