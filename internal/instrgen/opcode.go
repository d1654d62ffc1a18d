// Package instrgen implements spec.md §4.5's instruction generator: the
// third and final compiler stage, lowering a *typedast.Program into a flat
// stream of Instructions addressed by resolved integer offsets.
//
// Grounded on original_source/rusty_basic/src/instruction_generator
// (instruction_generator.rs, calls.rs, label_resolver.rs, print.rs); the
// three-pass shape (metadata collection, emission with symbolic labels,
// label resolution) and the opcode set itself follow that package almost
// verbatim, translated into Go idiom.
package instrgen

// OpCode identifies one instruction. Unlike the teacher's packed 32-bit
// bytecode.Instruction (internal/bytecode/instruction.go in the teacher
// repo), our opcodes carry rich payloads -- Variants, resolved Types,
// BareNames, RootPaths -- that do not fit an 8-bit-opcode/24-bit-operand
// word, so Instruction below is a flat struct instead of a packed word.
// The enum-plus-String()-table idiom is kept; only the packing is dropped.
type OpCode byte

const (
	// Data path: register-to-register moves and the value stack used to
	// stash register A across a nested evaluation (e.g. array indices).
	OpLoadIntoA OpCode = iota
	OpCopyAToB
	OpCopyAToC
	OpCopyAToD
	OpCopyCToB
	OpCopyDToA
	OpCopyDToB
	OpPushAToValueStack
	OpPopValueStackIntoA

	// Arithmetic and logic, operating on registers A and B, result in A.
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpLess
	OpLessOrEqual
	OpEqual
	OpGreaterOrEqual
	OpGreater
	OpNotEqual
	OpNegateA
	OpNotA
	OpAnd
	OpOr

	// L-value addressing: the var-path deque (spec.md §4.5).
	OpVarPathName
	OpVarPathIndex
	OpVarPathProperty
	OpCopyAToVarPath
	OpCopyVarPathToA
	OpPopVarPath

	// Control flow.
	OpLabel
	OpJump
	OpJumpIfFalse
	OpGoSub
	OpReturn
	OpResume
	OpResumeNext
	OpResumeLabel
	OpHalt

	// Calls and frames: the ten-step calling convention of spec.md §4.5.
	OpPushRegisters
	OpPopRegisters
	OpPushRet
	OpPopRet
	OpBeginCollectArguments
	OpPushNamed
	OpPushUnnamedByVal
	OpPushUnnamedByRef
	OpPushStack
	OpPushStaticStack
	OpPopStack
	OpEnqueueToReturnStack
	OpDequeueFromReturnStack
	OpStashFunctionReturnValue
	OpUnStashFunctionReturnValue

	// Errors.
	OpThrow
	OpOnErrorGoTo
	OpOnErrorResumeNext
	OpOnErrorGoToZero

	// Types.
	OpCast
	OpFixLength

	// Allocation, emitted at DIM/REDIM sites and at FUNCTION entry for the
	// default return value.
	OpAllocateBuiltIn
	OpAllocateFixedLengthString
	OpAllocateArrayIntoA
	OpAllocateUserDefined
	OpIsVariableDefined

	// Built-in invocation.
	OpBuiltInSub
	OpBuiltInFunction

	// The PRINT machine. Deprecated in the original but still the only
	// lowering PRINT has; spec.md §6 carries it forward unchanged.
	OpPrintSetPrinterType
	OpPrintSetFileHandle
	OpPrintSetFormatStringFromA
	OpPrintComma
	OpPrintSemicolon
	OpPrintValueFromA
	OpPrintEnd

	opCodeCount
)

var opCodeNames = [...]string{
	OpLoadIntoA:                 "LoadIntoA",
	OpCopyAToB:                  "CopyAToB",
	OpCopyAToC:                  "CopyAToC",
	OpCopyAToD:                  "CopyAToD",
	OpCopyCToB:                  "CopyCToB",
	OpCopyDToA:                  "CopyDToA",
	OpCopyDToB:                  "CopyDToB",
	OpPushAToValueStack:         "PushAToValueStack",
	OpPopValueStackIntoA:        "PopValueStackIntoA",
	OpPlus:                      "Plus",
	OpMinus:                     "Minus",
	OpMultiply:                  "Multiply",
	OpDivide:                    "Divide",
	OpModulo:                    "Modulo",
	OpLess:                      "Less",
	OpLessOrEqual:               "LessOrEqual",
	OpEqual:                     "Equal",
	OpGreaterOrEqual:            "GreaterOrEqual",
	OpGreater:                   "Greater",
	OpNotEqual:                  "NotEqual",
	OpNegateA:                   "NegateA",
	OpNotA:                      "NotA",
	OpAnd:                       "And",
	OpOr:                        "Or",
	OpVarPathName:               "VarPathName",
	OpVarPathIndex:              "VarPathIndex",
	OpVarPathProperty:           "VarPathProperty",
	OpCopyAToVarPath:            "CopyAToVarPath",
	OpCopyVarPathToA:            "CopyVarPathToA",
	OpPopVarPath:                "PopVarPath",
	OpLabel:                     "Label",
	OpJump:                      "Jump",
	OpJumpIfFalse:               "JumpIfFalse",
	OpGoSub:                     "GoSub",
	OpReturn:                    "Return",
	OpResume:                    "Resume",
	OpResumeNext:                "ResumeNext",
	OpResumeLabel:               "ResumeLabel",
	OpHalt:                      "Halt",
	OpPushRegisters:             "PushRegisters",
	OpPopRegisters:              "PopRegisters",
	OpPushRet:                   "PushRet",
	OpPopRet:                    "PopRet",
	OpBeginCollectArguments:     "BeginCollectArguments",
	OpPushNamed:                 "PushNamed",
	OpPushUnnamedByVal:          "PushUnnamedByVal",
	OpPushUnnamedByRef:          "PushUnnamedByRef",
	OpPushStack:                 "PushStack",
	OpPushStaticStack:           "PushStaticStack",
	OpPopStack:                  "PopStack",
	OpEnqueueToReturnStack:      "EnqueueToReturnStack",
	OpDequeueFromReturnStack:    "DequeueFromReturnStack",
	OpStashFunctionReturnValue:  "StashFunctionReturnValue",
	OpUnStashFunctionReturnValue: "UnStashFunctionReturnValue",
	OpThrow:                     "Throw",
	OpOnErrorGoTo:               "OnErrorGoTo",
	OpOnErrorResumeNext:         "OnErrorResumeNext",
	OpOnErrorGoToZero:           "OnErrorGoToZero",
	OpCast:                      "Cast",
	OpFixLength:                 "FixLength",
	OpAllocateBuiltIn:           "AllocateBuiltIn",
	OpAllocateFixedLengthString: "AllocateFixedLengthString",
	OpAllocateArrayIntoA:        "AllocateArrayIntoA",
	OpAllocateUserDefined:       "AllocateUserDefined",
	OpIsVariableDefined:         "IsVariableDefined",
	OpBuiltInSub:                "BuiltInSub",
	OpBuiltInFunction:           "BuiltInFunction",
	OpPrintSetPrinterType:       "PrintSetPrinterType",
	OpPrintSetFileHandle:        "PrintSetFileHandle",
	OpPrintSetFormatStringFromA: "PrintSetFormatStringFromA",
	OpPrintComma:                "PrintComma",
	OpPrintSemicolon:            "PrintSemicolon",
	OpPrintValueFromA:           "PrintValueFromA",
	OpPrintEnd:                  "PrintEnd",
}

func (op OpCode) String() string {
	if int(op) < len(opCodeNames) && opCodeNames[op] != "" {
		return opCodeNames[op]
	}
	return "OpCode(?)"
}

// PrinterType selects the PRINT machine's destination (spec.md §6).
type PrinterType byte

const (
	PrinterScreen PrinterType = iota
	PrinterLPrint
	PrinterFile
)
