package instrgen

import (
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

// genPrint lowers PRINT onto the deprecated-but-live PRINT machine
// (spec.md §6), grounded on original_source's print.rs: printer selection,
// then a format string (always absent in this dialect's typed tree, so a
// constant false is pushed in its place), then one PrintValueFromA per
// argument interleaved with PrintComma/PrintSemicolon separators.
func (g *generator) genPrint(n *typedast.PrintStatement) {
	pos := n.Pos()

	if n.FileHandle != nil {
		g.push(pos, Instruction{Op: OpPrintSetPrinterType, Printer: PrinterFile})
		handle := 0
		if lit, ok := n.FileHandle.(*typedast.IntegerLiteral); ok {
			handle = int(lit.Value)
		}
		g.push(pos, Instruction{Op: OpPrintSetFileHandle, FileHandle: handle})
	} else {
		g.push(pos, Instruction{Op: OpPrintSetPrinterType, Printer: PrinterScreen})
	}

	g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Integer(0)})
	g.push(pos, Instruction{Op: OpPrintSetFormatStringFromA})

	for _, item := range n.Items {
		if item.Expr != nil {
			g.genExpr(item.Expr)
			g.push(pos, Instruction{Op: OpPrintValueFromA})
		}
		switch item.Sep {
		case ',':
			g.push(pos, Instruction{Op: OpPrintComma})
		case ';':
			g.push(pos, Instruction{Op: OpPrintSemicolon})
		}
	}

	g.push(pos, Instruction{Op: OpPrintEnd})
}
