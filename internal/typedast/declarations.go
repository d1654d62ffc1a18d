package typedast

import "github.com/basiclang/basiccomp/internal/names"

// Param is one resolved formal parameter carried on the typed
// implementation node itself, alongside the same information recorded in
// the subprogram repository (spec.md §3, "Subprogram metadata").
type Param struct {
	Name  names.BareName
	Type  Type
	ByVal bool
}

// SubImplementation is a full SUB ... END SUB body, already name-resolved
// (spec.md §4.4 pass L4). Forward DECLAREs never reach the typed tree: they
// are folded into the subprogram repository by pass L2 and contribute no
// code of their own.
type SubImplementation struct {
	pos
	Name     names.BareName
	Params   []Param
	Body     []Statement
	IsStatic bool
}

func (s *SubImplementation) statementNode()      {}
func (s *SubImplementation) globalStatementNode() {}
func (s *SubImplementation) String() string       { return "SUB " + s.Name.String() }

type FunctionImplementation struct {
	pos
	Name       names.BareName
	Params     []Param
	ReturnType Type
	Body       []Statement
	IsStatic   bool
}

func (f *FunctionImplementation) statementNode()      {}
func (f *FunctionImplementation) globalStatementNode() {}
func (f *FunctionImplementation) String() string       { return "FUNCTION " + f.Name.String() }
