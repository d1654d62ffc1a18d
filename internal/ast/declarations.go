package ast

// ParamMode selects by-reference (default) or by-value passing
// (spec.md §4.4 ParamType, GLOSSARY "By-ref / by-value argument").
type ParamMode int

const (
	ByRef ParamMode = iota
	ByVal
)

// Parameter is one formal parameter of a SUB/FUNCTION.
type Parameter struct {
	pos
	Name *Identifier
	Type *TypeExpr
	Mode ParamMode
}

func (p *Parameter) String() string { return p.Name.String() }

// SubDecl is a forward DECLARE SUB.
type SubDecl struct {
	pos
	Name   string
	Params []*Parameter
}

func (s *SubDecl) statementNode()      {}
func (s *SubDecl) globalStatementNode() {}
func (s *SubDecl) String() string       { return "DECLARE SUB " + s.Name }

// FunctionDecl is a forward DECLARE FUNCTION.
type FunctionDecl struct {
	pos
	Name       string
	Params     []*Parameter
	ReturnType *TypeExpr
}

func (f *FunctionDecl) statementNode()      {}
func (f *FunctionDecl) globalStatementNode() {}
func (f *FunctionDecl) String() string       { return "DECLARE FUNCTION " + f.Name }

// SubImplementation is a full SUB ... END SUB body.
type SubImplementation struct {
	pos
	Name     string
	Params   []*Parameter
	Body     []Statement
	IsStatic bool
}

func (s *SubImplementation) statementNode()      {}
func (s *SubImplementation) globalStatementNode() {}
func (s *SubImplementation) String() string       { return "SUB " + s.Name }

// FunctionImplementation is a full FUNCTION ... END FUNCTION body.
type FunctionImplementation struct {
	pos
	Name       string
	Params     []*Parameter
	ReturnType *TypeExpr
	Body       []Statement
	IsStatic   bool
}

func (f *FunctionImplementation) statementNode()      {}
func (f *FunctionImplementation) globalStatementNode() {}
func (f *FunctionImplementation) String() string       { return "FUNCTION " + f.Name }

// FieldDecl is one field of a TYPE ... END TYPE definition.
type FieldDecl struct {
	pos
	Name *Identifier
	Type *TypeExpr
}

// TypeDefinition is a TYPE ... END TYPE block.
type TypeDefinition struct {
	pos
	Name   string
	Fields []*FieldDecl
}

func (t *TypeDefinition) statementNode()      {}
func (t *TypeDefinition) globalStatementNode() {}
func (t *TypeDefinition) String() string       { return "TYPE " + t.Name }

// ConstDecl is one CONST X = expr entry (spec.md §4.4 pass L3).
type ConstDecl struct {
	pos
	Name  *Identifier
	Value Expression
}

func (c *ConstDecl) statementNode()      {}
func (c *ConstDecl) globalStatementNode() {}
func (c *ConstDecl) String() string       { return "CONST " + c.Name.String() }

// DataStatement is a DATA literal-list statement; legal only at global
// scope (spec.md §4.4 L5: "DATA is illegal inside SUB/FUNCTION").
type DataStatement struct {
	pos
	Values []Expression
}

func (d *DataStatement) statementNode()      {}
func (d *DataStatement) globalStatementNode() {}
func (d *DataStatement) String() string       { return "DATA ..." }

// ReadStatement reads the next DATA values into each target in order.
type ReadStatement struct {
	pos
	Targets []Expression
}

func (r *ReadStatement) statementNode()      {}
func (r *ReadStatement) globalStatementNode() {}
func (r *ReadStatement) String() string       { return "READ ..." }
