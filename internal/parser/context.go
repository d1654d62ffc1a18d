package parser

// Context carries parsing state that depends on where in the grammar the
// cursor currently is, as opposed to the token stream itself (which Cursor
// owns). The grammar is context-sensitive in a small way: EXIT SUB, EXIT
// FUNCTION and EXIT FOR are only accepted inside their matching construct,
// so parseExit needs to know what it is nested inside.
type Context struct {
	// InSubOrFunction is true while parsing the body of a SubImplementation
	// or FunctionImplementation.
	InSubOrFunction bool

	// SubOrFunctionIsFunction distinguishes EXIT FUNCTION from EXIT SUB
	// when InSubOrFunction is true.
	SubOrFunctionIsFunction bool

	// InForLoop/InWhileLoop let EXIT FOR surface a clearer diagnostic when
	// used outside any loop, rather than the generic syntax error.
	InForLoop   bool
	InWhileLoop bool
}

// enterSubOrFunction (like enterFor and enterWhile) returns a copy of c with the given adjustments applied, used when
// descending into a nested construct; the caller restores the outer
// Context by simply keeping its own copy around (Context is a plain
// value type, not a stack).
func (c Context) enterSubOrFunction(isFunction bool) Context {
	c.InSubOrFunction = true
	c.SubOrFunctionIsFunction = isFunction
	c.InForLoop = false
	c.InWhileLoop = false
	return c
}

func (c Context) enterFor() Context {
	c.InForLoop = true
	return c
}

func (c Context) enterWhile() Context {
	c.InWhileLoop = true
	return c
}
