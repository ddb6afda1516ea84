package grammar

// Program is the root production.
type Program struct {
	Location

	Statements []*Statement `@@*`
}

// Statement is a single if, for or expression statement, or a bare ";".
type Statement struct {
	Location

	If    *IfStatement  `(  @@`
	For   *ForStatement ` | @@`
	Expr  *Expression   ` | @@`
	Empty bool          ` | @";":Punct )`
}

// IfStatement is "if" expr block, any number of "else if" branches, and an
// optional "else" block.
type IfStatement struct {
	Location

	Branches []*Branch `"if" @@ ( "else" "if" @@ )*`
	Else     *Block    `( "else" @@ )?`
}

// Branch is one condition of an if statement and its action.
type Branch struct {
	Location

	Condition *Expr  `@@`
	Action    *Block `@@`
}

// ForStatement is "for" pattern "in" expr block.
type ForStatement struct {
	Location

	Pattern *Pattern `"for" @@ "in"`
	Terms   *Expr    `@@`
	Body    *Block   `@@`
}

// Pattern binds loop values. Only a single identifier is supported.
type Pattern struct {
	Location

	Name string `@Ident`
}

// Block is a braced statement list.
type Block struct {
	Location

	Statements []*Statement `"{" @@* "}"`
}

// Expression is an expression statement with an optional terminator.
type Expression struct {
	Location

	Expr       *Expr `@@`
	Terminated bool  `( @";":Punct )?`
}

// Expr is a flat sequence of terms joined by infix operators.
// Precedence is resolved after parsing.
type Expr struct {
	Location

	Head *Term        `@@`
	Tail []*Operation `@@*`
}

// Operation is an infix operator followed by its right operand.
type Operation struct {
	Location

	Operator string `@Operator`
	Operand  *Term  `@@`
}

// Term is a chain call wrapped by prefix and suffix operators.
type Term struct {
	Location

	Prefix []*Prefix  `@@*`
	Call   *ChainCall `@@`
	Suffix []*Suffix  `@@*`
}

// Prefix is a unary operator written before its operand.
type Prefix struct {
	Location

	Operator string `@( "!" | "-" | "+" )`
}

// Suffix is a unary operator written after its operand.
type Suffix struct {
	Location

	Operator string `@( "?" | "!" )`
}

// ChainCall is a data value followed by calls and index operations.
type ChainCall struct {
	Location

	Data    *Data      `@@`
	Postfix []*Postfix `@@*`
}

// Postfix is one call or index operation.
type Postfix struct {
	Location

	Call  *Call  `  @@`
	Index *Index `| @@`
}

// Call is a parenthesized argument list.
type Call struct {
	Location

	Arguments []*Expr `"(" ( @@ ( "," @@ )* ","? )? ")"`
}

// Index is a bracketed index expression.
type Index struct {
	Location

	Index *Expr `"[" @@ "]"`
}

// Data is a primary value.
type Data struct {
	Location

	Template *Template `(  @@`
	List     *List     ` | @@`
	Dict     *Dict     ` | @@`
	Group    *Group    ` | @@`
	Str      *string   ` | @String`
	Num      *string   ` | @Number`
	Special  *Special  ` | @@`
	Symbol   *Symbol   ` | @@`
	Stray    *CloseTag ` | @@ )`
}

// List is a bracketed, comma separated expression list.
type List struct {
	Location

	Items []*Expr `"[" ( @@ ( "," @@ )* ","? )? "]"`
}

// Dict is a braced, comma separated list of pairs.
type Dict struct {
	Location

	Pairs []*Pair `"{" ( @@ ( "," @@ )* ","? )? "}"`
}

// Pair is a key and its value. The key is a string literal or a bare
// identifier.
type Pair struct {
	Location

	Str   *string `( @String`
	Ident *string `| @Ident ) ":"`
	Value *Expr   `@@`
}

// Group is a parenthesized expression.
type Group struct {
	Location

	Expr *Expr `"(" @@ ")"`
}

// Special is one of the reserved literal words.
type Special struct {
	Location

	Value string `@( "true" | "false" | "null" )`
}

// Symbol is a dotted identifier path.
type Symbol struct {
	Location

	Segments []string `@Ident ( "." @Ident )*`
}

// Template is an HTML-like element. The end is optional so that an
// unterminated head still yields a node.
type Template struct {
	Location

	Open  *string    `(  @TagStart`
	Void  *string    ` | @VoidStart )`
	Items []*TagItem `@@*`
	End   *TagEnd    `@@?`
}

// TagItem is one element of a tag head.
type TagItem struct {
	Location

	Argument  *Argument    `(  @@`
	Attribute *Attribute   ` | @@`
	Code      *CodeSection ` | @@`
	Junk      *Junk        ` | @@ )`
}

// Argument is a name=value pair in a tag head.
type Argument struct {
	Location

	Name  string    `@Name Equals`
	Value *ArgValue `@@`
}

// ArgValue is the value of an argument: a literal, a bare name or a braced
// expression.
type ArgValue struct {
	Location

	Str  *string `(  @String`
	Num  *string ` | @Number`
	Name *string ` | @Name`
	Expr *Expr   ` | "{" @@ "}" )`
}

// Attribute is a bare name in a tag head.
type Attribute struct {
	Location

	Name string `@Name`
}

// Junk is a token of a tag head that fits no other production.
type Junk struct {
	Location

	Value string `@( TagJunk | Equals | String | Number )`
}

// TagEnd is how a tag head was terminated. Void holds the ">" of a void
// element and any close tag it absorbed. Broken marks an element cut short
// by [Repair].
type TagEnd struct {
	Location

	SelfClose bool      `(  @TagSelfClose`
	Void      *string   ` | @VoidEnd`
	Body      *TagBody  ` | @@`
	Close     *CloseTag ` | @@`
	Abort     bool      ` | @TagAbort`
	Broken    bool      ` | @TagBroken )`
}

// TagBody is the content of an element up to its close tag.
type TagBody struct {
	Location

	Items []*BodyItem `TagOpenEnd @@*`
	Close *CloseTag   `@@?`
}

// CloseTag is the raw text of a close tag, e.g. "</div>".
type CloseTag struct {
	Location

	Raw string `@CloseTag`
}

// BodyItem is a literal text run, a nested element, or a code section.
type BodyItem struct {
	Location

	Text     *string      `(  @Text`
	Template *Template    ` | @@`
	Code     *CodeSection ` | @@ )`
}

// CodeSection is a braced statement list embedded in markup.
type CodeSection struct {
	Location

	Statements []*Statement `"{" @@* "}"`
}

func (*Program) Rule() Rule      { return RuleProgram }
func (*Statement) Rule() Rule    { return RuleStatement }
func (*IfStatement) Rule() Rule  { return RuleIfStatement }
func (*Branch) Rule() Rule       { return RuleBranch }
func (*ForStatement) Rule() Rule { return RuleForStatement }
func (*Pattern) Rule() Rule      { return RulePattern }
func (*Block) Rule() Rule        { return RuleBlock }
func (*Expression) Rule() Rule   { return RuleExpression }
func (*Expr) Rule() Rule         { return RuleExpr }
func (*Operation) Rule() Rule    { return RuleOperation }
func (*Term) Rule() Rule         { return RuleTerm }
func (*Prefix) Rule() Rule       { return RulePrefix }
func (*Suffix) Rule() Rule       { return RuleSuffix }
func (*ChainCall) Rule() Rule    { return RuleChainCall }
func (*Postfix) Rule() Rule      { return RulePostfix }
func (*Call) Rule() Rule         { return RuleCall }
func (*Index) Rule() Rule        { return RuleIndex }
func (*Data) Rule() Rule         { return RuleData }
func (*List) Rule() Rule         { return RuleList }
func (*Dict) Rule() Rule         { return RuleDict }
func (*Pair) Rule() Rule         { return RulePair }
func (*Group) Rule() Rule        { return RuleGroup }
func (*Special) Rule() Rule      { return RuleSpecial }
func (*Symbol) Rule() Rule       { return RuleSymbol }
func (*Template) Rule() Rule     { return RuleTemplate }
func (*TagItem) Rule() Rule      { return RuleTagItem }
func (*Argument) Rule() Rule     { return RuleArgument }
func (*ArgValue) Rule() Rule     { return RuleArgValue }
func (*Attribute) Rule() Rule    { return RuleAttribute }
func (*Junk) Rule() Rule         { return RuleJunk }
func (*TagEnd) Rule() Rule       { return RuleTagEnd }
func (*TagBody) Rule() Rule      { return RuleTagBody }
func (*CloseTag) Rule() Rule     { return RuleCloseTag }
func (*BodyItem) Rule() Rule     { return RuleBodyItem }
func (*CodeSection) Rule() Rule  { return RuleCodeSection }
