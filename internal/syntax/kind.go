package syntax

// Kind classifies tokens and nodes of the JavaScript syntax tree.
type Kind uint16

const (
	Tombstone Kind = iota
	EOF

	// punctuation
	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Dot
	Question
	Colon

	// operators
	Eq
	EqEq
	EqEqEq
	Bang
	BangEq
	BangEqEq
	Lt
	LtEq
	Gt
	GtEq
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	PlusPlus
	MinusMinus
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	Tilde
	QuestionQuestion
	Shl
	Shr
	UShr
	PlusEq
	MinusEq
	StarEq
	StarStarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq
	UShrEq
	AmpAmpEq
	PipePipeEq
	QuestionQuestionEq

	// keywords
	BreakKw
	CatchKw
	ConstKw
	ContinueKw
	DebuggerKw
	DeleteKw
	ElseKw
	FalseKw
	FinallyKw
	ForKw
	FunctionKw
	IfKw
	InKw
	InstanceofKw
	LetKw
	NewKw
	NullKw
	ReturnKw
	ThisKw
	ThrowKw
	TrueKw
	TryKw
	TypeofKw
	VarKw
	VoidKw
	WhileKw

	// literals
	Ident
	NumberLit
	StringLit
	ErrorToken

	// nodes
	Module
	BlockStatement
	ExpressionStatement
	EmptyStatement
	IfStatement
	ElseClause
	VariableStatement
	VariableDeclaration
	VariableDeclarator
	InitializerClause
	IdentifierBinding
	FunctionDeclaration
	FunctionExpression
	Parameters
	FormalParameter
	FunctionBody
	ReturnStatement
	WhileStatement
	ForStatement
	TryStatement
	CatchClause
	CatchDeclaration
	FinallyClause
	ThrowStatement
	BreakStatement
	ContinueStatement
	DebuggerStatement

	IdentifierExpression
	ReferenceIdentifier
	NumberLiteralExpression
	StringLiteralExpression
	BooleanLiteralExpression
	NullLiteralExpression
	ThisExpression
	UnaryExpression
	PreUpdateExpression
	PostUpdateExpression
	BinaryExpression
	LogicalExpression
	AssignmentExpression
	IdentifierAssignment
	ParenthesizedExpression
	CallExpression
	CallArguments
	NewExpression
	StaticMemberExpression
	ComputedMemberExpression
	Name
	ConditionalExpression
	ArrayExpression
	ArrayHole
	ObjectExpression
	PropertyObjectMember
	ShorthandPropertyObjectMember
	LiteralMemberName

	// lists
	StatementList
	VariableDeclaratorList
	ParameterList
	ArgumentList
	ArrayElementList
	ObjectMemberList

	// error recovery
	Bogus
	BogusStatement
	BogusExpression

	kindCount
)

// Variable marks list kinds in the shape table.
const Variable = -1

type kindInfo struct {
	name  string
	text  string // fixed token text, empty for nodes and literals
	slots int    // node shape; Variable for lists, 0 for tokens
}

var kindTable = [kindCount]kindInfo{
	Tombstone:  {name: "Tombstone"},
	EOF:        {name: "EOF"},
	Semicolon:  {name: "Semicolon", text: ";"},
	Comma:      {name: "Comma", text: ","},
	LParen:     {name: "LParen", text: "("},
	RParen:     {name: "RParen", text: ")"},
	LBrace:     {name: "LBrace", text: "{"},
	RBrace:     {name: "RBrace", text: "}"},
	LBracket:   {name: "LBracket", text: "["},
	RBracket:   {name: "RBracket", text: "]"},
	Dot:        {name: "Dot", text: "."},
	Question:   {name: "Question", text: "?"},
	Colon:      {name: "Colon", text: ":"},
	Eq:         {name: "Eq", text: "="},
	EqEq:       {name: "EqEq", text: "=="},
	EqEqEq:     {name: "EqEqEq", text: "==="},
	Bang:       {name: "Bang", text: "!"},
	BangEq:     {name: "BangEq", text: "!="},
	BangEqEq:   {name: "BangEqEq", text: "!=="},
	Lt:         {name: "Lt", text: "<"},
	LtEq:       {name: "LtEq", text: "<="},
	Gt:         {name: "Gt", text: ">"},
	GtEq:       {name: "GtEq", text: ">="},
	Plus:       {name: "Plus", text: "+"},
	Minus:      {name: "Minus", text: "-"},
	Star:       {name: "Star", text: "*"},
	StarStar:   {name: "StarStar", text: "**"},
	Slash:      {name: "Slash", text: "/"},
	Percent:    {name: "Percent", text: "%"},
	PlusPlus:   {name: "PlusPlus", text: "++"},
	MinusMinus: {name: "MinusMinus", text: "--"},
	Amp:        {name: "Amp", text: "&"},
	AmpAmp:     {name: "AmpAmp", text: "&&"},
	Pipe:       {name: "Pipe", text: "|"},
	PipePipe:   {name: "PipePipe", text: "||"},
	Caret:      {name: "Caret", text: "^"},
	Tilde:      {name: "Tilde", text: "~"},

	QuestionQuestion:   {name: "QuestionQuestion", text: "??"},
	Shl:                {name: "Shl", text: "<<"},
	Shr:                {name: "Shr", text: ">>"},
	UShr:               {name: "UShr", text: ">>>"},
	PlusEq:             {name: "PlusEq", text: "+="},
	MinusEq:            {name: "MinusEq", text: "-="},
	StarEq:             {name: "StarEq", text: "*="},
	StarStarEq:         {name: "StarStarEq", text: "**="},
	SlashEq:            {name: "SlashEq", text: "/="},
	PercentEq:          {name: "PercentEq", text: "%="},
	AmpEq:              {name: "AmpEq", text: "&="},
	PipeEq:             {name: "PipeEq", text: "|="},
	CaretEq:            {name: "CaretEq", text: "^="},
	ShlEq:              {name: "ShlEq", text: "<<="},
	ShrEq:              {name: "ShrEq", text: ">>="},
	UShrEq:             {name: "UShrEq", text: ">>>="},
	AmpAmpEq:           {name: "AmpAmpEq", text: "&&="},
	PipePipeEq:         {name: "PipePipeEq", text: "||="},
	QuestionQuestionEq: {name: "QuestionQuestionEq", text: "??="},

	BreakKw:      {name: "BreakKw", text: "break"},
	CatchKw:      {name: "CatchKw", text: "catch"},
	ConstKw:      {name: "ConstKw", text: "const"},
	ContinueKw:   {name: "ContinueKw", text: "continue"},
	DebuggerKw:   {name: "DebuggerKw", text: "debugger"},
	DeleteKw:     {name: "DeleteKw", text: "delete"},
	ElseKw:       {name: "ElseKw", text: "else"},
	FalseKw:      {name: "FalseKw", text: "false"},
	FinallyKw:    {name: "FinallyKw", text: "finally"},
	ForKw:        {name: "ForKw", text: "for"},
	FunctionKw:   {name: "FunctionKw", text: "function"},
	IfKw:         {name: "IfKw", text: "if"},
	InKw:         {name: "InKw", text: "in"},
	InstanceofKw: {name: "InstanceofKw", text: "instanceof"},
	LetKw:        {name: "LetKw", text: "let"},
	NewKw:        {name: "NewKw", text: "new"},
	NullKw:       {name: "NullKw", text: "null"},
	ReturnKw:     {name: "ReturnKw", text: "return"},
	ThisKw:       {name: "ThisKw", text: "this"},
	ThrowKw:      {name: "ThrowKw", text: "throw"},
	TrueKw:       {name: "TrueKw", text: "true"},
	TryKw:        {name: "TryKw", text: "try"},
	TypeofKw:     {name: "TypeofKw", text: "typeof"},
	VarKw:        {name: "VarKw", text: "var"},
	VoidKw:       {name: "VoidKw", text: "void"},
	WhileKw:      {name: "WhileKw", text: "while"},

	Ident:      {name: "Ident"},
	NumberLit:  {name: "NumberLit"},
	StringLit:  {name: "StringLit"},
	ErrorToken: {name: "ErrorToken"},

	Module:              {name: "Module", slots: 2},
	BlockStatement:      {name: "BlockStatement", slots: 3},
	ExpressionStatement: {name: "ExpressionStatement", slots: 2},
	EmptyStatement:      {name: "EmptyStatement", slots: 1},
	IfStatement:         {name: "IfStatement", slots: 6},
	ElseClause:          {name: "ElseClause", slots: 2},
	VariableStatement:   {name: "VariableStatement", slots: 2},
	VariableDeclaration: {name: "VariableDeclaration", slots: 2},
	VariableDeclarator:  {name: "VariableDeclarator", slots: 2},
	InitializerClause:   {name: "InitializerClause", slots: 2},
	IdentifierBinding:   {name: "IdentifierBinding", slots: 1},
	FunctionDeclaration: {name: "FunctionDeclaration", slots: 4},
	FunctionExpression:  {name: "FunctionExpression", slots: 4},
	Parameters:          {name: "Parameters", slots: 3},
	FormalParameter:     {name: "FormalParameter", slots: 2},
	FunctionBody:        {name: "FunctionBody", slots: 3},
	ReturnStatement:     {name: "ReturnStatement", slots: 3},
	WhileStatement:      {name: "WhileStatement", slots: 5},
	ForStatement:        {name: "ForStatement", slots: 9},
	TryStatement:        {name: "TryStatement", slots: 4},
	CatchClause:         {name: "CatchClause", slots: 3},
	CatchDeclaration:    {name: "CatchDeclaration", slots: 3},
	FinallyClause:       {name: "FinallyClause", slots: 2},
	ThrowStatement:      {name: "ThrowStatement", slots: 3},
	BreakStatement:      {name: "BreakStatement", slots: 2},
	ContinueStatement:   {name: "ContinueStatement", slots: 2},
	DebuggerStatement:   {name: "DebuggerStatement", slots: 2},

	IdentifierExpression:          {name: "IdentifierExpression", slots: 1},
	ReferenceIdentifier:           {name: "ReferenceIdentifier", slots: 1},
	NumberLiteralExpression:       {name: "NumberLiteralExpression", slots: 1},
	StringLiteralExpression:       {name: "StringLiteralExpression", slots: 1},
	BooleanLiteralExpression:      {name: "BooleanLiteralExpression", slots: 1},
	NullLiteralExpression:         {name: "NullLiteralExpression", slots: 1},
	ThisExpression:                {name: "ThisExpression", slots: 1},
	UnaryExpression:               {name: "UnaryExpression", slots: 2},
	PreUpdateExpression:           {name: "PreUpdateExpression", slots: 2},
	PostUpdateExpression:          {name: "PostUpdateExpression", slots: 2},
	BinaryExpression:              {name: "BinaryExpression", slots: 3},
	LogicalExpression:             {name: "LogicalExpression", slots: 3},
	AssignmentExpression:          {name: "AssignmentExpression", slots: 3},
	IdentifierAssignment:          {name: "IdentifierAssignment", slots: 1},
	ParenthesizedExpression:       {name: "ParenthesizedExpression", slots: 3},
	CallExpression:                {name: "CallExpression", slots: 2},
	CallArguments:                 {name: "CallArguments", slots: 3},
	NewExpression:                 {name: "NewExpression", slots: 3},
	StaticMemberExpression:        {name: "StaticMemberExpression", slots: 3},
	ComputedMemberExpression:      {name: "ComputedMemberExpression", slots: 4},
	Name:                          {name: "Name", slots: 1},
	ConditionalExpression:         {name: "ConditionalExpression", slots: 5},
	ArrayExpression:               {name: "ArrayExpression", slots: 3},
	ArrayHole:                     {name: "ArrayHole", slots: 0},
	ObjectExpression:              {name: "ObjectExpression", slots: 3},
	PropertyObjectMember:          {name: "PropertyObjectMember", slots: 3},
	ShorthandPropertyObjectMember: {name: "ShorthandPropertyObjectMember", slots: 1},
	LiteralMemberName:             {name: "LiteralMemberName", slots: 1},

	StatementList:          {name: "StatementList", slots: Variable},
	VariableDeclaratorList: {name: "VariableDeclaratorList", slots: Variable},
	ParameterList:          {name: "ParameterList", slots: Variable},
	ArgumentList:           {name: "ArgumentList", slots: Variable},
	ArrayElementList:       {name: "ArrayElementList", slots: Variable},
	ObjectMemberList:       {name: "ObjectMemberList", slots: Variable},

	Bogus:           {name: "Bogus", slots: Variable},
	BogusStatement:  {name: "BogusStatement", slots: Variable},
	BogusExpression: {name: "BogusExpression", slots: Variable},
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, WhileKw-BreakKw+1)
	for k := BreakKw; k <= WhileKw; k++ {
		m[kindTable[k].text] = k
	}
	return m
}()

// LookupKeyword returns the keyword kind for an identifier-shaped word.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

func (k Kind) String() string {
	if k < kindCount && kindTable[k].name != "" {
		return kindTable[k].name
	}
	return "Kind(?)"
}

// Text returns the fixed source text of punctuation and keyword kinds.
func (k Kind) Text() string {
	if k < kindCount {
		return kindTable[k].text
	}
	return ""
}

func (k Kind) IsToken() bool   { return k <= ErrorToken }
func (k Kind) IsNode() bool    { return k >= Module && k < kindCount }
func (k Kind) IsKeyword() bool { return k >= BreakKw && k <= WhileKw }
func (k Kind) IsPunct() bool   { return k >= Semicolon && k <= QuestionQuestionEq }

func (k Kind) IsLiteral() bool {
	return k == NumberLit || k == StringLit || k == TrueKw || k == FalseKw || k == NullKw
}

func (k Kind) IsList() bool { return k >= StatementList && k <= ObjectMemberList }

func (k Kind) IsBogus() bool { return k >= Bogus && k <= BogusExpression }

// IsAssignOp reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssignOp() bool {
	return k == Eq || (k >= PlusEq && k <= QuestionQuestionEq)
}

// SlotCount returns the fixed number of slots of a node kind, or Variable.
func (k Kind) SlotCount() int {
	if k < kindCount {
		return kindTable[k].slots
	}
	return Variable
}

// IsStatement reports whether k is a statement node kind.
func (k Kind) IsStatement() bool {
	switch k {
	case BlockStatement, ExpressionStatement, EmptyStatement, IfStatement, VariableStatement,
		FunctionDeclaration, ReturnStatement, WhileStatement, ForStatement, TryStatement,
		ThrowStatement, BreakStatement, ContinueStatement, DebuggerStatement, BogusStatement:
		return true
	default:
		return false
	}
}

// IsExpression reports whether k is an expression node kind.
func (k Kind) IsExpression() bool {
	switch k {
	case IdentifierExpression, NumberLiteralExpression, StringLiteralExpression,
		BooleanLiteralExpression, NullLiteralExpression, ThisExpression, UnaryExpression,
		PreUpdateExpression, PostUpdateExpression, BinaryExpression, LogicalExpression,
		AssignmentExpression, ParenthesizedExpression, CallExpression, NewExpression,
		StaticMemberExpression, ComputedMemberExpression, ConditionalExpression,
		ArrayExpression, ObjectExpression, FunctionExpression, BogusExpression:
		return true
	default:
		return false
	}
}

// ToBogus maps a node kind to the bogus kind of its family.
func (k Kind) ToBogus() Kind {
	switch {
	case k.IsBogus():
		return k
	case k.IsStatement():
		return BogusStatement
	case k.IsExpression():
		return BogusExpression
	default:
		return Bogus
	}
}
