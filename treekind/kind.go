// Package treekind defines the closed set of CST tree kinds, the secondary
// tag enumeration used to disambiguate same-kind siblings, and the parse
// error payload kinds. These three enumerations mirror every SQL production
// the parser recognises.
package treekind

// Kind is a member of the closed tree-kind enumeration.
type Kind int

const (
	Error Kind = iota

	File
	Statement
	StatementWithCte
	CteClause
	Cte
	ColumnNameList

	// Statement bodies.
	SelectStmt
	SelectCore
	CompoundSelect
	ValuesClause
	ResultColumns
	ResultColumn
	FromClause
	TableOrSubquery
	JoinClause
	JoinOperator
	JoinConstraint
	TableAlias
	IndexedBy
	NotIndexed
	WhereClause
	GroupByClause
	HavingClause
	WindowClause
	NamedWindow
	WindowDef
	PartitionByClause
	OrderByClause
	OrderingTerm
	LimitClause
	FrameSpec

	InsertStmt
	InsertColumns
	UpdateStmt
	UpdateSetClause
	DeleteStmt
	ReturningClause
	OnConflictClause
	UpsertClause
	UpsertDoUpdate

	CreateTableStmt
	ColumnDefList
	ColumnDef
	ColumnConstraint
	TableConstraint
	ForeignKeyClause
	ForeignKeyAction
	ForeignKeyDeferrable
	TableOptions
	CreateIndexStmt
	IndexedColumn
	CreateViewStmt
	CreateTriggerStmt
	TriggerAction
	TriggerBody
	CreateVirtualTableStmt
	ModuleArgList

	AlterTableStmt
	AlterAddColumn
	AlterDropColumn
	AlterRenameColumn
	AlterRenameTable
	DropStmt

	BeginStmt
	CommitStmt
	RollbackStmt
	SavepointStmt
	ReleaseStmt
	AttachStmt
	DetachStmt
	PragmaStmt
	AnalyzeStmt
	ReindexStmt
	VacuumStmt

	ExplainClause

	// Expressions.
	Expr
	ExprInfix
	ExprPrefix
	ExprPostfix
	ExprParen
	ExprLiteral
	ExprColumnName
	ExprBindParam
	ExprFunction
	FunctionArgs
	FunctionFilterClause
	FunctionOverClause
	ExprCast
	ExprCase
	CaseWhenClause
	CaseElseClause
	ExprExists
	ExprSelect
	ExprRaise
	ExprList

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulus
	OpConcat
	OpExtractOne
	OpExtractTwo
	OpBinAnd
	OpBinOr
	OpBinLShift
	OpBinRShift
	OpBinComplement
	OpUnaryPlus
	OpUnaryMinus
	OpEq
	OpNotEq
	OpLT
	OpGT
	OpLTE
	OpGTE
	OpAnd
	OpOr
	OpNot
	OpCollate
	OpIs
	OpIsNot
	OpIsDistinctFrom
	OpIsNotDistinctFrom
	OpIn
	OpNotIn
	OpLike
	OpNotLike
	OpGlob
	OpNotGlob
	OpMatch
	OpNotMatch
	OpRegexp
	OpNotRegexp
	OpBetweenAnd
	OpNotBetweenAnd
	OpIsNull
	OpNotNull
	OpNotSpaceNull

	// Shared sub-productions.
	QualifiedTableName
	SchemaName
	TableName
	ColumnName
	CollationName
	TypeName
	TypeNameArgs
	Modifiers
)

var names = map[Kind]string{
	Error: "Error", File: "File", Statement: "Statement",
	StatementWithCte: "StatementWithCte", CteClause: "CteClause", Cte: "Cte",
	ColumnNameList: "ColumnNameList",
	SelectStmt:     "SelectStmt", SelectCore: "SelectCore", CompoundSelect: "CompoundSelect",
	ValuesClause: "ValuesClause", ResultColumns: "ResultColumns", ResultColumn: "ResultColumn",
	FromClause: "FromClause", TableOrSubquery: "TableOrSubquery", JoinClause: "JoinClause",
	JoinOperator: "JoinOperator", JoinConstraint: "JoinConstraint", TableAlias: "TableAlias",
	IndexedBy: "IndexedBy", NotIndexed: "NotIndexed", WhereClause: "WhereClause",
	GroupByClause: "GroupByClause", HavingClause: "HavingClause", WindowClause: "WindowClause",
	NamedWindow: "NamedWindow", WindowDef: "WindowDef", PartitionByClause: "PartitionByClause",
	OrderByClause: "OrderByClause", OrderingTerm: "OrderingTerm", LimitClause: "LimitClause",
	FrameSpec: "FrameSpec",
	InsertStmt:         "InsertStmt", InsertColumns: "InsertColumns", UpdateStmt: "UpdateStmt",
	UpdateSetClause:    "UpdateSetClause", DeleteStmt: "DeleteStmt", ReturningClause: "ReturningClause",
	OnConflictClause: "OnConflictClause", UpsertClause: "UpsertClause", UpsertDoUpdate: "UpsertDoUpdate",
	CreateTableStmt: "CreateTableStmt", ColumnDefList: "ColumnDefList", ColumnDef: "ColumnDef",
	ColumnConstraint: "ColumnConstraint", TableConstraint: "TableConstraint",
	ForeignKeyClause: "ForeignKeyClause", ForeignKeyAction: "ForeignKeyAction",
	ForeignKeyDeferrable: "ForeignKeyDeferrable", TableOptions: "TableOptions",
	CreateIndexStmt: "CreateIndexStmt", IndexedColumn: "IndexedColumn",
	CreateViewStmt: "CreateViewStmt", CreateTriggerStmt: "CreateTriggerStmt",
	TriggerAction: "TriggerAction", TriggerBody: "TriggerBody",
	CreateVirtualTableStmt: "CreateVirtualTableStmt", ModuleArgList: "ModuleArgList",
	AlterTableStmt: "AlterTableStmt", AlterAddColumn: "AlterAddColumn",
	AlterDropColumn: "AlterDropColumn", AlterRenameColumn: "AlterRenameColumn",
	AlterRenameTable: "AlterRenameTable", DropStmt: "DropStmt",
	BeginStmt: "BeginStmt", CommitStmt: "CommitStmt", RollbackStmt: "RollbackStmt",
	SavepointStmt: "SavepointStmt", ReleaseStmt: "ReleaseStmt", AttachStmt: "AttachStmt",
	DetachStmt: "DetachStmt", PragmaStmt: "PragmaStmt", AnalyzeStmt: "AnalyzeStmt",
	ReindexStmt: "ReindexStmt", VacuumStmt: "VacuumStmt", ExplainClause: "ExplainClause",
	Expr: "Expr", ExprInfix: "ExprInfix", ExprPrefix: "ExprPrefix", ExprPostfix: "ExprPostfix",
	ExprParen: "ExprParen", ExprLiteral: "ExprLiteral", ExprColumnName: "ExprColumnName",
	ExprBindParam: "ExprBindParam", ExprFunction: "ExprFunction", FunctionArgs: "FunctionArgs",
	FunctionFilterClause: "FunctionFilterClause", FunctionOverClause: "FunctionOverClause",
	ExprCast: "ExprCast", ExprCase: "ExprCase", CaseWhenClause: "CaseWhenClause",
	CaseElseClause: "CaseElseClause", ExprExists: "ExprExists", ExprSelect: "ExprSelect",
	ExprRaise: "ExprRaise", ExprList: "ExprList",
	OpAdd: "OpAdd", OpSubtract: "OpSubtract", OpMultiply: "OpMultiply", OpDivide: "OpDivide",
	OpModulus: "OpModulus", OpConcat: "OpConcat", OpExtractOne: "OpExtractOne",
	OpExtractTwo: "OpExtractTwo", OpBinAnd: "OpBinAnd", OpBinOr: "OpBinOr",
	OpBinLShift: "OpBinLShift", OpBinRShift: "OpBinRShift", OpBinComplement: "OpBinComplement",
	OpUnaryPlus: "OpUnaryPlus", OpUnaryMinus: "OpUnaryMinus", OpEq: "OpEq", OpNotEq: "OpNotEq",
	OpLT: "OpLT", OpGT: "OpGT", OpLTE: "OpLTE", OpGTE: "OpGTE", OpAnd: "OpAnd", OpOr: "OpOr",
	OpNot: "OpNot", OpCollate: "OpCollate", OpIs: "OpIs",
	OpIsNot: "OpIsNot", OpIsDistinctFrom: "OpIsDistinctFrom", OpIsNotDistinctFrom: "OpIsNotDistinctFrom",
	OpIn: "OpIn", OpNotIn: "OpNotIn", OpLike: "OpLike", OpNotLike: "OpNotLike",
	OpGlob: "OpGlob", OpNotGlob: "OpNotGlob", OpMatch: "OpMatch", OpNotMatch: "OpNotMatch",
	OpRegexp: "OpRegexp", OpNotRegexp: "OpNotRegexp", OpBetweenAnd: "OpBetweenAnd",
	OpNotBetweenAnd: "OpNotBetweenAnd", OpIsNull: "OpIsNull", OpNotNull: "OpNotNull",
	OpNotSpaceNull: "OpNotSpaceNull",
	QualifiedTableName: "QualifiedTableName", SchemaName: "SchemaName", TableName: "TableName",
	ColumnName: "ColumnName", CollationName: "CollationName", TypeName: "TypeName",
	TypeNameArgs: "TypeNameArgs", Modifiers: "Modifiers",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UnknownTreeKind"
}

// IsInfixOp reports whether k is an operator tree kind the Pratt expression
// parser builds around an already parsed left operand: the binary
// operators, the BETWEEN ... AND forms and the postfix COLLATE.
func IsInfixOp(k Kind) bool {
	switch k {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulus, OpConcat, OpExtractOne, OpExtractTwo,
		OpBinAnd, OpBinOr, OpBinLShift, OpBinRShift, OpEq, OpNotEq, OpLT, OpGT, OpLTE, OpGTE,
		OpAnd, OpOr, OpIs, OpIsNot, OpIsDistinctFrom, OpIsNotDistinctFrom, OpIn, OpNotIn,
		OpLike, OpNotLike, OpGlob, OpNotGlob, OpMatch, OpNotMatch, OpRegexp, OpNotRegexp,
		OpBetweenAnd, OpNotBetweenAnd, OpCollate:
		return true
	default:
		return false
	}
}
