package i18n

// 消息 ID。按产生阶段分组，值本身也可作为找不到翻译时的回退文本。
const (
	// ========== Lexer ==========
	ErrUnexpectedChar      = "lexer.unexpected_char"
	ErrUnterminatedString  = "lexer.unterminated_string"
	ErrUnterminatedComment = "lexer.unterminated_comment"

	// ========== Parser ==========
	ErrExpectExpression      = "parser.expect_expression"
	ErrExpectSemiAfterValue  = "parser.expect_semi_after_value"
	ErrExpectSemiAfterExpr   = "parser.expect_semi_after_expr"
	ErrExpectSemiAfterVar    = "parser.expect_semi_after_var"
	ErrExpectSemiAfterReturn = "parser.expect_semi_after_return"
	ErrExpectSemiAfterBreak  = "parser.expect_semi_after_break"
	ErrExpectSemiAfterCond   = "parser.expect_semi_after_loop_cond"
	ErrExpectVarName         = "parser.expect_var_name"
	ErrExpectKindName        = "parser.expect_kind_name"
	ErrExpectParenAfterName  = "parser.expect_paren_after_name"
	ErrExpectParamName       = "parser.expect_param_name"
	ErrExpectParenAfterParam = "parser.expect_paren_after_params"
	ErrExpectBraceBeforeBody = "parser.expect_brace_before_body"
	ErrExpectBraceAfterBlock = "parser.expect_brace_after_block"
	ErrExpectParenAfterIf    = "parser.expect_paren_after_if"
	ErrExpectParenAfterIfCnd = "parser.expect_paren_after_if_cond"
	ErrExpectParenAfterWhile = "parser.expect_paren_after_while"
	ErrExpectParenAfterCond  = "parser.expect_paren_after_cond"
	ErrExpectParenAfterFor   = "parser.expect_paren_after_for"
	ErrExpectParenAfterFor3  = "parser.expect_paren_after_for_clauses"
	ErrExpectParenAfterArgs  = "parser.expect_paren_after_args"
	ErrExpectParenAfterExpr  = "parser.expect_paren_after_expr"
	ErrExpectPropertyName    = "parser.expect_property_name"
	ErrExpectDotAfterSuper   = "parser.expect_dot_after_super"
	ErrExpectSuperMethod     = "parser.expect_super_method"
	ErrExpectClassName       = "parser.expect_class_name"
	ErrExpectSuperclassName  = "parser.expect_superclass_name"
	ErrExpectBraceBeforeCls  = "parser.expect_brace_before_class"
	ErrExpectBraceAfterCls   = "parser.expect_brace_after_class"
	ErrExpectParenAfterFun   = "parser.expect_paren_after_fun"
	ErrExpectColonTernary    = "parser.expect_colon_ternary"
	ErrTooManyParams         = "parser.too_many_params"
	ErrTooManyArgs           = "parser.too_many_args"
	ErrInvalidAssignTarget   = "parser.invalid_assign_target"
	ErrBreakOutsideLoopParse = "parser.break_outside_loop"
	WarnMissingLeftOperand   = "parser.missing_left_operand"

	// ========== Resolver ==========
	ErrVariableRedeclared    = "resolver.variable_redeclared"
	ErrReadInOwnInitializer  = "resolver.read_in_own_initializer"
	ErrReturnTopLevel        = "resolver.return_top_level"
	ErrReturnFromInitializer = "resolver.return_from_initializer"
	ErrBreakOutsideLoop      = "resolver.break_outside_loop"
	ErrThisOutsideClass      = "resolver.this_outside_class"
	ErrThisInStatic          = "resolver.this_in_static"
	ErrSuperOutsideClass     = "resolver.super_outside_class"
	ErrSuperNoSuperclass     = "resolver.super_no_superclass"
	ErrSuperInStatic         = "resolver.super_in_static"
	ErrInheritFromSelf       = "resolver.inherit_from_self"
	WarnUnusedLocal          = "resolver.unused_local"

	// ========== Runtime ==========
	ErrOperandMustBeNumber   = "runtime.operand_must_be_number"
	ErrOperandsMustBeNumbers = "runtime.operands_must_be_numbers"
	ErrOperandsPlus          = "runtime.operands_plus"
	ErrDivisionByZero        = "runtime.division_by_zero"
	ErrUndefinedVariable     = "runtime.undefined_variable"
	ErrUninitializedVariable = "runtime.uninitialized_variable"
	ErrNotCallable           = "runtime.not_callable"
	ErrArity                 = "runtime.arity"
	ErrPropertyOnNonInstance = "runtime.property_on_non_instance"
	ErrFieldOnNonInstance    = "runtime.field_on_non_instance"
	ErrUndefinedProperty     = "runtime.undefined_property"
	ErrUndefinedStatic       = "runtime.undefined_static"
	ErrSetStaticProperty     = "runtime.set_static_property"
	ErrSuperclassNotClass    = "runtime.superclass_not_class"
	ErrStackOverflow         = "runtime.stack_overflow"
	ErrMissingLeftOperand    = "runtime.missing_left_operand"

	// ========== Hints ==========
	HintRedeclared       = "hint.redeclared"
	HintSelfInit         = "hint.self_init"
	HintBreak            = "hint.break"
	HintReturnInit       = "hint.return_init"
	HintThis             = "hint.this"
	HintSuper            = "hint.super"
	HintUnused           = "hint.unused"
	HintDivisionByZero   = "hint.division_by_zero"
	HintUninitialized    = "hint.uninitialized"
	HintUndefined        = "hint.undefined"
	HintArity            = "hint.arity"
	HintStackOverflow    = "hint.stack_overflow"
	HintNotCallable      = "hint.not_callable"
	HintMissingSemicolon = "hint.missing_semicolon"
)
