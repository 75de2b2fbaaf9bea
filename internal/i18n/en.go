package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnexpectedChar:      "Unexpected character.",
	ErrUnterminatedString:  "Unterminated string.",
	ErrUnterminatedComment: "Unterminated code comment.",

	// ========== Parser ==========
	ErrExpectExpression:      "Expect expression.",
	ErrExpectSemiAfterValue:  "Expect ';' after value.",
	ErrExpectSemiAfterExpr:   "Expect ';' after expression.",
	ErrExpectSemiAfterVar:    "Expect ';' after variable declaration.",
	ErrExpectSemiAfterReturn: "Expect ';' after return value.",
	ErrExpectSemiAfterBreak:  "Expect ';' after 'break'.",
	ErrExpectSemiAfterCond:   "Expect ';' after loop condition.",
	ErrExpectVarName:         "Expect variable name.",
	ErrExpectKindName:        "Expect %s name.",
	ErrExpectParenAfterName:  "Expect '(' after %s name.",
	ErrExpectParamName:       "Expect parameter name.",
	ErrExpectParenAfterParam: "Expect ')' after parameters.",
	ErrExpectBraceBeforeBody: "Expect '{' before %s body.",
	ErrExpectBraceAfterBlock: "Expect '}' after block.",
	ErrExpectParenAfterIf:    "Expect '(' after 'if'.",
	ErrExpectParenAfterIfCnd: "Expect ')' after 'if' condition.",
	ErrExpectParenAfterWhile: "Expect '(' after 'while'.",
	ErrExpectParenAfterCond:  "Expect ')' after condition.",
	ErrExpectParenAfterFor:   "Expect '(' after 'for'.",
	ErrExpectParenAfterFor3:  "Expect ')' after for clauses.",
	ErrExpectParenAfterArgs:  "Expect ')' after arguments.",
	ErrExpectParenAfterExpr:  "Expect ')' after expression.",
	ErrExpectPropertyName:    "Expect property name after '.'.",
	ErrExpectDotAfterSuper:   "Expect '.' after 'super'.",
	ErrExpectSuperMethod:     "Expect superclass method name.",
	ErrExpectClassName:       "Expect class name.",
	ErrExpectSuperclassName:  "Expect superclass name.",
	ErrExpectBraceBeforeCls:  "Expect '{' before class body.",
	ErrExpectBraceAfterCls:   "Expect '}' after class body.",
	ErrExpectParenAfterFun:   "Expect '(' after 'fun'.",
	ErrExpectColonTernary:    "Expect ':' after '?' ternary operator.",
	ErrTooManyParams:         "Can't have more than 255 parameters.",
	ErrTooManyArgs:           "Can't have more than 255 arguments.",
	ErrInvalidAssignTarget:   "Invalid assignment target.",
	ErrBreakOutsideLoopParse: "'break' can only be used inside loops.",
	WarnMissingLeftOperand:   "Binary expression missing left operand.",

	// ========== Resolver ==========
	ErrVariableRedeclared:    "Already a variable with this name in this scope.",
	ErrReadInOwnInitializer:  "Can't read local variable in its own initializer.",
	ErrReturnTopLevel:        "Can't return from top-level code.",
	ErrReturnFromInitializer: "Can't return a value from an initializer.",
	ErrBreakOutsideLoop:      "Can't break outside of a while loop.",
	ErrThisOutsideClass:      "Can't use 'this' outside of a class.",
	ErrThisInStatic:          "Can't use 'this' inside a static method.",
	ErrSuperOutsideClass:     "Can't use 'super' outside of a class.",
	ErrSuperNoSuperclass:     "Can't use 'super' in a class with no superclass.",
	ErrSuperInStatic:         "Can't use 'super' inside a static method.",
	ErrInheritFromSelf:       "A class can't inherit from itself.",
	WarnUnusedLocal:          "Local variable '%s' is never used.",

	// ========== Runtime ==========
	ErrOperandMustBeNumber:   "Operand must be a number.",
	ErrOperandsMustBeNumbers: "Operands must be numbers.",
	ErrOperandsPlus:          "Operands must be two numbers or at least one string.",
	ErrDivisionByZero:        "Division by zero.",
	ErrUndefinedVariable:     "Undefined variable '%s'.",
	ErrUninitializedVariable: "Uninitialized variable '%s'.",
	ErrNotCallable:           "Can only call functions and classes.",
	ErrArity:                 "Expected %d arguments but got %d.",
	ErrPropertyOnNonInstance: "Only instances have properties.",
	ErrFieldOnNonInstance:    "Only instances have fields.",
	ErrUndefinedProperty:     "Undefined property '%s'.",
	ErrUndefinedStatic:       "Undefined static method '%s'.",
	ErrSetStaticProperty:     "Can't set static property '%s' on %s.",
	ErrSuperclassNotClass:    "Superclass must be a class.",
	ErrStackOverflow:         "Stack overflow.",
	ErrMissingLeftOperand:    "Binary expression missing left operand.",

	// ========== Hints ==========
	HintRedeclared:       "rename one of the variables or drop the second 'var'",
	HintSelfInit:         "a variable's initializer cannot refer to the variable being declared",
	HintBreak:            "'break' only exits 'while' and 'for' loops",
	HintReturnInit:       "'init' always returns the new instance; use 'return;' to exit early",
	HintThis:             "'this' is only bound inside instance methods",
	HintSuper:            "declare a superclass with 'class Name < Super'",
	HintUnused:           "remove the variable or use it",
	HintDivisionByZero:   "check the divisor before dividing",
	HintUninitialized:    "give the variable an initial value: 'var x = nil;'",
	HintUndefined:        "declare the variable with 'var' before using it",
	HintArity:            "check the number of parameters in the declaration",
	HintStackOverflow:    "check for unbounded recursion",
	HintNotCallable:      "only functions, methods and classes can be called",
	HintMissingSemicolon: "statements end with ';'",
}
