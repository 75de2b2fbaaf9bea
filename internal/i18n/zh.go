package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrUnexpectedChar:      "意外字符。",
	ErrUnterminatedString:  "未闭合的字符串。",
	ErrUnterminatedComment: "未闭合的块注释。",

	// ========== 语法分析器 ==========
	ErrExpectExpression:      "需要表达式。",
	ErrExpectSemiAfterValue:  "值后面需要 ';'。",
	ErrExpectSemiAfterExpr:   "表达式后面需要 ';'。",
	ErrExpectSemiAfterVar:    "变量声明后面需要 ';'。",
	ErrExpectSemiAfterReturn: "返回值后面需要 ';'。",
	ErrExpectSemiAfterBreak:  "'break' 后面需要 ';'。",
	ErrExpectSemiAfterCond:   "循环条件后面需要 ';'。",
	ErrExpectVarName:         "需要变量名。",
	ErrExpectKindName:        "需要 %s 名称。",
	ErrExpectParenAfterName:  "%s 名称后面需要 '('。",
	ErrExpectParamName:       "需要参数名。",
	ErrExpectParenAfterParam: "参数列表后面需要 ')'。",
	ErrExpectBraceBeforeBody: "%s 函数体前需要 '{'。",
	ErrExpectBraceAfterBlock: "代码块后面需要 '}'。",
	ErrExpectParenAfterIf:    "'if' 后面需要 '('。",
	ErrExpectParenAfterIfCnd: "'if' 条件后面需要 ')'。",
	ErrExpectParenAfterWhile: "'while' 后面需要 '('。",
	ErrExpectParenAfterCond:  "条件后面需要 ')'。",
	ErrExpectParenAfterFor:   "'for' 后面需要 '('。",
	ErrExpectParenAfterFor3:  "for 子句后面需要 ')'。",
	ErrExpectParenAfterArgs:  "参数后面需要 ')'。",
	ErrExpectParenAfterExpr:  "表达式后面需要 ')'。",
	ErrExpectPropertyName:    "'.' 后面需要属性名。",
	ErrExpectDotAfterSuper:   "'super' 后面需要 '.'。",
	ErrExpectSuperMethod:     "需要父类方法名。",
	ErrExpectClassName:       "需要类名。",
	ErrExpectSuperclassName:  "需要父类名。",
	ErrExpectBraceBeforeCls:  "类体前需要 '{'。",
	ErrExpectBraceAfterCls:   "类体后面需要 '}'。",
	ErrExpectParenAfterFun:   "'fun' 后面需要 '('。",
	ErrExpectColonTernary:    "三元运算符 '?' 后面需要 ':'。",
	ErrTooManyParams:         "参数不能超过 255 个。",
	ErrTooManyArgs:           "实参不能超过 255 个。",
	ErrInvalidAssignTarget:   "无效的赋值目标。",
	ErrBreakOutsideLoopParse: "'break' 只能在循环内使用。",
	WarnMissingLeftOperand:   "二元表达式缺少左操作数。",

	// ========== 静态分析 ==========
	ErrVariableRedeclared:    "当前作用域中已存在同名变量。",
	ErrReadInOwnInitializer:  "不能在局部变量自己的初始化表达式中读取它。",
	ErrReturnTopLevel:        "不能在顶层代码中 return。",
	ErrReturnFromInitializer: "不能在初始化方法中返回值。",
	ErrBreakOutsideLoop:      "不能在 while 循环之外 break。",
	ErrThisOutsideClass:      "不能在类之外使用 'this'。",
	ErrThisInStatic:          "不能在静态方法中使用 'this'。",
	ErrSuperOutsideClass:     "不能在类之外使用 'super'。",
	ErrSuperNoSuperclass:     "没有父类的类中不能使用 'super'。",
	ErrSuperInStatic:         "不能在静态方法中使用 'super'。",
	ErrInheritFromSelf:       "类不能继承自身。",
	WarnUnusedLocal:          "局部变量 '%s' 从未被使用。",

	// ========== 运行时 ==========
	ErrOperandMustBeNumber:   "操作数必须是数字。",
	ErrOperandsMustBeNumbers: "操作数必须都是数字。",
	ErrOperandsPlus:          "操作数必须是两个数字，或者至少有一个字符串。",
	ErrDivisionByZero:        "除以零。",
	ErrUndefinedVariable:     "未定义的变量 '%s'。",
	ErrUninitializedVariable: "变量 '%s' 未初始化。",
	ErrNotCallable:           "只能调用函数和类。",
	ErrArity:                 "需要 %d 个参数，实际传入 %d 个。",
	ErrPropertyOnNonInstance: "只有实例才有属性。",
	ErrFieldOnNonInstance:    "只有实例才有字段。",
	ErrUndefinedProperty:     "未定义的属性 '%s'。",
	ErrUndefinedStatic:       "未定义的静态方法 '%s'。",
	ErrSetStaticProperty:     "不能在 %[2]s 上设置静态属性 '%[1]s'。",
	ErrSuperclassNotClass:    "父类必须是一个类。",
	ErrStackOverflow:         "栈溢出。",
	ErrMissingLeftOperand:    "二元表达式缺少左操作数。",

	// ========== 修复建议 ==========
	HintRedeclared:       "重命名其中一个变量，或去掉第二个 'var'",
	HintSelfInit:         "变量的初始化表达式不能引用正在声明的变量",
	HintBreak:            "'break' 只能跳出 'while' 和 'for' 循环",
	HintReturnInit:       "'init' 总是返回新实例；可以用 'return;' 提前退出",
	HintThis:             "'this' 只在实例方法中绑定",
	HintSuper:            "使用 'class Name < Super' 声明父类",
	HintUnused:           "删除该变量或使用它",
	HintDivisionByZero:   "除法前先检查除数",
	HintUninitialized:    "给变量一个初始值：'var x = nil;'",
	HintUndefined:        "使用前先用 'var' 声明变量",
	HintArity:            "检查声明中的参数个数",
	HintStackOverflow:    "检查是否存在无限递归",
	HintNotCallable:      "只有函数、方法和类可以被调用",
	HintMissingSemicolon: "语句以 ';' 结尾",
}
