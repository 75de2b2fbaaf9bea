package resolver

import "github.com/tangzhangming/lox/internal/token"

func tokPos(line, column int) token.Position {
	return token.Position{Line: line, Column: column}
}
