// Package parser turns a token stream into an ast.Module.
//
// Grammar:
//
//	unit   := item*
//	item   := ('@' IDENT)* ('func' func | 'module' module)
//	module := IDENT '{' item* '}'
//	func   := IDENT '(' (param (',' param)* ','?)? ')' (':' type)? body
//	param  := IDENT ':' type ('=' expr)?
//	type   := 'int'N | '(' ')'
//	body   := '=>' expr | '{' (stmt (';' | NEWLINE))* '}'
//	stmt   := item | 'return' expr? | expr
//	expr   := INT
//
// `=> expr` is sugar for a block holding a single return statement.
package parser
