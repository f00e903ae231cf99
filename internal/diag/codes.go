package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectColon        Code = 2005
	SynExpectComma        Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnclosedParen      Code = 2009
	SynBadAssignTarget    Code = 2010
	SynDuplicateField     Code = 2011

	// Рантаймные (репортятся драйвером после фатальной ошибки интерпретатора)
	RunInfo             Code = 4000
	RunReferenceError   Code = 4001
	RunTypeError        Code = 4002
	RunAssertionFailure Code = 4003
)

func (c Code) String() string {
	switch {
	case c >= 4000:
		return fmt.Sprintf("RUN%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	default:
		return fmt.Sprintf("DIA%04d", uint16(c))
	}
}
