package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectSemicolon   Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBrace     Code = 2006
	SynUnclosedBracket   Code = 2007
	SynExpectStatement   Code = 2008
	SynInvalidAssignment Code = 2009

	// suppression comments
	SupInfo      Code = 3000
	SupMalformed Code = 3001
	SupUnused    Code = 3002

	// rule findings; the rule is named by Diagnostic.Category
	LintRule Code = 4000

	// io
	IOLoadFileError Code = 5001
	IOWriteError    Code = 5002
	IOConfigError   Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expected expression",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected semicolon",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectStatement:          "Expected statement",
	SynInvalidAssignment:        "Invalid assignment target",
	SupInfo:                     "Suppression information",
	SupMalformed:                "Malformed suppression comment",
	SupUnused:                   "Unused suppression comment",
	LintRule:                    "Lint rule",
	IOLoadFileError:             "I/O load file error",
	IOWriteError:                "I/O write error",
	IOConfigError:               "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SUP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsParse reports whether the code belongs to the reserved "parse" category.
func (c Code) IsParse() bool {
	return c >= LexInfo && c < SupInfo
}

// DefaultCategory returns the category implied by the code alone.
func (c Code) DefaultCategory() string {
	switch {
	case c.IsParse():
		return CategoryParse
	case c == SupMalformed:
		return CategorySuppressionParse
	case c == SupUnused:
		return CategorySuppressionUnused
	case c >= IOLoadFileError:
		return "io"
	}
	return ""
}

const (
	CategoryParse             = "parse"
	CategorySuppressionParse  = "suppressions/parse"
	CategorySuppressionUnused = "suppressions/unused"
)
