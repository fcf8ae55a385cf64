package source

import (
	"fmt"
)

// Span is a TextRange bound to a file, used by diagnostics.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// SpanOf binds a range to a file.
func SpanOf(file FileID, r TextRange) Span {
	return Span{File: file, Start: r.Start, End: r.End}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) Range() TextRange {
	return TextRange{Start: s.Start, End: s.End}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
