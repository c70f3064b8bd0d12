package parser

import "fmt"

// ParseError reports that no report-query shape could be recovered from the
// input: no top-level SELECT, or no top-level FROM after it.
type ParseError struct {
	Pos     int // byte offset into the cleaned query, -1 when unknown
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// MissingAliasError reports a SELECT field without an alias.
type MissingAliasError struct {
	Field string
}

func (e *MissingAliasError) Error() string {
	return fmt.Sprintf(ErrMissingAlias, e.Field)
}

// DuplicateFieldError reports two SELECT fields whose aliases collide once
// quotes are stripped and case is folded.
type DuplicateFieldError struct {
	Alias string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf(ErrDuplicateAlias, e.Alias)
}

// Common error messages
const (
	ErrNoSelect       = "no top-level SELECT found"
	ErrNoFrom         = "no top-level FROM follows SELECT"
	ErrEmptySelect    = "SELECT list is empty"
	ErrMissingAlias   = "Field '%s' must have an alias. All SELECT fields require unique aliases."
	ErrDuplicateAlias = "Duplicate alias found: '%s'. Each field must have a unique alias."
)
