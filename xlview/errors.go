package xlview

import "fmt"

// InvalidArchiveError indicates the input bytes are not a readable zip package.
type InvalidArchiveError struct {
	Message string
}

func (e *InvalidArchiveError) Error() string {
	return e.Message
}

// NewInvalidArchiveError creates a new InvalidArchiveError with the given message.
func NewInvalidArchiveError(format string, args ...interface{}) *InvalidArchiveError {
	return &InvalidArchiveError{Message: fmt.Sprintf(format, args...)}
}

// MissingPartError indicates a structurally required package part is absent.
type MissingPartError struct {
	Path    string
	Message string
}

func (e *MissingPartError) Error() string {
	return e.Message
}

// NewMissingPartError creates a new MissingPartError for the given part path.
func NewMissingPartError(path string) *MissingPartError {
	return &MissingPartError{Path: path, Message: fmt.Sprintf("missing package part: %s", path)}
}

// XMLParseError indicates malformed XML in a required part.
type XMLParseError struct {
	Path    string
	Message string
}

func (e *XMLParseError) Error() string {
	return e.Message
}

// NewXMLParseError wraps an XML decoding failure for the given part path.
func NewXMLParseError(path string, err error) *XMLParseError {
	return &XMLParseError{Path: path, Message: fmt.Sprintf("malformed XML in %s: %v", path, err)}
}

// InvalidReferenceError indicates a cell or range reference that does not
// match the A1-style grid reference grammar.
type InvalidReferenceError struct {
	Ref     string
	Message string
}

func (e *InvalidReferenceError) Error() string {
	return e.Message
}

// NewInvalidReferenceError creates a new InvalidReferenceError for the given reference text.
func NewInvalidReferenceError(ref string) *InvalidReferenceError {
	return &InvalidReferenceError{Ref: ref, Message: fmt.Sprintf("invalid cell reference: %q", ref)}
}

// InvalidSheetIndexError indicates an editor call with an out-of-range sheet index.
type InvalidSheetIndexError struct {
	Index   int
	Message string
}

func (e *InvalidSheetIndexError) Error() string {
	return e.Message
}

// NewInvalidSheetIndexError creates a new InvalidSheetIndexError for the given index.
func NewInvalidSheetIndexError(index int) *InvalidSheetIndexError {
	return &InvalidSheetIndexError{Index: index, Message: fmt.Sprintf("sheet index out of range: %d", index)}
}

// NotLoadedError indicates an editor operation before any package was loaded.
type NotLoadedError struct {
	Message string
}

func (e *NotLoadedError) Error() string {
	return e.Message
}

// NewNotLoadedError creates a new NotLoadedError.
func NewNotLoadedError() *NotLoadedError {
	return &NotLoadedError{Message: "no package loaded"}
}
