package document

import "errors"

var (
	// ErrDocumentParse wraps failures to decode an opened document.
	ErrDocumentParse = errors.New("document parse error")
	// ErrIO wraps read and write failures of documents and exports.
	ErrIO = errors.New("document I/O error")
	// ErrNoDocument is returned by operations that need a loaded face.
	ErrNoDocument = errors.New("no document loaded")
)
