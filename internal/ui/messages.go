package ui

import "github.com/leonardomso/srclist/internal/scanner"

// FilesFoundMsg is sent when the source tree has been collected.
type FilesFoundMsg struct {
	Err    error
	Result *scanner.Result
}
