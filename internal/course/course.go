// Package course implements the high-level instructor operations: file
// uploads that record their remote id in the cache, assignment publishing
// and deletion, quiz creation from JSON documents, and visibility splits
// of the enrolled students.
//
// Everything here talks to the remote through canvas.CourseAPI and to the
// converter through TextConverter, so tests run against fakes.
package course

// TextConverter turns marked-up text into HTML. A failed conversion
// yields an empty string, which callers treat as a recoverable error.
type TextConverter interface {
	Convert(text, srcFormat, outFormat string) string
	ConvertList(items []string, srcFormat, outFormat string) []string
}
