//go:build tools

package tools

// CLI tools used during development. They are installed with go install,
// not imported:
//
//   - github.com/matryer/moq regenerates the *_mock_test.go files.
//   - github.com/pressly/goose/v3/cmd/goose creates new files in migrations/.
