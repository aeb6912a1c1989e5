package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetOutput redirects log output. A nil writer restores stderr.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON records and pretty output.
	SetJSON(enable bool)
}
