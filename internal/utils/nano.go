package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	defaultIDSize = 32
	idAlphabet    = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoID returns a random alphanumeric identifier. A size of zero uses the
// default length.
func NanoID(size int) string {
	if size <= 0 {
		size = defaultIDSize
	}
	return gonanoid.MustGenerate(idAlphabet, size)
}

// RequestID identifies one inbound request in logs and response headers.
func RequestID() string {
	return NanoID(16)
}
