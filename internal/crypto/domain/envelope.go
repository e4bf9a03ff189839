package domain

import (
	"strings"
)

// Envelope is the persisted form of one encrypted secret. Both fields are stored as-is in
// text columns: IV in `iv`, Ciphertext (encoded ciphertext, Delimiter, encoded tag) in
// `token_value`.
type Envelope struct {
	IV         string
	Ciphertext string
}

// NewEnvelope joins the encoded parts produced by an encryption into an Envelope.
func NewEnvelope(iv, ciphertext, tag string) Envelope {
	return Envelope{
		IV:         iv,
		Ciphertext: ciphertext + Delimiter + tag,
	}
}

// Split validates the structure of the envelope and returns its encoded parts. It does not
// decode or verify anything.
func (e Envelope) Split() (iv, ciphertext, tag string, err error) {
	if e.IV == "" || e.Ciphertext == "" {
		return "", "", "", ErrInvalidEnvelope
	}

	parts := strings.Split(e.Ciphertext, Delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", ErrInvalidEnvelope
	}

	return e.IV, parts[0], parts[1], nil
}

// Valid reports whether the envelope passes the structural check.
func (e Envelope) Valid() bool {
	_, _, _, err := e.Split()
	return err == nil
}
