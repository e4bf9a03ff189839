// Package domain defines the envelope format, constants and error taxonomy of the token cipher.
package domain

// Envelope parameters. Changing any of these breaks every envelope already stored.
const (
	// KeyLength is the size of the derived AES-256 key and the minimum master key length in bytes.
	KeyLength = 32

	// NonceLength is the size of the random GCM initialization vector.
	NonceLength = 12

	// TagLength is the size of the GCM authentication tag.
	TagLength = 16

	// Delimiter joins the encoded ciphertext and the encoded tag. It is not part of the
	// standard base64 alphabet.
	Delimiter = "."
)

// Key derivation parameters (scrypt).
const (
	ScryptN = 1 << 14
	ScryptR = 8
	ScryptP = 1
)

// KeySalt is the fixed, non-secret application salt fed to the key derivation function.
var KeySalt = []byte("salt")
