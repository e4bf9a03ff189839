package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fatih/color"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
	cryptoService "github.com/devdox-ai/devdox-api/internal/crypto/service"
)

// GenerateMasterKey returns a random 32-byte key encoded as unpadded base64url.
// The encoded form is 43 characters, which satisfies the master key length policy.
func GenerateMasterKey() (string, error) {
	raw := make([]byte, cryptoDomain.KeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(raw)

	masterKey := base64.RawURLEncoding.EncodeToString(raw)
	if err := cryptoService.ValidateMasterKey(masterKey); err != nil {
		return "", err
	}
	return masterKey, nil
}

// RunCreateMasterKey prints a fresh ENCRYPTION_MASTER_KEY assignment to w.
// The assignment line itself is never colored so it can be piped into an .env file.
func RunCreateMasterKey(w io.Writer, noColor bool) error {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		return err
	}

	comment := color.New(color.FgCyan)
	warning := color.New(color.FgYellow)
	if noColor {
		comment.DisableColor()
		warning.DisableColor()
	}

	_, _ = comment.Fprintln(w, "# Copy this variable to your .env file or secrets manager")
	_, _ = warning.Fprintln(w, "# Changing it makes every stored git token unreadable")
	_, err = fmt.Fprintf(w, "ENCRYPTION_MASTER_KEY=%q\n", masterKey)
	return err
}
