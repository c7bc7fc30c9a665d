package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobboard"

// AdminToken resolves the token guarding the admin endpoints: keyring
// first, ADMIN_TOKEN env as the fallback for headless deployments.
func AdminToken(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		tok, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(tok) != "" {
			return tok, nil
		}
	}
	if tok := strings.TrimSpace(os.Getenv("ADMIN_TOKEN")); tok != "" {
		return tok, nil
	}
	return "", errors.New("admin token not found (set it in keychain or via ADMIN_TOKEN)")
}

// SetAdminToken stores the token in the OS keychain.
func SetAdminToken(keyringAccount, token string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, token)
}

// DeleteAdminToken removes the token from the OS keychain.
func DeleteAdminToken(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
