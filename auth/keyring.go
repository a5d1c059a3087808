// Package auth persists the API tokens of remote servers in the system keyring.
package auth

import (
	"errors"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/zalando/go-keyring"
)

const service = constant.App

// SetToken stores the bearer token used for server.
func SetToken(server, token string) error {
	return keyring.Set(service, server, token)
}

// GetToken returns the token stored for server, or an empty string when there is none.
func GetToken(server string) (string, error) {
	token, err := keyring.Get(service, server)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// DeleteToken removes the token stored for server.
func DeleteToken(server string) error {
	err := keyring.Delete(service, server)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
