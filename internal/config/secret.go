package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrBadKey is returned when the key file exists but is not a usable key.
	ErrBadKey = errors.New("secret key file is invalid")

	errNoKey = errors.New("secret key file missing")
)

// keyring seals and opens secrets with a key kept in a file.
type keyring struct {
	path string
	rand io.Reader
}

// readKey returns the stored key, or errNoKey when the file is absent.
func (k keyring) readKey() ([]byte, error) {
	key, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrBadKey, len(key), chacha20poly1305.KeySize)
	}
	return key, nil
}

// loadOrCreateKey reads the key, generating and storing one on first use.
func (k keyring) loadOrCreateKey() ([]byte, error) {
	key, err := k.readKey()
	if !errors.Is(err, errNoKey) {
		return key, err
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(k.rand, key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}
	f, err := os.OpenFile(k.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return k.readKey()
	}
	if err != nil {
		return nil, fmt.Errorf("writing key: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		_ = os.Remove(k.path)
		return nil, fmt.Errorf("writing key: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing key: %w", err)
	}
	return key, nil
}

// seal encrypts plaintext as base64(nonce || ciphertext).
func (k keyring) seal(plaintext string) (string, error) {
	key, err := k.loadOrCreateKey()
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("initialising cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(k.rand, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// open reverses seal. Any failure, including a missing key, is an error.
func (k keyring) open(encoded string) (string, error) {
	key, err := k.readKey()
	if err != nil {
		return "", err
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding secret: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("initialising cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", errors.New("secret too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("opening secret: %w", err)
	}
	return string(plain), nil
}
