package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Receipts hold financial data, so bundles can be sealed with a password
// before leaving the machine: AES-256-GCM with a PBKDF2-SHA256 derived key.

var sealMagic = []byte("RKSEAL1\x00")

const (
	sealSaltLen   = 16
	sealKeyLen    = 32
	sealKDFRounds = 120_000
)

// Seal encrypts an exported artifact under the given password.
func Seal(password string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, sealSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := aeadFor(password, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(sealMagic)+len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, sealMagic), nil
}

// Open decrypts an artifact produced by Seal. A wrong password and a
// tampered payload are indistinguishable.
func Open(password string, sealed []byte) ([]byte, error) {
	rest, ok := trimPrefix(sealed, sealMagic)
	if !ok {
		return nil, errors.New("not a sealed artifact")
	}
	if len(rest) < sealSaltLen {
		return nil, errors.New("sealed artifact truncated")
	}
	salt, rest := rest[:sealSaltLen], rest[sealSaltLen:]

	gcm, err := aeadFor(password, salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, errors.New("sealed artifact truncated")
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, sealMagic)
	if err != nil {
		return nil, errors.New("wrong password or corrupted artifact")
	}
	return plaintext, nil
}

func aeadFor(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, sealKDFRounds, sealKeyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return gcm, nil
}

func trimPrefix(data, prefix []byte) ([]byte, bool) {
	if len(data) < len(prefix) {
		return nil, false
	}
	for i := range prefix {
		if data[i] != prefix[i] {
			return nil, false
		}
	}
	return data[len(prefix):], true
}
