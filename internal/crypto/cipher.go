// Package crypto implements the field-level encryption applied to cardholder
// data before it is written to the store. Each sensitive column is encrypted
// independently so a reader can be handed, say, a card's expiry without the
// CVV ever being decrypted.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// Cipher encrypts and decrypts individual field values with AES-256-GCM.
type Cipher struct {
	block cipher.Block
}

// NewCipher creates a field cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be exactly %d bytes (got %d)", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{block: block}, nil
}

// NewCipherFromHex creates a field cipher from a hex-encoded 32-byte key,
// the form the key is supplied in through the environment.
func NewCipherFromHex(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	return NewCipher(key)
}

// Encrypt encrypts a single field value with a random nonce.
// Output: nonce (12 bytes) || ciphertext.
func (c *Cipher) Encrypt(plaintext string) ([]byte, error) {
	gcm, err := cipher.NewGCM(c.block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt decrypts a value produced by Encrypt. The result is raw bytes;
// pass it through SafeString before it leaves the service boundary.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := cipher.NewGCM(c.block)
	if err != nil {
		return nil, err
	}
	nsize := gcm.NonceSize()
	if len(ciphertext) < nsize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return gcm.Open(nil, ciphertext[:nsize], ciphertext[nsize:], nil)
}

// SafeString converts raw bytes read back from the store into a
// transport-safe string: UTF-8 as-is when valid, hex otherwise. Nothing
// binary crosses the service boundary.
func SafeString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return hex.EncodeToString(b)
}
