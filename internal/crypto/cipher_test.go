package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestNewCipherRejectsBadKeyLength(t *testing.T) {
	_, err := NewCipher(make([]byte, 16))
	assert.Error(t, err)

	_, err = NewCipher(testKey())
	assert.NoError(t, err)
}

func TestNewCipherFromHex(t *testing.T) {
	// 64 hex chars = 32 bytes
	c, err := NewCipherFromHex("2864bcef5d960f9248b5775473bdada01e845114c0bf31c409199c753cb9e57e")
	assert.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewCipherFromHex("not-hex")
	assert.Error(t, err)

	_, err = NewCipherFromHex("abcd")
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := NewCipher(testKey())
	assert.NoError(t, err)

	cases := []string{
		"",
		"4",
		"4242424242424242",
		"John Q. Cardholder",
		"12/29",
		"+1 (555) 010-9999",
		"émile@exämple.com",
		string(make([]byte, 300)),
	}
	for _, plaintext := range cases {
		enc, err := c.Encrypt(plaintext)
		assert.NoError(t, err)
		dec, err := c.Decrypt(enc)
		assert.NoError(t, err)
		assert.Equal(t, plaintext, string(dec))
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	c, _ := NewCipher(testKey())

	a, err := c.Encrypt("4242424242424242")
	assert.NoError(t, err)
	b, err := c.Encrypt("4242424242424242")
	assert.NoError(t, err)
	assert.False(t, bytes.Equal(a, b), "two encryptions of the same value must differ")
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	c1, _ := NewCipher(testKey())
	otherKey := testKey()
	otherKey[0] ^= 0xff
	c2, _ := NewCipher(otherKey)

	enc, err := c1.Encrypt("348")
	assert.NoError(t, err)
	_, err = c2.Decrypt(enc)
	assert.Error(t, err)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	c, _ := NewCipher(testKey())

	enc, err := c.Encrypt("4242424242424242")
	assert.NoError(t, err)
	enc[len(enc)-1] ^= 0x01
	_, err = c.Decrypt(enc)
	assert.Error(t, err)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	c, _ := NewCipher(testKey())
	_, err := c.Decrypt([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "plain", SafeString([]byte("plain")))
	assert.Equal(t, "", SafeString(nil))
	// invalid UTF-8 falls back to hex
	assert.Equal(t, "fffe", SafeString([]byte{0xff, 0xfe}))
}
