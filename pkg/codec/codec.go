// Package codec implements the AES-256-CBC/PKCS7 body encryption used by the mobile client.
// Ciphertext travels base64-encoded; key and iv are raw UTF-8 strings of 32 and 16 bytes.
package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	ErrInvalidKey     = errors.New("codec: key must be 16, 24 or 32 bytes and iv 16 bytes")
	ErrInvalidPayload = errors.New("codec: invalid payload")
	ErrInvalidPadding = errors.New("codec: invalid padding")
)

type Codec struct {
	block cipher.Block
	iv    []byte
}

func New(key, iv string) (*Codec, error) {
	if len(iv) != aes.BlockSize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Codec{block: block, iv: []byte(iv)}, nil
}

// Decode base64-decodes payload and decrypts it.
func (c *Codec) Decode(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidPayload
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, ErrInvalidPayload
	}
	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)
	return unpad(out)
}

// Encode encrypts plaintext and returns it base64-encoded.
func (c *Codec) Encode(plaintext []byte) string {
	padded := pad(plaintext)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out)
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrInvalidPadding
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
