package gateway

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

// Checksum scheme of the gateway: sha256 over "body|salt" in hex with the
// salt appended, then AES-128-CBC under the merchant key with a fixed IV,
// base64-encoded.

const saltLen = 4

var ivParameter = []byte("@@@@&&&&####$$$$")

var ErrBadChecksum = errors.New("malformed checksum")

func GenerateSignature(body, key string) (string, error) {
	salt, err := randomSalt()
	if err != nil {
		return "", err
	}
	return encrypt(hashWithSalt(body, salt), key)
}

func VerifySignature(body, key, signature string) bool {
	decrypted, err := decrypt(signature, key)
	if err != nil || len(decrypted) <= saltLen {
		return false
	}
	salt := decrypted[len(decrypted)-saltLen:]
	return decrypted == hashWithSalt(body, salt)
}

func hashWithSalt(body, salt string) string {
	sum := sha256.Sum256([]byte(body + "|" + salt))
	return hex.EncodeToString(sum[:]) + salt
}

func randomSalt() (string, error) {
	raw := make([]byte, 3)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func encrypt(plaintext, key string) (string, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, ivParameter).CryptBlocks(encrypted, padded)

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

func decrypt(signature, key string) (string, error) {
	encrypted, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return "", err
	}
	if len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", ErrBadChecksum
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", err
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, ivParameter).CryptBlocks(decrypted, encrypted)

	unpadded, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadChecksum
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, ErrBadChecksum
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrBadChecksum
		}
	}
	return data[:len(data)-padding], nil
}
