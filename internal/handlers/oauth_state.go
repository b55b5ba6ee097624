package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"time"
)

// AuthState rides through the OAuth provider as the opaque state parameter.
type AuthState struct {
	ReturnURL  string
	CreateTime time.Time
}

func xorEncrypt(data []byte, key string) []byte {
	keyLen := len(key)
	encrypted := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		encrypted[i] = data[i] ^ key[i%keyLen]
	}
	return encrypted
}

// encryptState encrypts the state before passing it to the oauth provider
func encryptState(state AuthState, key string) string {
	var buffer bytes.Buffer
	gob.NewEncoder(&buffer).Encode(state)
	encryptedState := xorEncrypt(buffer.Bytes(), key)
	return base64.URLEncoding.EncodeToString(encryptedState)
}

// decryptState decrypts the state previously passed to the oauth provider
func decryptState(encryptedState string, key string) (AuthState, error) {
	encryptedBytes, err := base64.URLEncoding.DecodeString(encryptedState)
	if err != nil {
		return AuthState{}, err
	}
	decryptedBytes := xorEncrypt(encryptedBytes, key)
	var state AuthState
	err = gob.NewDecoder(bytes.NewReader(decryptedBytes)).Decode(&state)
	if err != nil {
		return AuthState{}, err
	}
	return state, nil
}
