package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

var _ Store = (*EncryptedStore)(nil)

// ErrDecrypt is returned by EncryptedStore.Get when a stored value is not a
// valid token for the configured key.
var ErrDecrypt = errors.New("failed to decrypt stored value")

// EncryptedStore wraps a Store and encrypts every value with fernet before it
// reaches the underlying store. Keys are left in plain text so prefix listing
// keeps working.
type EncryptedStore struct {
	next Store
	key  *fernet.Key
}

// NewEncryptedStore wraps next with encryption under the given base64 fernet key.
func NewEncryptedStore(next Store, encodedKey string) (*EncryptedStore, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid store encryption key: %w", err)
	}
	return &EncryptedStore{next: next, key: key}, nil
}

func (s *EncryptedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.next.List(ctx, prefix)
}

func (s *EncryptedStore) Get(ctx context.Context, key string) (string, bool, error) {
	token, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	// A negative ttl disables the token age check.
	msg := fernet.VerifyAndDecrypt([]byte(token), -1, []*fernet.Key{s.key})
	if msg == nil {
		return "", false, fmt.Errorf("%w: %s", ErrDecrypt, key)
	}

	return string(msg), true, nil
}

func (s *EncryptedStore) Set(ctx context.Context, key, value string) error {
	token, err := fernet.EncryptAndSign([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return s.next.Set(ctx, key, string(token))
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}

// GenerateKey returns a new random base64 fernet key suitable for
// STORE_ENCRYPTION_KEY.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}
