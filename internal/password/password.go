// Package password wraps bcrypt for credential storage. The salt lives inside
// the produced hash, no separate storage is needed.
package password

import "golang.org/x/crypto/bcrypt"

// Cost mirrors the hashing work factor used at registration. Expensive on
// purpose; callers must budget for the latency instead of cancelling mid-hash.
const Cost = 12

func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
