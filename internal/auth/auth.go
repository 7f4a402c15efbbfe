// Package auth gates the interactive session behind a single fixed
// clinic account. There is no user store; the credentials are baked in
// and checked in constant time.
package auth

import "crypto/subtle"

const (
	defaultUsername = "doctor"
	defaultPassword = "password"
)

// Check reports whether the supplied credentials match the clinic account.
func Check(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(defaultUsername))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(defaultPassword))
	return u&p == 1
}
