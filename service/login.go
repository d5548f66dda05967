package service

import "strings"

// Login messages shown on the login page.
const (
	LoginSuccessMessage = "Login berhasil! Selamat datang di Tranquil Trails."
	LoginWarningMessage = "Silakan masukkan username dan password yang valid."
)

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	OK      bool
	Message string
}

// CheckCredentials only checks that both fields are present after trimming.
// No account lookup happens and nothing is stored.
func CheckCredentials(username, password string) LoginResult {
	if strings.TrimSpace(username) != "" && strings.TrimSpace(password) != "" {
		return LoginResult{OK: true, Message: LoginSuccessMessage}
	}
	return LoginResult{OK: false, Message: LoginWarningMessage}
}
