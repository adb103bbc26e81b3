package service

import (
	"errors"
	"testing"

	"voting_web/internal/models"
)

func TestRegisterValidation(t *testing.T) {
	services, _ := newTestServices(t, models.PollStatusOngoing)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     models.UserRole
		wantErr  error
	}{
		{"missing name", "", "a@example.com", "Password1", models.RoleVoter, ErrMissingUserField},
		{"missing email", "Amy", "", "Password1", models.RoleVoter, ErrMissingUserField},
		{"missing password", "Amy", "a@example.com", "", models.RoleVoter, ErrMissingUserField},
		{"unknown role", "Amy", "a@example.com", "Password1", "superuser", ErrInvalidRole},
		{"bad email format", "Amy", "not-an-email", "Password1", models.RoleVoter, ErrInvalidEmail},
		{"password too short", "Amy", "a@example.com", "Pw1", models.RoleVoter, ErrWeakPassword},
		{"password without digit", "Amy", "a@example.com", "Passwords", models.RoleVoter, ErrPasswordComplexity},
		{"password without uppercase", "Amy", "a@example.com", "password1", models.RoleVoter, ErrPasswordComplexity},
		{"valid registration", "Amy", "a@example.com", "Password1", models.RoleVoter, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := services.User.Register(tt.userName, tt.email, tt.password, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.Password == tt.password {
				t.Error("Password stored in plaintext")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	services, _ := newTestServices(t, models.PollStatusOngoing)

	if _, err := services.User.Register("Olive", "olive@example.com", "Password1", models.RoleVoter); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 一個信箱只能註冊一次
	if _, err := services.User.Register("Other", "olive@example.com", "Password2", models.RoleAdmin); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() duplicate email error = %v, want %v", err, ErrEmailTaken)
	}
}

func TestAuthenticate(t *testing.T) {
	services, _ := newTestServices(t, models.PollStatusOngoing)

	registered, err := services.User.Register("Pete", "pete@example.com", "Password1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := services.User.Authenticate("pete@example.com", "Password1")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != registered.ID || user.Role != models.RoleAdmin {
		t.Errorf("Authenticate() returned user %d role %s, want %d admin", user.ID, user.Role, registered.ID)
	}

	// 錯誤密碼與不存在的帳號回傳相同錯誤
	if _, err := services.User.Authenticate("pete@example.com", "WrongPassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := services.User.Authenticate("ghost@example.com", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() unknown email error = %v, want %v", err, ErrInvalidCredentials)
	}
}
