package identity

import (
	"strings"
	"testing"
)

func TestNewParentAccount(t *testing.T) {
	p := NewProvisioner()

	account := p.NewParentAccount("  Sophie Martin ", " 0601020304 ")

	if account.ID == "" {
		t.Fatal("account id is empty")
	}
	if account.UserType != "parent" {
		t.Errorf("user type = %q, want parent", account.UserType)
	}
	if account.Name != "Sophie Martin" || account.Phone != "0601020304" {
		t.Errorf("name/phone not trimmed: %q / %q", account.Name, account.Phone)
	}

	wantEmail := "parent_" + strings.ReplaceAll(account.ID, "-", "") + "@temp.com"
	if account.Email != wantEmail {
		t.Errorf("email = %q, want %q", account.Email, wantEmail)
	}
	if len(account.PasswordHash) != 64 {
		t.Errorf("password hash length = %d, want 64 hex chars", len(account.PasswordHash))
	}
}

func TestNewParentAccountUniqueness(t *testing.T) {
	p := NewProvisioner()

	a := p.NewParentAccount("A", "")
	b := p.NewParentAccount("A", "")

	if a.ID == b.ID || a.Email == b.Email {
		t.Error("provisioned accounts must not collide")
	}
	if a.PasswordHash != b.PasswordHash {
		t.Error("placeholder password hash should be deterministic")
	}
}
