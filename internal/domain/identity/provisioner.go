package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Placeholder credential for parent accounts provisioned during enrollment.
// These accounts cannot be used to sign in until the parent claims them
// through the registration flow, which lives outside this service.
const placeholderPassword = "temp123"

type ParentAccount struct {
	ID           string
	Email        string
	PasswordHash string
	UserType     string
	Name         string
	Phone        string
}

// Provisioner issues placeholder parent accounts. It performs no I/O;
// callers persist the returned account inside their own transaction.
type Provisioner struct{}

func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

func (p *Provisioner) NewParentAccount(name, phone string) ParentAccount {
	id := uuid.NewString()
	sum := sha256.Sum256([]byte(placeholderPassword))

	return ParentAccount{
		ID: id,
		// The account id keeps the placeholder email unique.
		Email:        "parent_" + strings.ReplaceAll(id, "-", "") + "@temp.com",
		PasswordHash: hex.EncodeToString(sum[:]),
		UserType:     "parent",
		Name:         strings.TrimSpace(name),
		Phone:        strings.TrimSpace(phone),
	}
}
