package mapping

import (
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/SscSPs/jewelry_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccNo:       d.AccNo,
		Name:        d.Name,
		AccountType: models.AccountType(d.Type),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccNo: m.AccNo,
		Name:  m.Name,
		Type:  domain.AccountType(m.AccountType),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
	}
}
