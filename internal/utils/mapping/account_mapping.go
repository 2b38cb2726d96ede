package mapping

import (
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.Type),
		Level:       d.Level,
		ParentCode:  NullString(d.ParentCode),
		IsSystem:    d.IsSystem,
		Status:      string(d.Status),
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		Level:       m.Level,
		ParentCode:  m.ParentCode.String,
		IsSystem:    m.IsSystem,
		Status:      domain.AccountStatus(m.Status),
		HasChildren: m.HasChildren,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
