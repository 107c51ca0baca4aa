// Package services contains the portal's business logic: registrant
// provisioning, credential verification, and usage statistics.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/dbx"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/dkurganov/guestgate/internal/server/repositories/repomanager"
)

// RegistrationService provisions a registrant and their network credential as
// one atomic unit.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager) *RegistrationService {
	return &RegistrationService{db: db, repomanager: m}
}

// Register creates the portal_users row and its radcheck row in a single
// transaction. The existence pre-checks are advisory only; the tables' unique
// constraints are the authoritative guard, and violations surfacing from the
// transaction keep their duplicate classification.
//
// Either both rows exist after a successful call, or neither does.
func (s *RegistrationService) Register(ctx context.Context, fullName, company, email, phone string) (*models.Identity, error) {
	fullName = strings.TrimSpace(fullName)
	company = strings.TrimSpace(company)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if fullName == "" || company == "" || email == "" || phone == "" {
		return nil, common.ErrorValidation
	}

	// Fail fast with a friendly error before opening a transaction.
	exists, err := s.repomanager.Identities(s.db).ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: checking registrant: %v", common.ErrorStorage, err)
	}
	if exists {
		return nil, common.ErrorDuplicateContact
	}

	// The credential namespace may hold rows provisioned outside the portal.
	exists, err = s.repomanager.Credentials(s.db).ExistsByUsername(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: checking credential namespace: %v", common.ErrorStorage, err)
	}
	if exists {
		return nil, common.ErrorDuplicateCredential
	}

	identity := &models.Identity{FullName: fullName, Company: company, Email: email, Phone: phone}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Identities(tx).Create(ctx, identity)
		if err != nil {
			return err
		}
		identity = created

		credential := &models.Credential{
			Username:  email,
			Attribute: models.CredentialAttribute,
			Operator:  models.CredentialOperator,
			Value:     phone,
		}
		return s.repomanager.Credentials(tx).Create(ctx, credential)
	}); err != nil {
		if errors.Is(err, common.ErrorDuplicateContact) || errors.Is(err, common.ErrorDuplicateCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: provisioning registrant: %v", common.ErrorStorage, err)
	}

	return identity, nil
}

// List returns all registrants for the admin views, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]*models.Identity, error) {
	users, err := s.repomanager.Identities(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing registrants: %v", common.ErrorStorage, err)
	}
	return users, nil
}
