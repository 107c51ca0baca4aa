package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	identity, err := s.Register(context.Background(), "Alice Smith", "Acme", "alice@acme.test", "5551234")
	require.NoError(t, err)
	assert.Equal(t, "alice@acme.test", identity.Email)

	require.Len(t, rm.credentials.created, 1)
	credential := rm.credentials.created[0]
	assert.Equal(t, "alice@acme.test", credential.Username)
	assert.Equal(t, "5551234", credential.Value)
	assert.Equal(t, models.CredentialAttribute, credential.Attribute)
	assert.Equal(t, models.CredentialOperator, credential.Operator)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_TrimsFields(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	identity, err := s.Register(context.Background(), "  Alice Smith ", " Acme ", " alice@acme.test ", " 5551234 ")
	require.NoError(t, err)
	assert.Equal(t, "alice@acme.test", identity.Email)
	assert.Equal(t, "5551234", identity.Phone)
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	cases := [][4]string{
		{"", "Acme", "alice@acme.test", "5551234"},
		{"Alice", "", "alice@acme.test", "5551234"},
		{"Alice", "Acme", "", "5551234"},
		{"Alice", "Acme", "alice@acme.test", ""},
		{"   ", "Acme", "alice@acme.test", "5551234"},
	}
	for _, c := range cases {
		_, err := s.Register(context.Background(), c[0], c[1], c[2], c[3])
		assert.ErrorIs(t, err, common.ErrorValidation)
	}
	assert.Empty(t, rm.identities.created)
	assert.Empty(t, rm.credentials.created)
}

func TestRegister_DuplicateContactPrecheck(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{existsOut: true},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorDuplicateContact)
	assert.Empty(t, rm.identities.created, "no insert after failed pre-check")
}

func TestRegister_DuplicateCredentialPrecheck(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{existsOut: true},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorDuplicateCredential)
	assert.Empty(t, rm.identities.created)
}

func TestRegister_RollbackWhenCredentialInsertFails(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{createErr: errors.New("disk full")},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorStorage)
	require.NoError(t, mock.ExpectationsWereMet(), "transaction must roll back")
}

func TestRegister_RollbackWhenIdentityInsertFails(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{createErr: errors.New("connection reset")},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorStorage)
	assert.Empty(t, rm.credentials.created, "credential insert must not run")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_ConstraintRaceKeepsDuplicateKind(t *testing.T) {
	// Two concurrent registrations can both pass the advisory pre-check; the
	// loser's constraint violation must still surface as a duplicate, not as
	// a generic storage failure.
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{createErr: common.ErrorDuplicateContact},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorDuplicateContact)
	assert.NotErrorIs(t, err, common.ErrorStorage)

	mock.ExpectBegin()
	mock.ExpectRollback()
	rm = &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{},
		credentials: &fakeCredentialsRepo{createErr: common.ErrorDuplicateCredential},
	}
	s = NewRegistrationService(db, rm)

	_, err = s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorDuplicateCredential)
}

func TestRegister_PrecheckStorageError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		identities:  &fakeIdentitiesRepo{existsErr: errors.New("timeout")},
		credentials: &fakeCredentialsRepo{},
	}
	s := NewRegistrationService(db, rm)

	_, err := s.Register(context.Background(), "Alice", "Acme", "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorStorage)
}
