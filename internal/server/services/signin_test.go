package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		credentials: &fakeCredentialsRepo{
			getOut: &models.Credential{Username: "alice@acme.test", Value: "5551234"},
		},
	}
	s := NewSigninService(db, rm)

	assert.NoError(t, s.Verify(context.Background(), "alice@acme.test", "5551234"))
}

func TestVerify_WrongPhone(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		credentials: &fakeCredentialsRepo{
			getOut: &models.Credential{Username: "alice@acme.test", Value: "5551234"},
		},
	}
	s := NewSigninService(db, rm)

	// off by a single character
	err := s.Verify(context.Background(), "alice@acme.test", "5551235")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestVerify_UnknownUsername(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		credentials: &fakeCredentialsRepo{getErr: common.ErrorNotFound},
	}
	s := NewSigninService(db, rm)

	err := s.Verify(context.Background(), "ghost@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestVerify_FailuresAreIndistinguishable(t *testing.T) {
	db, _ := newSQLMockDB(t)

	unknown := NewSigninService(db, &fakeRepoManager{
		credentials: &fakeCredentialsRepo{getErr: common.ErrorNotFound},
	})
	wrongPhone := NewSigninService(db, &fakeRepoManager{
		credentials: &fakeCredentialsRepo{
			getOut: &models.Credential{Username: "alice@acme.test", Value: "5551234"},
		},
	})

	errUnknown := unknown.Verify(context.Background(), "ghost@acme.test", "5551234")
	errWrong := wrongPhone.Verify(context.Background(), "alice@acme.test", "0000000")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown, errWrong, "both failures map to the same value")
}

func TestVerify_NoCaseNormalization(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		credentials: &fakeCredentialsRepo{
			getOut: &models.Credential{Username: "alice@acme.test", Value: "abcDEF"},
		},
	}
	s := NewSigninService(db, rm)

	assert.ErrorIs(t, s.Verify(context.Background(), "alice@acme.test", "ABCdef"), common.ErrorInvalidCredentials)
}

func TestVerify_StorageError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{
		credentials: &fakeCredentialsRepo{getErr: errors.New("connection lost")},
	}
	s := NewSigninService(db, rm)

	err := s.Verify(context.Background(), "alice@acme.test", "5551234")
	assert.ErrorIs(t, err, common.ErrorStorage)
	assert.NotErrorIs(t, err, common.ErrorInvalidCredentials)
}
