package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dkurganov/guestgate/internal/dbx"
	"github.com/dkurganov/guestgate/internal/server/models"
	accountingrepo "github.com/dkurganov/guestgate/internal/server/repositories/accounting"
	credentialsrepo "github.com/dkurganov/guestgate/internal/server/repositories/credentials"
	identitiesrepo "github.com/dkurganov/guestgate/internal/server/repositories/identities"
)

// --- shared fakes for the service tests ---

type fakeIdentitiesRepo struct {
	mu sync.Mutex

	createOut *models.Identity
	createErr error
	created   []*models.Identity

	existsOut bool
	existsErr error

	listOut []*models.Identity
	listErr error

	countOut int64
	countErr error
}

func (f *fakeIdentitiesRepo) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, identity)
	if f.createOut != nil {
		return f.createOut, nil
	}
	return identity, nil
}

func (f *fakeIdentitiesRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeIdentitiesRepo) List(ctx context.Context) ([]*models.Identity, error) {
	return f.listOut, f.listErr
}

func (f *fakeIdentitiesRepo) Count(ctx context.Context) (int64, error) {
	return f.countOut, f.countErr
}

type fakeCredentialsRepo struct {
	mu sync.Mutex

	createErr error
	created   []*models.Credential

	getOut *models.Credential
	getErr error

	existsOut bool
	existsErr error
}

func (f *fakeCredentialsRepo) Create(ctx context.Context, credential *models.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, credential)
	return nil
}

func (f *fakeCredentialsRepo) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCredentialsRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return f.existsOut, f.existsErr
}

type fakeAccountingRepo struct {
	summarizeOut []*models.UsageSummary
	summarizeErr error
	gotFilter    accountingrepo.Filter
	gotSort      accountingrepo.Sort
	gotLimit     int

	activeOut int64
	activeErr error
	gotSince  time.Time

	octetsOut int64
	octetsErr error
}

func (f *fakeAccountingRepo) SummarizeByUser(ctx context.Context, filter accountingrepo.Filter, sort accountingrepo.Sort, limit int) ([]*models.UsageSummary, error) {
	f.gotFilter = filter
	f.gotSort = sort
	f.gotLimit = limit
	return f.summarizeOut, f.summarizeErr
}

func (f *fakeAccountingRepo) ActiveUsersSince(ctx context.Context, since time.Time) (int64, error) {
	f.gotSince = since
	return f.activeOut, f.activeErr
}

func (f *fakeAccountingRepo) TotalOctets(ctx context.Context) (int64, error) {
	return f.octetsOut, f.octetsErr
}

type fakeRepoManager struct {
	identities  *fakeIdentitiesRepo
	credentials *fakeCredentialsRepo
	accounting  *fakeAccountingRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Identities(db dbx.DBTX) identitiesrepo.Repository {
	return m.identities
}

func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentialsrepo.Repository {
	return m.credentials
}

func (m *fakeRepoManager) Accounting(db dbx.DBTX) accountingrepo.Repository {
	return m.accounting
}
