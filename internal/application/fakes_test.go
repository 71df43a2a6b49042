package application

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	repo "github.com/oksasatya/todolist-auth/internal/domain/repository"
)

type memAccounts struct {
	mu   sync.Mutex
	byID map[string]*entity.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*entity.Account{}}
}

func clone(a *entity.Account) *entity.Account {
	c := *a
	c.Roles = append([]string{}, a.Roles...)
	return &c
}

func (m *memAccounts) Create(_ context.Context, a *entity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == a.Email {
			return repo.ErrEmailTaken
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.byID[a.ID] = clone(a)
	return nil
}

func (m *memAccounts) Save(_ context.Context, a *entity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[a.ID]; !ok {
		return repo.ErrAccountNotFound
	}
	m.byID[a.ID] = clone(a)
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		return clone(a), nil
	}
	return nil, repo.ErrAccountNotFound
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, repo.ErrAccountNotFound
}

func (m *memAccounts) FindByActivationToken(_ context.Context, token string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.ActivationToken != nil && *a.ActivationToken == token {
			return clone(a), nil
		}
	}
	return nil, repo.ErrAccountNotFound
}

func (m *memAccounts) stored(email string) *entity.Account {
	a, _ := m.FindByEmail(context.Background(), email)
	return a
}

type memAudit struct {
	mu      sync.Mutex
	entries []repo.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, e repo.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

type fakeIndexer struct {
	indexed map[string]bool
	hits    []map[string]any
}

func (f *fakeIndexer) Index(_ context.Context, a *entity.Account) error {
	if f.indexed == nil {
		f.indexed = map[string]bool{}
	}
	f.indexed[a.ID] = a.IsAccountValid
	return nil
}

func (f *fakeIndexer) Search(_ context.Context, _ string, _ int) ([]map[string]any, error) {
	return f.hits, nil
}

var errBroker = errors.New("broker unreachable")
