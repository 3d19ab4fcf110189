// Package memory implementa todos los puertos de persistencia en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado
// que solo reemplaza al original si la función termina sin error.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	tenants     []entity.Tenant
	users       []entity.User
	memberships []entity.Membership
	resets      []entity.PasswordResetToken
	customers   []entity.Customer
	products    []entity.Product
	movements   []entity.StockMovement
	sales       []entity.Sale // sin Items ni Receivables; se adjuntan al leer
	items       []entity.SaleItem
	receivables []entity.Receivable
}

func (s *state) clone() *state {
	return &state{
		tenants:     slices.Clone(s.tenants),
		users:       slices.Clone(s.users),
		memberships: slices.Clone(s.memberships),
		resets:      slices.Clone(s.resets),
		customers:   slices.Clone(s.customers),
		products:    slices.Clone(s.products),
		movements:   slices.Clone(s.movements),
		sales:       slices.Clone(s.sales),
		items:       slices.Clone(s.items),
		receivables: slices.Clone(s.receivables),
	}
}

// Store almacenamiento en memoria de un proceso.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{data: &state{}}
}

// Run ejecuta fn en exclusión mutua sobre una copia del estado; la publica solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	a := access{st: work}
	if err := fn(a.repos()); err != nil {
		return err
	}
	s.data = work
	return nil
}

// access resuelve sobre qué estado opera un repositorio: el de una transacción en curso
// (st != nil, el lock ya lo tiene Run) o el publicado del Store (toma el lock por operación).
type access struct {
	store *Store
	st    *state
}

func (a access) read(fn func(st *state)) {
	if a.st != nil {
		fn(a.st)
		return
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	fn(a.store.data)
}

func (a access) write(fn func(st *state) error) error {
	if a.st != nil {
		return fn(a.st)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	work := a.store.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.store.data = work
	return nil
}

func (a access) repos() repository.TxRepos {
	return repository.TxRepos{
		Tenants:        &TenantRepo{a: a},
		Users:          &UserRepo{a: a},
		Memberships:    &MembershipRepo{a: a},
		PasswordResets: &PasswordResetRepo{a: a},
		Products:       &ProductRepo{a: a},
		Movements:      &StockMovementRepo{a: a},
		Sales:          &SaleRepo{a: a},
		Receivables:    &ReceivableRepo{a: a},
	}
}

func (s *Store) direct() access { return access{store: s} }

// Repositorios fuera de transacción.

func (s *Store) Tenants() *TenantRepo               { return &TenantRepo{a: s.direct()} }
func (s *Store) Users() *UserRepo                   { return &UserRepo{a: s.direct()} }
func (s *Store) Memberships() *MembershipRepo       { return &MembershipRepo{a: s.direct()} }
func (s *Store) PasswordResets() *PasswordResetRepo { return &PasswordResetRepo{a: s.direct()} }
func (s *Store) Customers() *CustomerRepo           { return &CustomerRepo{a: s.direct()} }
func (s *Store) Products() *ProductRepo             { return &ProductRepo{a: s.direct()} }
func (s *Store) Movements() *StockMovementRepo      { return &StockMovementRepo{a: s.direct()} }
func (s *Store) Sales() *SaleRepo                   { return &SaleRepo{a: s.direct()} }
func (s *Store) Receivables() *ReceivableRepo       { return &ReceivableRepo{a: s.direct()} }
func (s *Store) Dashboard() *DashboardRepo          { return &DashboardRepo{a: s.direct()} }
