package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Tenants        TenantRepository
	Users          UserRepository
	Memberships    MembershipRepository
	PasswordResets PasswordResetRepository
	Products       ProductRepository
	Movements      StockMovementRepository
	Sales          SaleRepository
	Receivables    ReceivableRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil,
// Rollback en cualquier otro caso. Nada de lo escrito por fn es visible si falla.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
