package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// RecentMovementsLimit cantidad de movimientos que devuelve el listado reciente.
const RecentMovementsLimit = 50

// MovementUseCase registra movimientos manuales (IN/OUT/ADJUST) y lista el libro.
type MovementUseCase struct {
	txRunner  repository.TxRunner
	movements repository.StockMovementRepository
	ledger    *Ledger
	metrics   *metrics.Metrics
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner repository.TxRunner, movements repository.StockMovementRepository, m *metrics.Metrics) *MovementUseCase {
	return &MovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		ledger:    NewLedger(time.Now, uuid.NewString),
		metrics:   m,
	}
}

// RegisterMovement valida la entrada, construye la variante y la aplica en una transacción.
// Un OUT mayor al stock devuelve ErrInsufficientStock sin escribir nada.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, scope tenancy.Scope, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	mv, err := domaininv.NewMovement(entity.MovementType(in.Type), in.Quantity, in.TargetStock)
	if err != nil {
		return nil, err
	}

	var (
		movement *entity.StockMovement
		stock    int
	)
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		movement, stock, err = uc.ledger.Record(ctx, tx, scope.TenantID, in.ProductID, mv, in.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovement(string(movement.Type))

	resp := dto.NewStockMovementResponse(movement, "")
	resp.StockAfter = &stock
	return &resp, nil
}

// RecentMovements últimos movimientos del tenant con el nombre del producto.
func (uc *MovementUseCase) RecentMovements(ctx context.Context, scope tenancy.Scope) ([]dto.StockMovementResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	views, err := uc.movements.ListRecent(ctx, scope.TenantID, RecentMovementsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(views))
	for i := range views {
		out = append(out, dto.NewStockMovementResponse(&views[i].StockMovement, views[i].ProductName))
	}
	return out, nil
}
