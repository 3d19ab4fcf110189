// Package receivables contiene los casos de uso de cuentas por cobrar.
package receivables

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// Valores por defecto del listado.
const (
	DefaultFilter    = string(repository.ReceivablesAll)
	DefaultDaysAhead = 7
)

// ReceivableUseCase cobro y consulta de cuentas por cobrar.
type ReceivableUseCase struct {
	txRunner    repository.TxRunner
	receivables repository.ReceivableRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewReceivableUseCase construye el caso de uso.
func NewReceivableUseCase(txRunner repository.TxRunner, receivables repository.ReceivableRepository, m *metrics.Metrics) *ReceivableUseCase {
	return &ReceivableUseCase{txRunner: txRunner, receivables: receivables, metrics: m, now: time.Now}
}

// MarkPaid pasa la cuenta a PAID. Si ya estaba pagada la devuelve sin cambios.
func (uc *ReceivableUseCase) MarkPaid(ctx context.Context, scope tenancy.Scope, id string) (*dto.ReceivableResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	var (
		out          *entity.Receivable
		transitioned bool
	)
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		r, err := tx.Receivables.GetByID(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrReceivableNotFound
		}
		if r.Status == entity.ReceivablePaid {
			out = r
			return nil
		}
		// Otra transacción pudo pagarla entre la lectura y el UPDATE condicional.
		changed, err := tx.Receivables.MarkPaid(ctx, scope.TenantID, id, now)
		if err != nil {
			return err
		}
		out, err = tx.Receivables.GetByID(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrReceivableNotFound
		}
		transitioned = changed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if transitioned {
		uc.metrics.ReceivablePaid()
	}
	resp := dto.NewReceivableResponse(out, now)
	return &resp, nil
}

// List devuelve las cuentas del filtro pedido, cada una con su venta, y los contadores por estado.
// El listado y los tres contadores se consultan en paralelo.
func (uc *ReceivableUseCase) List(ctx context.Context, scope tenancy.Scope, q dto.ReceivableQuery) (*dto.ReceivableListResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if q.Filter == "" {
		q.Filter = DefaultFilter
	}
	if q.DaysAhead == 0 {
		q.DaysAhead = DefaultDaysAhead
	}
	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	now := uc.now()
	window := func(f repository.ReceivableFilter) repository.ReceivableQuery {
		return repository.ReceivableQuery{
			Filter:        f,
			Now:           now,
			UpcomingUntil: now.AddDate(0, 0, q.DaysAhead),
		}
	}

	var (
		rows     []repository.ReceivableView
		counters dto.ReceivableCounters
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = uc.receivables.List(gctx, scope.TenantID, window(repository.ReceivableFilter(q.Filter)))
		if err != nil {
			return fmt.Errorf("listar cuentas por cobrar: %w", err)
		}
		return nil
	})
	count := func(f repository.ReceivableFilter, dst *int) {
		g.Go(func() error {
			n, err := uc.receivables.Count(gctx, scope.TenantID, window(f))
			if err != nil {
				return fmt.Errorf("contar cuentas %s: %w", f, err)
			}
			*dst = n
			return nil
		})
	}
	count(repository.ReceivablesOverdue, &counters.Overdue)
	count(repository.ReceivablesUpcoming, &counters.Upcoming)
	count(repository.ReceivablesPaid, &counters.Paid)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make([]dto.ReceivableWithSale, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		data = append(data, dto.ReceivableWithSale{
			ReceivableResponse: dto.NewReceivableResponse(&row.Receivable, now),
			Sale: dto.ReceivableSale{
				ID:        row.SaleID,
				Total:     row.SaleTotal,
				CreatedAt: row.SaleCreatedAt,
			},
		})
	}
	return &dto.ReceivableListResponse{Data: data, Counters: counters}, nil
}
