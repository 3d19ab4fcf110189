package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
)

// XLSXContentType tipo MIME del archivo exportado.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter genera el archivo de exportación del catálogo (implementado en infrastructure/xlsx).
type Exporter interface {
	Export(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase exporta todo el catálogo del tenant.
type ExportUseCase struct {
	products repository.ProductRepository
	exporter Exporter
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(products repository.ProductRepository, exporter Exporter) *ExportUseCase {
	return &ExportUseCase{products: products, exporter: exporter, now: time.Now}
}

// Export devuelve el XLSX con todos los productos ordenados por nombre.
func (uc *ExportUseCase) Export(ctx context.Context, scope tenancy.Scope) (*ExportFile, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.products.ListAll(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.Export(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("exportar inventario: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("inventario-%s.xlsx", uc.now().Format("20060102")),
		ContentType: XLSXContentType,
		Data:        data,
	}, nil
}
