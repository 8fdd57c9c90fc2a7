package stock

import (
	"fmt"

	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

// Allocation una extracción planificada: cuánto retirar de qué fila de contenido.
type Allocation struct {
	Content  *entity.CellContent
	Quantity int
}

// AllocationStrategy decide de qué celdas retirar el stock de un producto
// durante el despacho. Las filas llegan filtradas (celdas activas, cantidad
// > 0) y ordenadas por última modificación ascendente. Es una política
// intercambiable: una estrategia por lote/fecha de recepción estricta puede
// sustituir a la heurística por defecto sin tocar el procesador.
type AllocationStrategy interface {
	Plan(available []*entity.CellContent, required int) ([]Allocation, error)
}

// OldestFirstStrategy retira primero del contenido modificado hace más tiempo.
// Heurística FIFO por fecha de modificación, no un FIFO real por lote.
type OldestFirstStrategy struct{}

// Plan valida la disponibilidad total antes de planificar nada (fail fast) y
// luego recorre las filas en orden retirando min(cantidad, pendiente).
func (OldestFirstStrategy) Plan(available []*entity.CellContent, required int) ([]Allocation, error) {
	total := 0
	for _, c := range available {
		total += c.Quantity
	}
	if total < required {
		return nil, fmt.Errorf("%w: requerido %d, disponible %d", domain.ErrInsufficientStock, required, total)
	}

	plan := make([]Allocation, 0, len(available))
	remaining := required
	for _, c := range available {
		if remaining <= 0 {
			break
		}
		take := c.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{Content: c, Quantity: take})
		remaining -= take
	}
	return plan, nil
}
