package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-0000000000aa"

func newStockEnv() (*memStore, *stock.CellContentUseCase) {
	s := newMemStore()
	uc := stock.NewCellContentUseCase(&fakeTxRunner{s}, &memCellRepo{s}, &memContentRepo{s}, &memMovementRepo{s})
	return s, uc
}

func seedCell(s *memStore, id, code string, capacity int, active bool) {
	s.cells[id] = &entity.StorageCell{ID: id, Code: code, Capacity: capacity, IsActive: active}
}

func seedProduct(s *memStore, id, sku, name string) {
	s.products[id] = &entity.Product{ID: id, SKU: sku, Name: name}
}

func seedContent(s *memStore, id, productID, cellID string, qty int, updatedAt time.Time) {
	s.contents[id] = &entity.CellContent{
		ID: id, ProductID: productID, StorageCellID: cellID, Quantity: qty, UpdatedAt: updatedAt,
	}
}

// sumDeltas suma los deltas del registro de movimientos para (producto, celda).
func sumDeltas(s *memStore, productID, cellID string) int {
	total := 0
	for _, m := range s.movements {
		if m.ProductID == productID && m.StorageCellID == cellID {
			total += m.Delta
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Deposit
// ──────────────────────────────────────────────────────────────────────────────

func TestDeposit_CreaFilaYRegistraMovimiento(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")

	out, err := uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 4}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Quantity)
	assert.False(t, out.Removed)

	require.Len(t, s.movements, 1, "un depósito registra exactamente un movimiento")
	assert.Equal(t, entity.MovementAdjustmentPlus, s.movements[0].Type)
	assert.Equal(t, 4, s.movements[0].Delta)
	assert.Equal(t, testUserID, s.movements[0].UserID)
}

func TestDeposit_AcumulaSobreFilaExistente(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 3, time.Now())

	out, err := uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 2}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Quantity)
	assert.Len(t, s.contents, 1, "no debe crearse una segunda fila para el mismo (producto, celda)")
}

// Celda con capacidad 10 y ocupación 8: depositar 5 debe fallar sin tocar nada.
func TestDeposit_RechazaExcesoDeCapacidad(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")
	seedContent(s, "cc1", "p2", "c1", 8, time.Now())

	_, err := uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 5}, testUserID)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	assert.Len(t, s.contents, 1, "la fila nueva no debe persistirse")
	assert.Equal(t, 8, s.contents["cc1"].Quantity, "la ocupación previa no debe cambiar")
	assert.Empty(t, s.movements, "un depósito rechazado no registra movimiento")
}

// Llenar la celda hasta el tope exacto es válido; una unidad más ya no cabe.
func TestDeposit_LlenaHastaElTopeExacto(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")

	out, err := uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 10}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Quantity)

	_, err = uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 1}, testUserID)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 10, s.contents[out.ID].Quantity, "la ocupación sigue en el tope")
}

func TestDeposit_RechazaCeldaInactiva(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, false)
	seedProduct(s, "p1", "SKU-1", "Tornillos")

	_, err := uc.Deposit(context.Background(), "c1", dto.DepositRequest{ProductID: "p1", Quantity: 1}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInactiveCell)
}

func TestDeposit_RechazaCeldaInexistente(t *testing.T) {
	_, uc := newStockEnv()
	_, err := uc.Deposit(context.Background(), "no-existe", dto.DepositRequest{ProductID: "p1", Quantity: 1}, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Withdraw
// ──────────────────────────────────────────────────────────────────────────────

func TestWithdraw_ParcialDejaResto(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 5, time.Now())

	out, err := uc.Withdraw(context.Background(), "cc1", dto.WithdrawRequest{Quantity: 2}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	assert.False(t, out.Removed)
	require.Len(t, s.movements, 1)
	assert.Equal(t, -2, s.movements[0].Delta)
	assert.Equal(t, entity.MovementAdjustmentMinus, s.movements[0].Type)
}

// Retiro que deja la fila en cero: la fila se elimina, no queda con cantidad 0.
func TestWithdraw_TotalEliminaLaFila(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 5, time.Now())

	out, err := uc.Withdraw(context.Background(), "cc1", dto.WithdrawRequest{Quantity: 5}, testUserID)
	require.NoError(t, err)
	assert.True(t, out.Removed, "la respuesta debe señalar que la fila fue eliminada")
	assert.Equal(t, 0, out.Quantity)
	assert.Empty(t, s.contents, "no deben quedar filas con cantidad cero")
}

func TestWithdraw_RechazaStockInsuficiente(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 3, time.Now())

	_, err := uc.Withdraw(context.Background(), "cc1", dto.WithdrawRequest{Quantity: 4}, testUserID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, s.contents["cc1"].Quantity, "la cantidad no debe cambiar en un retiro rechazado")
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_DeltaCeroNoRegistraMovimiento(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 5, time.Now())

	out, err := uc.AdjustQuantity(context.Background(), "cc1", 5, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Quantity)
	assert.Empty(t, s.movements, "ajustar a la misma cantidad no debe registrar movimiento")
}

func TestAdjustQuantity_ACeroEliminaLaFila(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 5, time.Now())

	out, err := uc.AdjustQuantity(context.Background(), "cc1", 0, testUserID)
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Empty(t, s.contents)
	require.Len(t, s.movements, 1)
	assert.Equal(t, -5, s.movements[0].Delta)
	assert.Equal(t, entity.MovementAdjustmentMinus, s.movements[0].Type)
}

func TestAdjustQuantity_AumentoRevalidaCapacidad(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")
	seedContent(s, "cc1", "p1", "c1", 3, time.Now())
	seedContent(s, "cc2", "p2", "c1", 6, time.Now())

	// 6 del otro producto + 5 nuevos = 11 > 10
	_, err := uc.AdjustQuantity(context.Background(), "cc1", 5, testUserID)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 3, s.contents["cc1"].Quantity)

	// 6 + 4 = 10 cabe justo
	out, err := uc.AdjustQuantity(context.Background(), "cc1", 4, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Quantity)
}

type lockLog struct {
	calls []string
}

type loggingCellRepo struct {
	memCellRepo
	log *lockLog
}

func (r *loggingCellRepo) GetForUpdate(id string) (*entity.StorageCell, error) {
	r.log.calls = append(r.log.calls, "celda")
	return r.memCellRepo.GetForUpdate(id)
}

type loggingContentRepo struct {
	memContentRepo
	log *lockLog
}

func (r *loggingContentRepo) GetByIDForUpdate(id string) (*entity.CellContent, error) {
	r.log.calls = append(r.log.calls, "contenido")
	return r.memContentRepo.GetByIDForUpdate(id)
}

type loggingTxRunner struct {
	fakeTxRunner
	log *lockLog
}

func (r *loggingTxRunner) RunStock(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
) error) error {
	snap := r.s.clone()
	if err := fn(
		&loggingCellRepo{memCellRepo{r.s}, r.log},
		&loggingContentRepo{memContentRepo{r.s}, r.log},
		&memMovementRepo{r.s},
	); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// El ajuste toma los bloqueos en el mismo orden que el depósito: primero la
// celda, después la fila de contenido. El orden inverso puede interbloquear un
// ajuste con un depósito concurrente sobre la misma celda.
func TestAdjustQuantity_BloqueaLaCeldaAntesQueElContenido(t *testing.T) {
	s := newMemStore()
	log := &lockLog{}
	uc := stock.NewCellContentUseCase(&loggingTxRunner{fakeTxRunner{s}, log}, &memCellRepo{s}, &memContentRepo{s}, &memMovementRepo{s})
	seedCell(s, "c1", "A-01-01", 10, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedContent(s, "cc1", "p1", "c1", 3, time.Now())

	_, err := uc.AdjustQuantity(context.Background(), "cc1", 5, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"celda", "contenido"}, log.calls)
}

func TestAdjustQuantity_RechazaNegativo(t *testing.T) {
	_, uc := newStockEnv()
	_, err := uc.AdjustQuantity(context.Background(), "cc1", -1, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación: la suma de deltas del registro reproduce la cantidad actual.
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_SumaDeDeltasReproduceLaCantidad(t *testing.T) {
	s, uc := newStockEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	ctx := context.Background()

	_, err := uc.Deposit(ctx, "c1", dto.DepositRequest{ProductID: "p1", Quantity: 10}, testUserID)
	require.NoError(t, err)
	out, err := uc.Deposit(ctx, "c1", dto.DepositRequest{ProductID: "p1", Quantity: 7}, testUserID)
	require.NoError(t, err)
	_, err = uc.Withdraw(ctx, out.ID, dto.WithdrawRequest{Quantity: 4}, testUserID)
	require.NoError(t, err)
	_, err = uc.AdjustQuantity(ctx, out.ID, 20, testUserID)
	require.NoError(t, err)

	require.Len(t, s.contents, 1)
	var current int
	for _, c := range s.contents {
		current = c.Quantity
	}
	assert.Equal(t, 20, current)
	assert.Equal(t, current, sumDeltas(s, "p1", "c1"),
		"la suma de deltas del registro debe reproducir la cantidad actual")
}
