package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

func newInboundEnv() (*memStore, *stock.InboundUseCase) {
	s := newMemStore()
	contentUC := stock.NewCellContentUseCase(&fakeTxRunner{s}, &memCellRepo{s}, &memContentRepo{s}, &memMovementRepo{s})
	uc := stock.NewInboundUseCase(&fakeTxRunner{s}, &memInboundRepo{s}, &memProductRepo{s}, &memCellRepo{s}, contentUC)
	return s, uc
}

func intPtr(n int) *int       { return &n }
func strPtr(v string) *string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Cabecera y posiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInboundCreate_RechazaNumeroDuplicado(t *testing.T) {
	_, uc := newInboundEnv()
	_, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInboundAddItem_PrimeraPosicionPasaAInProgress(t *testing.T) {
	s, uc := newInboundEnv()
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundPlanned, doc.Status)

	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{ProductID: "p1", QuantityExpected: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.InboundInProgress, doc.Status,
		"la primera posición debe pasar el documento a IN_PROGRESS")
	require.Len(t, doc.Items, 1)
	require.NotNil(t, doc.Items[0].QuantityReceived)
	assert.Equal(t, 10, *doc.Items[0].QuantityReceived,
		"sin cantidad recibida explícita se asume lo esperado")
}

func TestInboundAddItem_RechazaDocumentoTerminal(t *testing.T) {
	s, uc := newInboundEnv()
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	s.inbound[doc.ID].Status = entity.InboundCompleted

	_, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{ProductID: "p1", QuantityExpected: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessReceipt
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessReceipt_DepositaTodoYCompleta(t *testing.T) {
	s, uc := newInboundEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedCell(s, "c2", "A-01-02", 100, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")

	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p1", QuantityExpected: 10, QuantityReceived: intPtr(10), TargetCellID: strPtr("c1")})
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p2", QuantityExpected: 5, QuantityReceived: intPtr(4), TargetCellID: strPtr("c2")})
	require.NoError(t, err)

	out, err := uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundCompleted, out.Status)
	assert.NotNil(t, out.ActualReceiptDate, "el proceso debe fijar la fecha real de recepción")

	assert.Equal(t, 10, sumDeltas(s, "p1", "c1"))
	assert.Equal(t, 4, sumDeltas(s, "p2", "c2"))
	require.Len(t, s.movements, 2)
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementReceipt, m.Type)
		assert.NotNil(t, m.InboundItemID, "cada movimiento debe referenciar su posición de origen")
	}
}

// Documento con una posición sin celda de destino: el proceso completo falla,
// las otras posiciones no se depositan; tras asignar la celda el reintento
// funciona.
func TestProcessReceipt_PosicionSinCeldaRevierteTodo(t *testing.T) {
	s, uc := newInboundEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")

	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p1", QuantityExpected: 10, QuantityReceived: intPtr(10), TargetCellID: strPtr("c1")})
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p2", QuantityExpected: 5, QuantityReceived: intPtr(5)}) // sin celda
	require.NoError(t, err)

	_, err = uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrMissingLocation)
	assert.Contains(t, err.Error(), "Tuercas", "el error debe nombrar el producto sin ubicación")

	assert.Empty(t, s.contents, "ningún depósito debe persistir si el documento falla")
	assert.Empty(t, s.movements)
	assert.Equal(t, entity.InboundInProgress, s.inbound[doc.ID].Status,
		"el documento queda en su estado previo y puede reintentarse")

	// Asignar la celda faltante y reintentar.
	fixed, err := uc.GetByID(doc.ID)
	require.NoError(t, err)
	var itemID string
	for _, it := range fixed.Items {
		if it.ProductID == "p2" {
			itemID = it.ID
		}
	}
	_, err = uc.UpdateItem(doc.ID, itemID, dto.UpdateInboundItemRequest{TargetCellID: strPtr("c1")})
	require.NoError(t, err)

	out, err := uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundCompleted, out.Status)
	assert.Equal(t, 10, sumDeltas(s, "p1", "c1"))
	assert.Equal(t, 5, sumDeltas(s, "p2", "c1"))
}

func TestProcessReceipt_CapacidadInsuficienteRevierteTodo(t *testing.T) {
	s, uc := newInboundEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedCell(s, "c2", "A-01-02", 3, true) // no caben 5
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")

	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p1", QuantityExpected: 10, QuantityReceived: intPtr(10), TargetCellID: strPtr("c1")})
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p2", QuantityExpected: 5, QuantityReceived: intPtr(5), TargetCellID: strPtr("c2")})
	require.NoError(t, err)

	_, err = uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, s.contents, "el depósito de la primera posición debe revertirse")
	assert.Empty(t, s.movements)
}

func TestProcessReceipt_DocumentoVacio(t *testing.T) {
	_, uc := newInboundEnv()
	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)

	_, err = uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

// Reprocesar un documento COMPLETED se rechaza: no puede duplicar depósitos.
func TestProcessReceipt_RechazaDocumentoTerminal(t *testing.T) {
	s, uc := newInboundEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")

	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p1", QuantityExpected: 10, QuantityReceived: intPtr(10), TargetCellID: strPtr("c1")})
	require.NoError(t, err)

	_, err = uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.NoError(t, err)
	require.Len(t, s.movements, 1)

	_, err = uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, s.movements, 1, "el reintento no debe duplicar depósitos")
}

// Posición sin cantidad recibida: se normaliza a 0 y no bloquea el documento.
func TestProcessReceipt_PosicionNoRecibidaSeNormalizaACero(t *testing.T) {
	s, uc := newInboundEnv()
	seedCell(s, "c1", "A-01-01", 100, true)
	seedProduct(s, "p1", "SKU-1", "Tornillos")
	seedProduct(s, "p2", "SKU-2", "Tuercas")

	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p1", QuantityExpected: 10, QuantityReceived: intPtr(10), TargetCellID: strPtr("c1")})
	require.NoError(t, err)
	doc, err = uc.AddItem(doc.ID, dto.AddInboundItemRequest{
		ProductID: "p2", QuantityExpected: 5, QuantityReceived: intPtr(0)}) // nada llegó, sin celda
	require.NoError(t, err)

	out, err := uc.ProcessReceipt(context.Background(), doc.ID, testUserID)
	require.NoError(t, err, "una posición con 0 recibido no necesita celda ni bloquea el proceso")
	assert.Equal(t, entity.InboundCompleted, out.Status)
	assert.Equal(t, 10, sumDeltas(s, "p1", "c1"))
	assert.Equal(t, 0, sumDeltas(s, "p2", "c1"))
}

func TestInboundCancel_SoloAntesDeProcesar(t *testing.T) {
	_, uc := newInboundEnv()
	doc, err := uc.Create(dto.CreateInboundShipmentRequest{DocumentNumber: "IN-001"}, testUserID)
	require.NoError(t, err)

	out, err := uc.Cancel(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundCancelled, out.Status)

	_, err = uc.Cancel(doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
