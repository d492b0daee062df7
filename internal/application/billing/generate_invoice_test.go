package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testClientID  = "11111111-1111-1111-1111-111111111111"
	testProductID = "22222222-2222-2222-2222-222222222222"
	testSellerID  = "33333333-3333-3333-3333-333333333333"
	testSellerEml = "vendedor@facturas.test"
)

func clienteDemo() *entity.Client {
	return &entity.Client{
		ID:             testClientID,
		Name:           "Comercial Andina SAS",
		Identification: "900123456-7",
		Phone:          "3001234567",
	}
}

func productoDemo(id string, price int64, stock int64) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      "Producto " + id[:8],
		SKU:       "SKU-" + id[:8],
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func buildUseCase(clients *fakeClientRepo, products *fakeProductRepo, invoices *fakeInvoiceRepo) *billing.GenerateInvoiceUseCase {
	return billing.NewGenerateInvoiceUseCase(clients, products, invoices, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

// Carrito vacío o sin cliente: se rechaza sin tocar factura ni inventario.
func TestGenerateInvoice_SolicitudInvalida_SinEfectos(t *testing.T) {
	cases := []struct {
		name string
		in   dto.CreateInvoiceRequest
	}{
		{"sin cliente", dto.CreateInvoiceRequest{Items: []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 1}}}},
		{"sin lineas", dto.CreateInvoiceRequest{ClientID: testClientID}},
		{"cantidad cero", dto.CreateInvoiceRequest{ClientID: testClientID, Items: []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 0}}}},
		{"linea sin producto", dto.CreateInvoiceRequest{ClientID: testClientID, Items: []dto.InvoiceItemRequest{{Quantity: 2}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := newFakeProductRepo(productoDemo(testProductID, 250_000, 10))
			invoices := newFakeInvoiceRepo()
			uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

			_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, tc.in)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			count, _ := invoices.Count()
			assert.Zero(t, count, "no debe quedar factura persistida")
			assert.Zero(t, products.decrements, "no debe haber descuentos de stock")
		})
	}
}

func TestGenerateInvoice_ClienteInexistente_Retorna404(t *testing.T) {
	uc := buildUseCase(newFakeClientRepo(), newFakeProductRepo(productoDemo(testProductID, 250_000, 10)), newFakeInvoiceRepo())

	_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

// Vender 3 unidades de un producto con stock 10: la factura queda con los
// totales del IVA 19% y el stock baja a 7.
func TestGenerateInvoice_CaminoFeliz(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 250_000, 10))
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	resp, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Totales: 3 × 250.000 = 750.000; IVA 142.500; total 892.500
	assert.True(t, decimal.NewFromInt(750_000).Equal(resp.SubTotal), "subtotal: %s", resp.SubTotal)
	assert.True(t, decimal.NewFromInt(142_500).Equal(resp.Taxes), "taxes: %s", resp.Taxes)
	assert.True(t, decimal.NewFromInt(892_500).Equal(resp.Total), "total: %s", resp.Total)

	// Copia del cliente y del vendedor embebida en la factura
	assert.Equal(t, "Comercial Andina SAS", resp.Client.Name)
	assert.Equal(t, "900123456-7", resp.Client.Identification)
	assert.Equal(t, testSellerID, resp.SalespersonID)
	assert.Equal(t, testSellerEml, resp.SalespersonEmail)
	assert.Equal(t, entity.InvoiceStatusIssued, resp.Status)

	// Factura persistida con sus líneas y stock descontado
	count, _ := invoices.Count()
	assert.Equal(t, 1, count)
	items, _ := invoices.GetItemsByInvoiceID(resp.ID)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, int64(7), products.stockOf(testProductID))
}

// Líneas repetidas del mismo producto en la solicitud se consolidan en una
// sola línea con la cantidad sumada.
func TestGenerateInvoice_LineasRepetidasSeConsolidan(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 100_000, 10))
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	resp, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: testProductID, Quantity: 2},
			{ProductID: testProductID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "a lo sumo una línea por producto")
	assert.Equal(t, int64(5), resp.Items[0].Quantity)
	assert.Equal(t, int64(5), products.stockOf(testProductID))
}

// Las líneas son una secuencia ordenada: se persisten numeradas 1..N según el
// orden en que entraron al carrito y se recuperan en ese mismo orden, aunque
// el store las devuelva en cualquier orden físico (el fake las guarda
// invertidas a propósito).
func TestGenerateInvoice_OrdenDeLineasSePreserva(t *testing.T) {
	idA := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	idB := "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	idC := "cccccccc-cccc-cccc-cccc-cccccccccccc"
	products := newFakeProductRepo(
		productoDemo(idA, 100_000, 10),
		productoDemo(idB, 50_000, 10),
		productoDemo(idC, 20_000, 10),
	)
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	resp, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: idA, Quantity: 2},
			{ProductID: idB, Quantity: 1},
			{ProductID: idC, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// La respuesta de creación conserva el orden del carrito
	require.Len(t, resp.Items, 3)
	assert.Equal(t, []string{idA, idB, idC},
		[]string{resp.Items[0].ProductID, resp.Items[1].ProductID, resp.Items[2].ProductID})

	// Las líneas persistidas quedan numeradas 1..N y la lectura las devuelve
	// en ese orden
	persisted, err := invoices.GetItemsByInvoiceID(resp.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 3)
	for i, item := range persisted {
		assert.Equal(t, i+1, item.LineNumber)
	}
	assert.Equal(t, []string{idA, idB, idC},
		[]string{persisted[0].ProductID, persisted[1].ProductID, persisted[2].ProductID})

	// Y la vista de detalle las muestra en el mismo orden
	query := billing.NewInvoiceQueryUseCase(invoices)
	detail, err := query.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 3)
	assert.Equal(t, []string{idA, idB, idC},
		[]string{detail.Items[0].ProductID, detail.Items[1].ProductID, detail.Items[2].ProductID})
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de stock al armar el carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateInvoice_ProductoSinStock_Rechazado(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 250_000, 0))
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	count, _ := invoices.Count()
	assert.Zero(t, count)
	assert.Equal(t, int64(0), products.stockOf(testProductID))
}

func TestGenerateInvoice_CantidadSuperaStock_Rechazada(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 250_000, 4))
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 5}},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	count, _ := invoices.Count()
	assert.Zero(t, count)
	assert.Equal(t, int64(4), products.stockOf(testProductID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad parcial: factura y descuentos son escrituras separadas
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura de la factura falla, el inventario queda intacto y el
// llamador puede reintentar con el mismo carrito.
func TestGenerateInvoice_FallaFactura_InventarioIntacto(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 250_000, 10))
	invoices := newFakeInvoiceRepo()
	invoices.failCreate = true
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 3}},
	})

	assert.Error(t, err)
	assert.Equal(t, int64(10), products.stockOf(testProductID), "sin descuentos si la factura no se guardó")
	assert.Zero(t, products.decrements)
}

// Si un descuento falla, la factura YA quedó persistida y los descuentos de
// las otras líneas no se cancelan ni se revierten: cada línea se resuelve por
// su cuenta, el caso de uso retorna error y el documento sobrevive.
func TestGenerateInvoice_FallaDescuento_FacturaSobrevive(t *testing.T) {
	otherID := "44444444-4444-4444-4444-444444444444"
	thirdID := "55555555-5555-5555-5555-555555555555"
	products := newFakeProductRepo(
		productoDemo(testProductID, 250_000, 10),
		productoDemo(otherID, 100_000, 10),
		productoDemo(thirdID, 50_000, 10),
	)
	products.failDecrementFor = otherID
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	_, err := uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items: []dto.InvoiceItemRequest{
			{ProductID: testProductID, Quantity: 2},
			{ProductID: otherID, Quantity: 1},
			{ProductID: thirdID, Quantity: 3},
		},
	})

	assert.Error(t, err, "el fallo de descuento se reporta al llamador")
	count, _ := invoices.Count()
	assert.Equal(t, 1, count, "la factura persiste aunque el descuento falle")
	assert.Equal(t, int64(10), products.stockOf(otherID), "la línea fallida no descuenta")
	assert.Equal(t, int64(8), products.stockOf(testProductID), "las líneas hermanas sí descuentan")
	assert.Equal(t, int64(7), products.stockOf(thirdID), "las líneas hermanas sí descuentan")
	assert.Equal(t, 2, products.decrements)
}

// Dos sesiones venden la última unidad a la vez: ambas validan contra su foto
// de stock, ambas facturan y el stock termina en -1. Es la carrera conocida
// del descuento sin condición. El gate del fake retiene ambos descuentos
// hasta que las dos sesiones ya validaron su foto, para reproducir la carrera
// de forma determinista.
func TestGenerateInvoice_CarreraUltimaUnidad_StockNegativo(t *testing.T) {
	products := newFakeProductRepo(productoDemo(testProductID, 250_000, 1))
	products.arrived = make(chan struct{}, 2)
	products.gate = make(chan struct{})
	invoices := newFakeInvoiceRepo()
	uc := buildUseCase(newFakeClientRepo(clienteDemo()), products, invoices)

	in := dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: testProductID, Quantity: 1}},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.GenerateInvoice(context.Background(), testSellerID, testSellerEml, in)
		}()
	}
	// Ambas sesiones llegaron al descuento con su foto de stock = 1
	<-products.arrived
	<-products.arrived
	close(products.gate)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	count, _ := invoices.Count()
	assert.Equal(t, 2, count, "ambas sesiones facturan")
	assert.Equal(t, int64(-1), products.stockOf(testProductID), "el stock queda negativo")
}
