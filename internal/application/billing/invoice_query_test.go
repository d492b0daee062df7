package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// seedInvoices agrega n facturas en orden cronológico (la última es la más
// reciente).
func seedInvoices(t *testing.T, repo *fakeInvoiceRepo, n int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("inv-%03d", i+1)
		err := repo.Create(context.Background(), &entity.Invoice{
			ID:                   id,
			ClientID:             testClientID,
			ClientName:           "Comercial Andina SAS",
			ClientIdentification: "900123456-7",
			Date:                 base.Add(time.Duration(i) * time.Hour),
			Total:                decimal.NewFromInt(100_000),
			Status:               entity.InvoiceStatusIssued,
		}, []*entity.InvoiceItem{{ID: id + "-item", InvoiceID: id, LineNumber: 1, ProductID: testProductID, Quantity: 1}})
		require.NoError(t, err)
	}
}

// El consecutivo de presentación se deriva de la posición: con N facturas, la
// más reciente es la N y la más antigua la 1. No se persiste.
func TestInvoiceQuery_List_NumeracionDescendente(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	seedInvoices(t, invoices, 5)
	uc := billing.NewInvoiceQueryUseCase(invoices)

	list, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 5)

	assert.Equal(t, "inv-005", list[0].ID, "la más reciente va primero")
	assert.Equal(t, 5, list[0].Number)
	assert.Equal(t, "inv-001", list[4].ID)
	assert.Equal(t, 1, list[4].Number)
}

// La numeración sobrevive la paginación: la segunda página continúa donde
// terminó la primera.
func TestInvoiceQuery_List_NumeracionConOffset(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	seedInvoices(t, invoices, 7)
	uc := billing.NewInvoiceQueryUseCase(invoices)

	page, err := uc.List(context.Background(), 3, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)

	assert.Equal(t, 4, page[0].Number)
	assert.Equal(t, 3, page[1].Number)
	assert.Equal(t, 2, page[2].Number)
}

func TestInvoiceQuery_List_SinFacturas(t *testing.T) {
	uc := billing.NewInvoiceQueryUseCase(newFakeInvoiceRepo())

	list, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceQuery_GetByID_ConLineas(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	seedInvoices(t, invoices, 2)
	uc := billing.NewInvoiceQueryUseCase(invoices)

	inv, err := uc.GetByID(context.Background(), "inv-002")
	require.NoError(t, err)

	assert.Equal(t, "inv-002", inv.ID)
	assert.Equal(t, "Comercial Andina SAS", inv.Client.Name)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, testProductID, inv.Items[0].ProductID)
}

func TestInvoiceQuery_GetByID_NoExiste(t *testing.T) {
	uc := billing.NewInvoiceQueryUseCase(newFakeInvoiceRepo())

	_, err := uc.GetByID(context.Background(), "inv-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
