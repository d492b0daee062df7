package billing_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios, para probar los casos de uso sin base
// de datos. Los métodos mutadores permiten inyectar fallos (failCreate,
// failDecrementFor) y el fake de productos es seguro para uso concurrente
// porque los descuentos de stock corren en paralelo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

type fakeProductRepo struct {
	mu               sync.Mutex
	products         map[string]*entity.Product
	failDecrementFor string // ProductID cuyo descuento debe fallar
	decrements       int    // descuentos aplicados con éxito

	// Sincronización opcional para reproducir carreras de forma determinista:
	// si gate no es nil, cada descuento anuncia su llegada en arrived y espera
	// a que el test cierre gate antes de aplicar la resta.
	arrived chan struct{}
	gate    chan struct{}
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

// DecrementStock imita al store real: resta sin condición sobre el valor
// actual, puede dejar el stock en negativo.
func (r *fakeProductRepo) DecrementStock(ctx context.Context, productID string, quantity int64) error {
	if r.gate != nil {
		r.arrived <- struct{}{}
		<-r.gate
	}
	// Como el cliente de un store real, respeta la cancelación del contexto.
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDecrementFor == productID {
		return errors.New("descuento de stock rechazado por el store")
	}
	p, ok := r.products[productID]
	if !ok {
		return errors.New("producto no existe en el store")
	}
	p.Stock -= quantity
	r.decrements++
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) stockOf(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type fakeInvoiceRepo struct {
	mu         sync.Mutex
	invoices   []*entity.Invoice
	items      map[string][]*entity.InvoiceItem
	failCreate bool
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{items: make(map[string][]*entity.InvoiceItem)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("escritura de factura rechazada por el store")
	}
	r.invoices = append(r.invoices, inv)
	// El store no garantiza el orden físico de las filas: se guardan
	// invertidas para que solo el número de línea pueda restaurar el orden.
	stored := make([]*entity.InvoiceItem, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		stored = append(stored, items[i])
	}
	r.items[inv.ID] = stored
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

// GetItemsByInvoiceID ordena por número de línea, igual que el ORDER BY
// line_number del repositorio real.
func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.InvoiceItem, len(r.items[invoiceID]))
	copy(items, r.items[invoiceID])
	sort.SliceStable(items, func(i, j int) bool { return items[i].LineNumber < items[j].LineNumber })
	return items, nil
}

// ListByDateDesc las facturas se agregan en orden cronológico: se devuelve el
// slice invertido, igual que el ORDER BY date DESC del repositorio real.
func (r *fakeInvoiceRepo) ListByDateDesc(limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.invoices)
	out := make([]*entity.Invoice, 0, limit)
	for i := n - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.invoices[i])
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invoices), nil
}
