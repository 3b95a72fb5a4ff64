package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
)

type insertCall struct {
	customerID  string
	amountCents int64
	status      domain.InvoiceStatus
	date        string
}

type updateCall struct {
	id          string
	customerID  string
	amountCents int64
	status      domain.InvoiceStatus
}

// fakeInvoiceStore records every statement issued, in order, so tests can
// assert both the payloads and the signal ordering.
type fakeInvoiceStore struct {
	events  *[]string
	inserts []insertCall
	updates []updateCall
	deletes []string

	insertErr error
	updateErr error
	deleteErr error
}

func (s *fakeInvoiceStore) Insert(_ context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserts = append(s.inserts, insertCall{customerID, amountCents, status, date})
	*s.events = append(*s.events, "insert")
	return nil
}

func (s *fakeInvoiceStore) UpdateByID(_ context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, updateCall{id, customerID, amountCents, status})
	*s.events = append(*s.events, "update")
	return nil
}

func (s *fakeInvoiceStore) DeleteByID(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes = append(s.deletes, id)
	*s.events = append(*s.events, "delete")
	return nil
}

type fakeInvalidator struct {
	events *[]string
	paths  []string
	err    error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	*f.events = append(*f.events, "invalidate")
	return nil
}

func newFixture() (*InvoiceService, *fakeInvoiceStore, *fakeInvalidator) {
	events := &[]string{}
	store := &fakeInvoiceStore{events: events}
	views := &fakeInvalidator{events: events}
	svc := NewInvoiceService(store, views)
	svc.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, store, views
}

func validFields() map[string]string {
	return map[string]string{"customerId": "c1", "amount": "50", "status": "pending"}
}

func TestCreatePersistsCentsAndDate(t *testing.T) {
	t.Parallel()
	svc, store, views := newFixture()

	result := svc.Create(context.Background(), validFields())

	require.True(t, result.OK())
	assert.Equal(t, config.InvoiceListPath, result.RedirectTo)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, insertCall{"c1", 5000, domain.InvoiceStatusPending, "2024-01-01"}, store.inserts[0])
	assert.Equal(t, []string{config.InvoiceListPath}, views.paths)
}

func TestCreateRoundsAmountToCents(t *testing.T) {
	t.Parallel()
	svc, store, _ := newFixture()

	fields := validFields()
	fields["amount"] = "99.99"
	result := svc.Create(context.Background(), fields)

	require.True(t, result.OK())
	require.Len(t, store.inserts, 1)
	assert.Equal(t, int64(9999), store.inserts[0].amountCents)
}

func TestCreateInvalidatesBeforeRedirect(t *testing.T) {
	t.Parallel()
	svc, store, _ := newFixture()

	result := svc.Create(context.Background(), validFields())

	require.True(t, result.OK())
	// The invalidation signal must fire before the redirect target is
	// handed back, so a read after redirect never sees the stale view.
	assert.Equal(t, []string{"insert", "invalidate"}, *store.events)
}

func TestCreateValidationFailureSkipsStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		mutate    func(map[string]string)
		wantField string
	}{
		{name: "empty customer", mutate: func(f map[string]string) { f["customerId"] = "" }, wantField: "customerId"},
		{name: "non-numeric amount", mutate: func(f map[string]string) { f["amount"] = "fifty" }, wantField: "amount"},
		{name: "zero amount", mutate: func(f map[string]string) { f["amount"] = "0" }, wantField: "amount"},
		{name: "negative amount", mutate: func(f map[string]string) { f["amount"] = "-1" }, wantField: "amount"},
		{name: "bad status", mutate: func(f map[string]string) { f["status"] = "overdue" }, wantField: "status"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, store, views := newFixture()

			fields := validFields()
			tc.mutate(fields)
			result := svc.Create(context.Background(), fields)

			assert.Equal(t, StatusValidationFailed, result.Status)
			assert.NotEmpty(t, result.FieldErrors[tc.wantField])
			assert.Empty(t, store.inserts, "validation failure must not reach the store")
			assert.Empty(t, views.paths, "validation failure must not invalidate")
		})
	}
}

func TestCreatePersistenceFailure(t *testing.T) {
	t.Parallel()
	svc, store, views := newFixture()
	store.insertErr = errors.New("connection reset")

	result := svc.Create(context.Background(), validFields())

	assert.Equal(t, StatusPersistenceFailed, result.Status)
	assert.Equal(t, "Database error: failed to create invoice", result.Message)
	assert.Empty(t, result.FieldErrors)
	assert.Empty(t, views.paths, "no invalidation without a successful write")
}

func TestUpdateExcludesDate(t *testing.T) {
	t.Parallel()
	svc, store, views := newFixture()

	fields := validFields()
	fields["status"] = "paid"
	fields["date"] = "1999-12-31" // stray field must be ignored
	result := svc.Update(context.Background(), "inv-1", fields)

	require.True(t, result.OK())
	assert.Equal(t, config.InvoiceListPath, result.RedirectTo)
	require.Len(t, store.updates, 1)
	assert.Equal(t, updateCall{"inv-1", "c1", 5000, domain.InvoiceStatusPaid}, store.updates[0])
	assert.Equal(t, []string{"update", "invalidate"}, *store.events)
	assert.Equal(t, []string{config.InvoiceListPath}, views.paths)
}

func TestUpdateMissingInvoice(t *testing.T) {
	t.Parallel()
	svc, store, views := newFixture()
	store.updateErr = domain.ErrInvoiceNotFound

	result := svc.Update(context.Background(), "missing", validFields())

	assert.Equal(t, StatusNotFound, result.Status)
	assert.Equal(t, "Invoice not found", result.Message)
	assert.Empty(t, views.paths)
}

func TestUpdateValidationFailureSkipsStore(t *testing.T) {
	t.Parallel()
	svc, store, _ := newFixture()

	result := svc.Update(context.Background(), "inv-1", map[string]string{})

	assert.Equal(t, StatusValidationFailed, result.Status)
	assert.Empty(t, store.updates)
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	svc, store, views := newFixture()

	// The store treats a missing id as zero rows affected, not an error.
	first := svc.Delete(context.Background(), "inv-1")
	second := svc.Delete(context.Background(), "inv-1")

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, "Invoice deleted", first.Message)
	assert.Equal(t, []string{"inv-1", "inv-1"}, store.deletes)
	assert.Len(t, views.paths, 2)
}

func TestDeletePersistenceFailure(t *testing.T) {
	t.Parallel()
	svc, _, views := newFixture()

	events := &[]string{}
	store := &fakeInvoiceStore{events: events, deleteErr: errors.New("connection reset")}
	svc = NewInvoiceService(store, views)

	result := svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, StatusPersistenceFailed, result.Status)
	assert.Equal(t, "Database error: failed to delete invoice", result.Message)
	assert.Empty(t, views.paths)
}

func TestInvalidationFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	events := &[]string{}
	store := &fakeInvoiceStore{events: events}
	views := &fakeInvalidator{events: events, err: errors.New("redis down")}
	svc := NewInvoiceService(store, views)

	result := svc.Create(context.Background(), validFields())

	// The cached view expires on its own TTL; a failed signal is logged,
	// not surfaced.
	require.True(t, result.OK())
	assert.Equal(t, config.InvoiceListPath, result.RedirectTo)
}
