package service

import (
	"context"
	"testing"

	"github.com/Rasouli77/ellenovastyle/internal/client/snapppay"
	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderStoreStub keeps one order in memory and mirrors the DAO's guarded
// transition semantics: the conditional UPDATE only wins when the current
// status matches.
type orderStoreStub struct {
	order *model.Order
	logs  []*model.PaymentLog
}

func (s *orderStoreStub) snapshot() *model.Order {
	copied := *s.order
	return &copied
}

func (s *orderStoreStub) GetOrderByID(_ context.Context, _ int64) (*model.Order, error) {
	return s.snapshot(), nil
}

func (s *orderStoreStub) GetByAuthority(_ context.Context, _ string) (*model.Order, error) {
	return s.snapshot(), nil
}

func (s *orderStoreStub) GetBySnappPayToken(_ context.Context, _ string) (*model.Order, error) {
	return s.snapshot(), nil
}

func (s *orderStoreStub) GetUserOrders(_ context.Context, _ int64) ([]*model.Order, error) {
	return []*model.Order{s.snapshot()}, nil
}

func (s *orderStoreStub) TransitionStatus(_ context.Context, _ int64, fromStatus, toStatus string) error {
	if s.order.Status != fromStatus {
		return dao.ErrOrderStatusChanged
	}
	s.order.Status = toStatus
	return nil
}

func (s *orderStoreStub) SetStatus(_ context.Context, _ int64, status string) error {
	s.order.Status = status
	return nil
}

func (s *orderStoreStub) UpdateFields(_ context.Context, _ int64, updates map[string]interface{}) error {
	if refID, ok := updates["zarinpal_ref_id"].(int64); ok {
		s.order.ZarinpalRefID = refID
	}
	if txID, ok := updates["snapppay_transaction_id"].(string); ok {
		s.order.SnappPayTransactionID = txID
	}
	return nil
}

func (s *orderStoreStub) ReduceItemQuantity(_ context.Context, itemID int64, newQuantity int) error {
	for i := range s.order.Items {
		if s.order.Items[i].ID == itemID {
			s.order.Items[i].ItemDiscount = s.order.Items[i].ScaledDiscount(newQuantity)
			s.order.Items[i].Quantity = newQuantity
		}
	}
	return nil
}

func (s *orderStoreStub) CreatePaymentLog(_ context.Context, log *model.PaymentLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func (s *orderStoreStub) logStatuses() []string {
	statuses := make([]string, 0, len(s.logs))
	for _, log := range s.logs {
		statuses = append(statuses, log.Status)
	}
	return statuses
}

type stockRecorder struct {
	decrements int
	restores   int
}

func (r *stockRecorder) DecrementForOrder(_ context.Context, _ *model.Order) error {
	r.decrements++
	return nil
}

func (r *stockRecorder) RestoreForOrder(_ context.Context, _ *model.Order) error {
	r.restores++
	return nil
}

func (r *stockRecorder) RestoreQuantity(_ context.Context, _ int64, _ int) error {
	return nil
}

type cartRecorder struct {
	cleared []string
}

func (r *cartRecorder) Clear(_ context.Context, session string) error {
	r.cleared = append(r.cleared, session)
	return nil
}

type zarinpalStub struct {
	refID    int64
	verifies int
}

func (z *zarinpalStub) VerifyPayment(_ context.Context, _ int, _ string) (int64, error) {
	z.verifies++
	return z.refID, nil
}

type snappPayStub struct {
	verifyResult snapppay.TxResult
	settleResult snapppay.TxResult
	settles      int
}

func (s *snappPayStub) Token(_ context.Context) (string, error) {
	return "bearer-token", nil
}

func (s *snappPayStub) Verify(_ context.Context, _, _ string) (snapppay.TxResult, error) {
	return s.verifyResult, nil
}

func (s *snappPayStub) Settle(_ context.Context, _, _ string) (snapppay.TxResult, error) {
	s.settles++
	return s.settleResult, nil
}

func (s *snappPayStub) Cancel(_ context.Context, _, _ string) (snapppay.TxResult, error) {
	return snapppay.TxResult{Successful: true}, nil
}

func (s *snappPayStub) Update(_ context.Context, _ string, _ snapppay.UpdateRequest) (snapppay.TxResult, error) {
	return snapppay.TxResult{Successful: true}, nil
}

func (s *snappPayStub) PaymentStatus(_ context.Context, _, _ string) (snapppay.StatusResult, error) {
	return snapppay.StatusResult{}, nil
}

func attemptedOrder() *model.Order {
	return &model.Order{
		ID:                1,
		UserID:            7,
		TotalPrice:        255000,
		Status:            model.OrderStatusAttempted,
		ZarinpalAuthority: "A-0001",
		PaymentMethod:     model.PaymentMethodZarinpal,
		CartSession:       "cart-session-1",
		Items: []model.OrderItem{
			{ID: 10, OrderID: 1, ProductID: 3, SizeID: 5, Quantity: 2, Price: 100000},
		},
	}
}

func TestVerifyZarinpalConfirmsExactlyOnce(t *testing.T) {
	store := &orderStoreStub{order: attemptedOrder()}
	stock := &stockRecorder{}
	carts := &cartRecorder{}
	zp := &zarinpalStub{refID: 777}

	svc := NewPaymentService(store, stock, carts, zp, &snappPayStub{}, 75000)

	order, err := svc.VerifyZarinpal(context.Background(), "A-0001", "OK")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDone, order.Status)
	assert.Equal(t, int64(777), order.ZarinpalRefID)
	assert.Equal(t, 1, stock.decrements)
	assert.Equal(t, []string{"cart-session-1"}, carts.cleared)
	assert.Equal(t, []string{paymentLogSuccess}, store.logStatuses())

	// Revisited callback: the order is already DO, nothing runs again.
	again, err := svc.VerifyZarinpal(context.Background(), "A-0001", "OK")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDone, again.Status)
	assert.Equal(t, 1, stock.decrements)
	assert.Len(t, carts.cleared, 1)
	assert.Equal(t, 1, zp.verifies)
	assert.Len(t, store.logs, 1)
}

func TestVerifyZarinpalFailedCallback(t *testing.T) {
	store := &orderStoreStub{order: attemptedOrder()}
	stock := &stockRecorder{}
	carts := &cartRecorder{}

	svc := NewPaymentService(store, stock, carts, &zarinpalStub{}, &snappPayStub{}, 75000)

	order, err := svc.VerifyZarinpal(context.Background(), "A-0001", "NOK")
	require.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, model.OrderStatusAttempted, order.Status)
	assert.Equal(t, model.OrderStatusAttempted, store.order.Status)
	assert.Zero(t, stock.decrements)
	assert.Empty(t, carts.cleared)
	assert.Equal(t, []string{paymentLogFailed}, store.logStatuses())
}

func snappPayOrder() *model.Order {
	order := attemptedOrder()
	order.ZarinpalAuthority = ""
	order.PaymentMethod = model.PaymentMethodSnappPay
	order.SnappPayPaymentToken = "ptoken-1"
	return order
}

func TestVerifySnappPayConfirmsExactlyOnce(t *testing.T) {
	store := &orderStoreStub{order: snappPayOrder()}
	stock := &stockRecorder{}
	carts := &cartRecorder{}
	sp := &snappPayStub{
		verifyResult: snapppay.TxResult{Successful: true, TransactionID: "tx-42"},
		settleResult: snapppay.TxResult{Successful: true, TransactionID: "tx-42"},
	}

	svc := NewPaymentService(store, stock, carts, &zarinpalStub{}, sp, 75000)

	order, err := svc.VerifySnappPay(context.Background(), "ptoken-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDone, order.Status)
	assert.Equal(t, "tx-42", order.SnappPayTransactionID)
	assert.Equal(t, 1, stock.decrements)
	assert.Equal(t, []string{"cart-session-1"}, carts.cleared)

	// A second redirect short-circuits on DO before touching the gateway.
	again, err := svc.VerifySnappPay(context.Background(), "ptoken-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDone, again.Status)
	assert.Equal(t, 1, sp.settles)
	assert.Equal(t, 1, stock.decrements)
}

func TestVerifySnappPaySettleMismatchKeepsOrderUnpaid(t *testing.T) {
	store := &orderStoreStub{order: snappPayOrder()}
	stock := &stockRecorder{}
	carts := &cartRecorder{}
	sp := &snappPayStub{
		verifyResult: snapppay.TxResult{Successful: true, TransactionID: "tx-42"},
		settleResult: snapppay.TxResult{Successful: true, TransactionID: "tx-99"},
	}

	svc := NewPaymentService(store, stock, carts, &zarinpalStub{}, sp, 75000)

	order, err := svc.VerifySnappPay(context.Background(), "ptoken-1")
	require.ErrorIs(t, err, ErrGatewaySettle)
	assert.Equal(t, model.OrderStatusAttempted, order.Status)
	assert.Equal(t, model.OrderStatusAttempted, store.order.Status)
	assert.Zero(t, stock.decrements)
	assert.Empty(t, carts.cleared)
	assert.Equal(t, []string{paymentLogFailed}, store.logStatuses())
}

func TestCancelSnappPayRestoresStockOnlyWhenPaid(t *testing.T) {
	paid := snappPayOrder()
	paid.Status = model.OrderStatusDone
	store := &orderStoreStub{order: paid}
	stock := &stockRecorder{}
	sp := &snappPayStub{}

	svc := NewPaymentService(store, stock, &cartRecorder{}, &zarinpalStub{}, sp, 75000)

	order, err := svc.CancelSnappPay(context.Background(), "ptoken-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSnappPayCancel, order.Status)
	assert.Equal(t, 1, stock.restores)

	// Cancelling an unpaid order changes status without giving stock back.
	store = &orderStoreStub{order: snappPayOrder()}
	stock = &stockRecorder{}
	svc = NewPaymentService(store, stock, &cartRecorder{}, &zarinpalStub{}, sp, 75000)

	order, err = svc.CancelSnappPay(context.Background(), "ptoken-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSnappPayCancel, order.Status)
	assert.Zero(t, stock.restores)
}
