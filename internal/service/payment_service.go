package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rasouli77/ellenovastyle/internal/client/snapppay"
	"github.com/Rasouli77/ellenovastyle/internal/client/zarinpal"
	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrPaymentFailed = errors.New("payment failed")
	ErrGatewaySettle = errors.New("settle failed")
	ErrGatewayCancel = errors.New("cancel failed")
	ErrGatewayUpdate = errors.New("update failed")
)

const (
	paymentLogSuccess = "successful"
	paymentLogFailed  = "failed"
)

// orderStore is the slice of the order DAO the payment flows use.
type orderStore interface {
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetByAuthority(ctx context.Context, authority string) (*model.Order, error)
	GetBySnappPayToken(ctx context.Context, paymentToken string) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID int64) ([]*model.Order, error)
	TransitionStatus(ctx context.Context, orderID int64, fromStatus, toStatus string) error
	SetStatus(ctx context.Context, orderID int64, status string) error
	UpdateFields(ctx context.Context, orderID int64, updates map[string]interface{}) error
	ReduceItemQuantity(ctx context.Context, itemID int64, newQuantity int) error
	CreatePaymentLog(ctx context.Context, log *model.PaymentLog) error
}

type zarinpalGateway interface {
	VerifyPayment(ctx context.Context, amountRial int, authority string) (int64, error)
}

type snappPayGateway interface {
	Token(ctx context.Context) (string, error)
	Verify(ctx context.Context, bearer, paymentToken string) (snapppay.TxResult, error)
	Settle(ctx context.Context, bearer, paymentToken string) (snapppay.TxResult, error)
	Cancel(ctx context.Context, bearer, paymentToken string) (snapppay.TxResult, error)
	Update(ctx context.Context, bearer string, request snapppay.UpdateRequest) (snapppay.TxResult, error)
	PaymentStatus(ctx context.Context, bearer, paymentToken string) (snapppay.StatusResult, error)
}

type stockAdjuster interface {
	DecrementForOrder(ctx context.Context, order *model.Order) error
	RestoreForOrder(ctx context.Context, order *model.Order) error
	RestoreQuantity(ctx context.Context, sizeID int64, quantity int) error
}

type cartClearer interface {
	Clear(ctx context.Context, session string) error
}

// PaymentService handles the gateway callbacks. Confirmation is exactly-once:
// the FA -> DO transition is a conditional UPDATE, and stock decrement, cart
// clearing and the payment log only run on the attempt that wins it.
type PaymentService struct {
	orderDao     orderStore
	stockService stockAdjuster
	cartService  cartClearer
	zp           zarinpalGateway
	sp           snappPayGateway
	shippingFee  int
}

func NewPaymentService(orderDao orderStore, stockService stockAdjuster, cartService cartClearer, zp zarinpalGateway, sp snappPayGateway, shippingFee int) *PaymentService {
	return &PaymentService{
		orderDao:     orderDao,
		stockService: stockService,
		cartService:  cartService,
		zp:           zp,
		sp:           sp,
		shippingFee:  shippingFee,
	}
}

// VerifyZarinpal handles the bank's redirect back. A non-OK status leaves the
// order FA and records the failure; an OK status confirms the order once and
// then verifies with the gateway to obtain the reference id.
func (s *PaymentService) VerifyZarinpal(ctx context.Context, authority, status string) (*model.Order, error) {
	order, err := s.orderDao.GetByAuthority(ctx, authority)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if status != "OK" {
		s.logPayment(ctx, order, paymentLogFailed, fmt.Sprintf("callback status %s", status))
		return order, ErrPaymentFailed
	}

	err = s.orderDao.TransitionStatus(ctx, order.ID, model.OrderStatusAttempted, model.OrderStatusDone)
	if errors.Is(err, dao.ErrOrderStatusChanged) {
		// Revisited callback; everything already ran.
		return s.orderDao.GetOrderByID(ctx, order.ID)
	}
	if err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusDone

	s.confirmSideEffects(ctx, order)

	refID, err := s.zp.VerifyPayment(ctx, tomanToRial(order.TotalPrice), authority)
	if err != nil {
		var codeErr *zarinpal.CodeError
		if errors.As(err, &codeErr) {
			s.logPayment(ctx, order, paymentLogFailed, codeErr.Error())
		}
		logger.Error("zarinpal verify failed", "order_id", order.ID, "error", err)
		return order, nil
	}
	if err := s.orderDao.UpdateFields(ctx, order.ID, map[string]interface{}{
		"zarinpal_ref_id": refID,
	}); err != nil {
		return nil, err
	}
	order.ZarinpalRefID = refID
	s.logPayment(ctx, order, paymentLogSuccess, "")
	return order, nil
}

// VerifySnappPay handles the installment gateway's redirect back: verify the
// payment, settle it, then confirm the order. A settle answering with a
// different transaction id than verify is treated as a failed payment.
func (s *PaymentService) VerifySnappPay(ctx context.Context, paymentToken string) (*model.Order, error) {
	order, err := s.orderDao.GetBySnappPayToken(ctx, paymentToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status == model.OrderStatusDone {
		return order, nil
	}

	bearer, err := s.sp.Token(ctx)
	if err != nil {
		return nil, err
	}

	verify, err := s.sp.Verify(ctx, bearer, paymentToken)
	if err != nil {
		// Verify unreachable: fall back to the status inquiry so the shopper
		// at least sees where the payment stands.
		logger.Error("snapppay verify failed", "order_id", order.ID, "error", err)
		if status, serr := s.sp.PaymentStatus(ctx, bearer, paymentToken); serr == nil {
			logger.Info("snapppay payment status",
				"order_id", order.ID, "status", status.Status, "successful", status.Successful)
		}
		return nil, err
	}
	if !verify.Successful {
		s.logPayment(ctx, order, paymentLogFailed, "verify unsuccessful")
		return order, ErrPaymentFailed
	}
	if err := s.orderDao.UpdateFields(ctx, order.ID, map[string]interface{}{
		"snapppay_transaction_id": verify.TransactionID,
	}); err != nil {
		return nil, err
	}
	order.SnappPayTransactionID = verify.TransactionID

	settle, err := s.sp.Settle(ctx, bearer, paymentToken)
	if err != nil {
		logger.Error("snapppay settle failed", "order_id", order.ID, "error", err)
		return nil, err
	}
	if !settle.Successful || settle.TransactionID != order.SnappPayTransactionID {
		s.logPayment(ctx, order, paymentLogFailed, "settle transaction mismatch")
		return order, ErrGatewaySettle
	}

	err = s.orderDao.TransitionStatus(ctx, order.ID, model.OrderStatusAttempted, model.OrderStatusDone)
	if errors.Is(err, dao.ErrOrderStatusChanged) {
		return s.orderDao.GetOrderByID(ctx, order.ID)
	}
	if err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusDone

	s.confirmSideEffects(ctx, order)
	s.logPayment(ctx, order, paymentLogSuccess, "")
	return order, nil
}

// CancelSnappPay voids an installment payment. A paid order moving to SC gets
// its stock back; an unpaid one just changes status.
func (s *PaymentService) CancelSnappPay(ctx context.Context, paymentToken string) (*model.Order, error) {
	order, err := s.orderDao.GetBySnappPayToken(ctx, paymentToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	bearer, err := s.sp.Token(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.sp.Cancel(ctx, bearer, paymentToken)
	if err != nil {
		logger.Error("snapppay cancel failed", "order_id", order.ID, "error", err)
		return nil, err
	}
	if !result.Successful {
		return order, ErrGatewayCancel
	}

	err = s.orderDao.TransitionStatus(ctx, order.ID, model.OrderStatusDone, model.OrderStatusSnappPayCancel)
	if err == nil {
		if rerr := s.stockService.RestoreForOrder(ctx, order); rerr != nil {
			logger.Error("stock restore after cancel failed", "order_id", order.ID, "error", rerr)
		}
		order.Status = model.OrderStatusSnappPayCancel
		return order, nil
	}
	if !errors.Is(err, dao.ErrOrderStatusChanged) {
		return nil, err
	}

	// Not paid yet; no stock was taken.
	err = s.orderDao.TransitionStatus(ctx, order.ID, model.OrderStatusAttempted, model.OrderStatusSnappPayCancel)
	if err != nil && !errors.Is(err, dao.ErrOrderStatusChanged) {
		return nil, err
	}
	order.Status = model.OrderStatusSnappPayCancel
	return order, nil
}

// UpdateSnappPay shrinks one line of a paid installment order, returns the
// freed stock, reprices the order and pushes the revision to the gateway.
func (s *PaymentService) UpdateSnappPay(ctx context.Context, orderID, itemID int64, newQuantity int) (*model.Order, error) {
	order, err := s.orderDao.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentMethod != model.PaymentMethodSnappPay || order.SnappPayPaymentToken == "" {
		return nil, ErrPaymentMethod
	}

	var target *model.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			target = &order.Items[i]
			break
		}
	}
	if target == nil || newQuantity < 0 || newQuantity >= target.Quantity {
		return nil, ErrGatewayUpdate
	}

	freed := target.Quantity - newQuantity
	if err := s.orderDao.ReduceItemQuantity(ctx, itemID, newQuantity); err != nil {
		return nil, err
	}
	if err := s.stockService.RestoreQuantity(ctx, target.SizeID, freed); err != nil {
		logger.Error("stock restore after update failed", "order_id", order.ID, "error", err)
	}

	order, err = s.orderDao.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	itemsTotal := 0
	discountTotal := 0
	for _, item := range order.Items {
		if item.Quantity == 0 {
			continue
		}
		itemsTotal += item.Price * item.Quantity
		discountTotal += item.ItemDiscount
	}
	newTotal := itemsTotal - discountTotal + s.shippingFee
	if err := s.orderDao.UpdateFields(ctx, orderID, map[string]interface{}{
		"total_price":    newTotal,
		"order_discount": discountTotal,
	}); err != nil {
		return nil, err
	}
	order.TotalPrice = newTotal
	order.OrderDiscount = discountTotal

	bearer, err := s.sp.Token(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.sp.Update(ctx, bearer, snapppay.UpdateRequest{
		Amount:               tomanToRial(newTotal),
		CartList:             []snapppay.CartRecord{s.cartRecordFromOrder(order, itemsTotal)},
		DiscountAmount:       tomanToRial(discountTotal),
		ExternalSourceAmount: 0,
		PaymentMethodTypeDto: "INSTALLMENT",
		PaymentToken:         order.SnappPayPaymentToken,
	})
	if err != nil {
		logger.Error("snapppay update failed", "order_id", order.ID, "error", err)
		return nil, err
	}
	if !result.Successful {
		return order, ErrGatewayUpdate
	}

	if err := s.orderDao.SetStatus(ctx, orderID, model.OrderStatusSnappPayUpdated); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusSnappPayUpdated
	return order, nil
}

// cartRecordFromOrder rebuilds the gateway cart from persisted order lines.
func (s *PaymentService) cartRecordFromOrder(order *model.Order, itemsTotal int) snapppay.CartRecord {
	items := make([]snapppay.CartItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity == 0 {
			continue
		}
		items = append(items, snapppay.CartItem{
			ID:             item.SizeID,
			Amount:         tomanToRial(item.Price),
			Category:       "تابلو",
			Count:          item.Quantity,
			Name:           fmt.Sprintf("order-item-%d", item.ID),
			CommissionType: "100",
		})
	}
	return snapppay.CartRecord{
		CartID:             order.ID,
		CartItems:          items,
		IsShipmentIncluded: true,
		IsTaxIncluded:      false,
		ShippingAmount:     tomanToRial(s.shippingFee),
		TaxAmount:          0,
		TotalAmount:        tomanToRial(itemsTotal + s.shippingFee),
	}
}

// confirmSideEffects runs once per order, guarded by the FA -> DO transition:
// decrement stock for every line and clear the originating cart.
func (s *PaymentService) confirmSideEffects(ctx context.Context, order *model.Order) {
	if err := s.stockService.DecrementForOrder(ctx, order); err != nil {
		// Oversold: the payment is confirmed, the shortfall is a support case.
		logger.Error("stock decrement after payment failed", "order_id", order.ID, "error", err)
	}
	if order.CartSession != "" {
		if err := s.cartService.Clear(ctx, order.CartSession); err != nil {
			logger.Warn("cart clear after payment failed", "order_id", order.ID, "error", err)
		}
	}
}

func (s *PaymentService) logPayment(ctx context.Context, order *model.Order, status, errorCode string) {
	entry := &model.PaymentLog{
		Amount:    order.TotalPrice,
		UserID:    order.UserID,
		OrderID:   order.ID,
		Status:    status,
		ErrorCode: errorCode,
	}
	if err := s.orderDao.CreatePaymentLog(ctx, entry); err != nil {
		logger.Error("payment log write failed", "order_id", order.ID, "error", err)
	}
}

// GetUserOrders lists a shopper's orders for the account page.
func (s *PaymentService) GetUserOrders(ctx context.Context, userID int64) ([]*model.Order, error) {
	return s.orderDao.GetUserOrders(ctx, userID)
}

// GetOrderForUser fetches one order, refusing access across accounts.
func (s *PaymentService) GetOrderForUser(ctx context.Context, orderID, userID int64, isStaff bool) (*model.Order, error) {
	order, err := s.orderDao.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID && !isStaff {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

var ErrOrderForbidden = errors.New("order belongs to another user")
