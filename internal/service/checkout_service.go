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
	"github.com/Rasouli77/ellenovastyle/pkg/utils"
)

var (
	ErrPaymentMethod = errors.New("unknown payment method")
	ErrNotEligible   = errors.New("order not eligible for installments")
)

// tomanToRial converts shop prices to the unit both gateways bill in.
func tomanToRial(toman int) int {
	return toman * 10
}

// gatewayMobile rewrites a local 09xxxxxxxxx number to +989xxxxxxxxx.
func gatewayMobile(mobile string) string {
	if len(mobile) > 1 && mobile[0] == '0' {
		return "+98" + mobile[1:]
	}
	return mobile
}

// CheckoutService turns a cart into an order and hands the shopper to a
// gateway. The order and its lines are persisted as FA before any gateway
// call, so a crashed redirect never loses the attempt.
type CheckoutService struct {
	cartService     *CartService
	discountService *DiscountService
	orderDao        *dao.OrderDao
	zp              *zarinpal.Client
	sp              *snapppay.Client
	shippingFee     int
}

func NewCheckoutService(cartService *CartService, discountService *DiscountService, orderDao *dao.OrderDao, zp *zarinpal.Client, sp *snapppay.Client, shippingFee int) *CheckoutService {
	return &CheckoutService{
		cartService:     cartService,
		discountService: discountService,
		orderDao:        orderDao,
		zp:              zp,
		sp:              sp,
		shippingFee:     shippingFee,
	}
}

// CheckoutInput is the confirmed checkout form.
type CheckoutInput struct {
	UserID        int64
	Session       string
	PaymentMethod string
	DiscountCode  string
	Name          string
	Mobile        string
	Address       string
	CityID        *int64
	OrderName     string
}

// CheckoutResult carries the created order and the gateway redirect.
type CheckoutResult struct {
	Order       *model.Order `json:"order"`
	RedirectURL string       `json:"redirect_url"`
}

// PlaceOrder materializes the cart, prices the order, persists it as FA and
// starts the chosen gateway's payment.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.PaymentMethod != model.PaymentMethodZarinpal && input.PaymentMethod != model.PaymentMethodSnappPay {
		return nil, ErrPaymentMethod
	}

	lines, _, err := s.cartService.Materialize(ctx, input.Session)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// Checkout prices from the add-time snapshots; the live total Materialize
	// returns is for cart display only.
	cartTotal := 0
	for _, line := range lines {
		cartTotal += line.Entry.Subtotal()
	}

	discount, reduction, err := s.discountService.EvaluateAtCheckout(ctx, input.DiscountCode, cartTotal)
	if err != nil {
		return nil, err
	}
	orderTotal := cartTotal - reduction + s.shippingFee

	order := &model.Order{
		UserID:        input.UserID,
		TotalPrice:    orderTotal,
		Status:        model.OrderStatusAttempted,
		OrderUserName: input.Name,
		OrderMobile:   input.Mobile,
		OrderAddress:  input.Address,
		OrderCityID:   input.CityID,
		OrderName:     input.OrderName,
		PaymentMethod: input.PaymentMethod,
		OrderDiscount: reduction,
		CartSession:   input.Session,
	}
	if discount != nil {
		order.OrderDiscountCode = discount.Code
	}

	items := make([]*model.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := &model.OrderItem{
			ProductID: line.Entry.ProductID,
			SizeID:    line.Entry.SizeID,
			Quantity:  line.Entry.Quantity,
			Price:     line.Entry.Price,
		}
		if discount != nil {
			item.ItemDiscount = discount.LineDiscount(line.Entry.Price, line.Entry.Quantity)
		}
		items = append(items, item)
	}

	if err := s.orderDao.CreateOrderWithItems(ctx, order, items); err != nil {
		return nil, err
	}
	order.Items = make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, *item)
	}

	switch input.PaymentMethod {
	case model.PaymentMethodZarinpal:
		return s.startZarinpal(ctx, order)
	default:
		return s.startSnappPay(ctx, order, lines, cartTotal)
	}
}

func (s *CheckoutService) startZarinpal(ctx context.Context, order *model.Order) (*CheckoutResult, error) {
	description := fmt.Sprintf("پرداخت سفارش %d", order.ID)
	authority, err := s.zp.RequestPayment(ctx, tomanToRial(order.TotalPrice), description)
	if err != nil {
		logger.Error("zarinpal payment request failed", "order_id", order.ID, "error", err)
		return nil, err
	}
	if err := s.orderDao.UpdateFields(ctx, order.ID, map[string]interface{}{
		"zarinpal_authority": authority,
	}); err != nil {
		return nil, err
	}
	order.ZarinpalAuthority = authority
	return &CheckoutResult{Order: order, RedirectURL: s.zp.StartPayURL(authority)}, nil
}

func (s *CheckoutService) startSnappPay(ctx context.Context, order *model.Order, lines []Line, cartTotal int) (*CheckoutResult, error) {
	bearer, err := s.sp.Token(ctx)
	if err != nil {
		logger.Error("snapppay token failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	info, err := s.sp.Eligible(ctx, bearer, tomanToRial(order.TotalPrice))
	if err != nil {
		return nil, err
	}
	if !info.Eligible {
		return nil, ErrNotEligible
	}

	request := snapppay.TokenRequest{
		Amount:               tomanToRial(order.TotalPrice),
		CartList:             []snapppay.CartRecord{s.buildCartRecord(order.ID, lines, cartTotal)},
		DiscountAmount:       tomanToRial(order.OrderDiscount),
		ExternalSourceAmount: 0,
		Mobile:               gatewayMobile(order.OrderMobile),
		PaymentMethodTypeDto: "INSTALLMENT",
		ReturnURL:            s.sp.ReturnURL(),
		TransactionID:        utils.RandomTransactionID(),
	}
	paymentToken, pageURL, err := s.sp.PaymentToken(ctx, bearer, request)
	if err != nil {
		logger.Error("snapppay payment token failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	if err := s.orderDao.UpdateFields(ctx, order.ID, map[string]interface{}{
		"snapppay_payment_token": paymentToken,
	}); err != nil {
		return nil, err
	}
	order.SnappPayPaymentToken = paymentToken
	return &CheckoutResult{Order: order, RedirectURL: pageURL}, nil
}

// buildCartRecord renders the order lines the way the installment gateway
// wants them; shipping is included and everything is Rial.
func (s *CheckoutService) buildCartRecord(cartID int64, lines []Line, cartTotal int) snapppay.CartRecord {
	items := make([]snapppay.CartItem, 0, len(lines))
	for _, line := range lines {
		category := "تابلو"
		if line.Product.CategoryID != nil {
			category = fmt.Sprintf("category-%d", *line.Product.CategoryID)
		}
		items = append(items, snapppay.CartItem{
			ID:             line.Entry.SizeID,
			Amount:         tomanToRial(line.Entry.Price),
			Category:       category,
			Count:          line.Entry.Quantity,
			Name:           line.Product.Title,
			CommissionType: "100",
		})
	}
	return snapppay.CartRecord{
		CartID:             cartID,
		CartItems:          items,
		IsShipmentIncluded: true,
		IsTaxIncluded:      false,
		ShippingAmount:     tomanToRial(s.shippingFee),
		TaxAmount:          0,
		TotalAmount:        tomanToRial(cartTotal + s.shippingFee),
	}
}

// InstallmentOffer previews SnappPay eligibility for the current cart total,
// shown next to the payment options before checkout.
func (s *CheckoutService) InstallmentOffer(ctx context.Context, cartTotal int) (*snapppay.EligibleInfo, error) {
	bearer, err := s.sp.Token(ctx)
	if err != nil {
		return nil, err
	}
	info, err := s.sp.Eligible(ctx, bearer, tomanToRial(cartTotal+s.shippingFee))
	if err != nil {
		return nil, err
	}
	return &info, nil
}
