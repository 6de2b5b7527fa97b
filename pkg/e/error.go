package e

// Error codes. User-facing messages are Persian, the storefront's language.
const (
	SUCCESS        = 0
	ERROR          = 1
	INVALID_PARAMS = 2

	ERROR_AUTH_CHECK_TOKEN_FAIL    = 10001
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT = 10002
	ERROR_AUTH_TOKEN               = 10003
	ERROR_AUTH                     = 10004
	ERROR_FORBIDDEN                = 10005
	ERROR_OTP_EXPIRED              = 10006
	ERROR_OTP_WRONG                = 10007

	ERROR_USER_NOT_EXISTS    = 20001
	ERROR_PROFILE_NOT_EXISTS = 20002

	ERROR_PRODUCT_NOT_EXISTS = 30001
	ERROR_STOCK_NOT_ENOUGH   = 30002
	ERROR_SIZE_NOT_EXISTS    = 30003

	ERROR_ORDER_NOT_EXISTS      = 40001
	ERROR_ORDER_STATUS_CHANGED  = 40002
	ERROR_ORDER_FORBIDDEN       = 40003
	ERROR_CART_EMPTY            = 40004
	ERROR_PAYMENT_METHOD        = 40005

	ERROR_DISCOUNT_INVALID = 50001

	ERROR_GATEWAY              = 60001
	ERROR_GATEWAY_NOT_ELIGIBLE = 60002
	ERROR_GATEWAY_SETTLE       = 60003
	ERROR_GATEWAY_VERIFY       = 60004
	ERROR_GATEWAY_CANCEL       = 60005
	ERROR_GATEWAY_UPDATE       = 60006
	ERROR_PAYMENT_FAILED       = 60007

	ERROR_BLOG_NOT_EXISTS = 70001
)

var MsgFlags = map[int]string{
	SUCCESS:        "موفق",
	ERROR:          "خطایی رخ داده است",
	INVALID_PARAMS: "پارامترهای درخواست نامعتبر است",

	ERROR_AUTH_CHECK_TOKEN_FAIL:    "اعتبارسنجی توکن ناموفق بود",
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT: "توکن منقضی شده است",
	ERROR_AUTH_TOKEN:               "ساخت توکن ناموفق بود",
	ERROR_AUTH:                     "احراز هویت ناموفق بود",
	ERROR_FORBIDDEN:                "فاقد اجازه دسترسی",
	ERROR_OTP_EXPIRED:              "کد ارسالی منقضی شده، لطفا دوباره تلاش کنید.",
	ERROR_OTP_WRONG:                "کد وارد شده اشتباه است.",

	ERROR_USER_NOT_EXISTS:    "کاربر یافت نشد",
	ERROR_PROFILE_NOT_EXISTS: "حساب کاربری یافت نشد",

	ERROR_PRODUCT_NOT_EXISTS: "محصول یافت نشد",
	ERROR_STOCK_NOT_ENOUGH:   "موجودی کافی نیست",
	ERROR_SIZE_NOT_EXISTS:    "سایز محصول یافت نشد",

	ERROR_ORDER_NOT_EXISTS:     "هیچ سفارشی یافت نشد.",
	ERROR_ORDER_STATUS_CHANGED: "وضعیت سفارش تغییر کرده است",
	ERROR_ORDER_FORBIDDEN:      "شما اجازه دسترسی به این سفارش را ندارید.",
	ERROR_CART_EMPTY:           "سبد خرید خالی است",
	ERROR_PAYMENT_METHOD:       "روش پرداخت معتبر نیست.",

	ERROR_DISCOUNT_INVALID: "کد تخفیف معتبر نیست یا شرایط استفاده از آن رعایت نشده است.",

	ERROR_GATEWAY:              "مشکلی در پاسخ درگاه پرداخت وجود دارد.",
	ERROR_GATEWAY_NOT_ELIGIBLE: "امکان خرید اقساطی برای این سفارش وجود ندارد.",
	ERROR_GATEWAY_SETTLE:       "مشکلی در نهایی کردن پرداخت پیش آمده.",
	ERROR_GATEWAY_VERIFY:       "پاسخ اسنپ پی موفقیت آمیز نبود.",
	ERROR_GATEWAY_CANCEL:       "خطایی در پاسخ اسنپ پی وجود دارد.",
	ERROR_GATEWAY_UPDATE:       "خطایی در پاسخ اسنپ پی وجود دارد.",
	ERROR_PAYMENT_FAILED:       "پرداخت با خطا مواجه شد",

	ERROR_BLOG_NOT_EXISTS: "نوشته یافت نشد",
}

func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}
	return MsgFlags[ERROR]
}
