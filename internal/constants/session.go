package constants

// Cookie
const (
	SessionCookie = "shop_session"
	MemberCookie  = "shop_member"
)

const HeaderTraceID = "X-Trace-ID"

// Имена хуков и лент внутри сессии
const (
	MutationCartCheckout = "cart_checkout"
	MutationQuickBuy     = "quick_buy"
	MutationUpdateMember = "update_member"
	MutationCreateReview = "create_review"

	FeedOrderHistory = "order_history"
)

// Тексты уведомлений
const (
	MessageCheckoutFailed     = "Failed to load checkout. Please try again."
	MessageProfileUpdated     = "Profile updated"
	MessageProfileUpdateFail  = "Failed to update profile. Please try again."
	MessageReviewCreateFailed = "Failed to create review. Please try again."
)
