package constants

const EventsExchange = "storefront_events"

// Ключи маршрутизации
const (
	RoutingKeyCheckoutStarted = "storefront.checkout.started"
	RoutingKeyMemberUpdated   = "storefront.member.updated"
	RoutingKeyReviewCreated   = "storefront.review.created"
	RoutingKeyCartCleared     = "storefront.cart.cleared"
)
