package rest

import (
	"github.com/beyondeth/shop/internal/adapters/notifier"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

// PageRecorder считает отрендеренные страницы по представлению.
type PageRecorder interface {
	PageRendered(page, view string)
}

// ComponentTree - сессии, чьи хуки и ленты уничтожаются при рендере страницы.
type ComponentTree interface {
	Teardown(sessionID string)
}

// NotificationStream - источник SSE-событий сессии.
type NotificationStream interface {
	AddClient(sessionID string) notifier.ClientChannel
	RemoveClient(sessionID string, ch notifier.ClientChannel)
	Done() <-chan struct{}
}

// HandlersDeps - все use case'ы и вспомогательные зависимости обработчиков.
type HandlersDeps struct {
	ProductPage     usecases_port.GetProductPageUseCasePort
	ResolveProduct  usecases_port.ResolveProductByIDUseCasePort
	CollectionPage  usecases_port.GetCollectionPageUseCasePort
	ShopPage        usecases_port.GetShopPageUseCasePort
	CheckoutSuccess usecases_port.GetCheckoutSuccessPageUseCasePort
	ProfilePage     usecases_port.GetProfilePageUseCasePort

	OrderHistory usecases_port.OrderHistoryUseCasePort
	Reviews      usecases_port.ListProductReviewsUseCasePort

	Checkout     usecases_port.CheckoutUseCasePort
	UpdateMember usecases_port.UpdateMemberUseCasePort
	CreateReview usecases_port.CreateReviewUseCasePort

	Sessions      ComponentTree
	Notifications NotificationStream
	Validator     BodyValidator
	Pages         PageRecorder
}

// Handlers - обработчики страниц и API витрины.
type Handlers struct {
	productPage     usecases_port.GetProductPageUseCasePort
	resolveProduct  usecases_port.ResolveProductByIDUseCasePort
	collectionPage  usecases_port.GetCollectionPageUseCasePort
	shopPage        usecases_port.GetShopPageUseCasePort
	checkoutSuccess usecases_port.GetCheckoutSuccessPageUseCasePort
	profilePage     usecases_port.GetProfilePageUseCasePort

	orderHistory usecases_port.OrderHistoryUseCasePort
	reviews      usecases_port.ListProductReviewsUseCasePort

	checkout     usecases_port.CheckoutUseCasePort
	updateMember usecases_port.UpdateMemberUseCasePort
	createReview usecases_port.CreateReviewUseCasePort

	sessions      ComponentTree
	notifications NotificationStream
	validator     BodyValidator
	pages         PageRecorder
}

func NewHandlers(deps HandlersDeps) *Handlers {
	return &Handlers{
		productPage:     deps.ProductPage,
		resolveProduct:  deps.ResolveProduct,
		collectionPage:  deps.CollectionPage,
		shopPage:        deps.ShopPage,
		checkoutSuccess: deps.CheckoutSuccess,
		profilePage:     deps.ProfilePage,
		orderHistory:    deps.OrderHistory,
		reviews:         deps.Reviews,
		checkout:        deps.Checkout,
		updateMember:    deps.UpdateMember,
		createReview:    deps.CreateReview,
		sessions:        deps.Sessions,
		notifications:   deps.Notifications,
		validator:       deps.Validator,
		pages:           deps.Pages,
	}
}
