package router

import (
	"oec/internal/handlers/auth"
	"oec/internal/handlers/booking"
	"oec/internal/handlers/content"
	"oec/internal/handlers/employee"
	"oec/internal/handlers/facility"
	"oec/internal/handlers/notification"
	"oec/internal/handlers/post"
	"oec/internal/handlers/pricing"
	"oec/internal/handlers/store"
	"oec/internal/handlers/upload"
	"oec/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Facility     facility.Handler
	Pricing      pricing.Handler
	Booking      booking.Handler
	Notification notification.Handler
	Store        store.Handler
	Upload       upload.Handler
	Employee     employee.Handler
	Content      content.Handler
	Post         post.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Facility.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Store.Router(routerGroup)
		r.DomainHandlers.Upload.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Content.Router(routerGroup)
		r.DomainHandlers.Post.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
