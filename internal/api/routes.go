package api

import "github.com/go-chi/chi/v5"

// Handlers groups every HTTP handler the server mounts.
type Handlers struct {
	Auth  *AuthHandler
	Board *BoardHandler
	Tasks *TaskHandler
	Admin *AdminHandler
}

// Mount registers all routes on r. Session resolution must already be in
// r's middleware stack; authorization happens inside each handler.
func (h Handlers) Mount(r chi.Router) {
	r.Get("/", h.Board.Root)
	r.Get("/health", h.Board.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Get("/board", h.Board.Board)
	r.Get("/dashboard", h.Board.Dashboard)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/options", h.Board.FormOptions)
		r.Post("/", h.Tasks.Create)
		r.Get("/{id}", h.Tasks.Get)
		r.Put("/{id}", h.Tasks.Update)
		r.Delete("/{id}", h.Tasks.Delete)
		r.Post("/{id}/move", h.Tasks.Move)
		r.Post("/{id}/toggle", h.Tasks.Toggle)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.Admin.View)
		r.Delete("/users/{id}", h.Admin.DeleteUser)
		r.Delete("/tasks/{id}", h.Admin.DeleteTask)
		r.Post("/buckets", h.Admin.CreateBucket)
		r.Put("/buckets/{id}", h.Admin.UpdateBucket)
	})
}
