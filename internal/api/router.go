package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Chat widget routes
		r.Post("/conversations", apiHandler.CreateConversationHandler)
		r.Get("/conversations/{conversationID}", apiHandler.GetConversationHandler)
		r.Post("/conversations/{conversationID}/open", apiHandler.OpenConversationHandler)
		r.Post("/conversations/{conversationID}/messages", apiHandler.PostMessageHandler)
		r.Post("/conversations/{conversationID}/suggestions", apiHandler.SelectSuggestionHandler)

		// Contact form routes
		r.Post("/contact", apiHandler.SubmitContactHandler)
		r.Get("/contact/submissions", apiHandler.ListContactSubmissionsHandler)

		// Theme preference routes
		r.Get("/theme", apiHandler.GetThemeHandler)
		r.Put("/theme", apiHandler.PutThemeHandler)

		// Marketing content routes
		r.Get("/content/how-it-works", apiHandler.HowItWorksHandler)
		r.Get("/content/why-choose-us", apiHandler.WhyChooseUsHandler)
		r.Get("/content/testimonials", apiHandler.TestimonialsHandler)
	})

	return r
}
