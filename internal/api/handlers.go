package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"softshell.com/assistant-service/internal/core"
	"softshell.com/assistant-service/internal/site"
)

type APIHandler struct {
	chatService    *core.ChatService
	contactService *core.ContactService
	themeService   *core.ThemeService
}

func NewAPIHandler(cs *core.ChatService, contact *core.ContactService, theme *core.ThemeService) *APIHandler {
	return &APIHandler{
		chatService:    cs,
		contactService: contact,
		themeService:   theme,
	}
}

func (h *APIHandler) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	conv := h.chatService.CreateConversation()
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(conv)
}

func (h *APIHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.chatService.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			http.Error(w, "Conversation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting conversation %s: %v", conversationID, err)
		http.Error(w, "Failed to get conversation", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(conv)
}

func (h *APIHandler) OpenConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.chatService.OpenConversation(conversationID)
	if err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			http.Error(w, "Conversation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error opening conversation %s: %v", conversationID, err)
		http.Error(w, "Failed to open conversation", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(conv)
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.chatService.Submit(r.Context(), conversationID, req.Content)
	if err != nil {
		h.writeSubmitError(w, conversationID, err)
		return
	}
	json.NewEncoder(w).Encode(reply)
}

type SelectSuggestionRequest struct {
	Question string `json:"question"`
}

func (h *APIHandler) SelectSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req SelectSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.chatService.SelectSuggestion(r.Context(), conversationID, req.Question)
	if err != nil {
		h.writeSubmitError(w, conversationID, err)
		return
	}
	json.NewEncoder(w).Encode(reply)
}

func (h *APIHandler) writeSubmitError(w http.ResponseWriter, conversationID string, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		http.Error(w, "Message content cannot be empty", http.StatusBadRequest)
	case errors.Is(err, core.ErrConversationBusy):
		http.Error(w, "A response is already being generated", http.StatusConflict)
	case errors.Is(err, core.ErrConversationNotFound):
		http.Error(w, "Conversation not found", http.StatusNotFound)
	default:
		log.Printf("Error submitting message for conversation %s: %v", conversationID, err)
		http.Error(w, "Failed to submit message", http.StatusInternalServerError)
	}
}

type ContactResponse struct {
	Errors map[string]string `json:"errors,omitempty"`
}

func (h *APIHandler) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var req core.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	submission, fieldErrors, err := h.contactService.SubmitContact(req)
	if err != nil {
		log.Printf("Error storing contact submission from %s: %v", req.Email, err)
		http.Error(w, "Failed to store submission", http.StatusInternalServerError)
		return
	}
	if len(fieldErrors) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ContactResponse{Errors: fieldErrors})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submission)
}

func (h *APIHandler) ListContactSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.contactService.ListSubmissions()
	if err != nil {
		log.Printf("Error listing contact submissions: %v", err)
		http.Error(w, "Failed to list submissions", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(submissions)
}

type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}

func (h *APIHandler) GetThemeHandler(w http.ResponseWriter, r *http.Request) {
	dark, err := h.themeService.DarkMode()
	if err != nil {
		log.Printf("Error reading theme preference: %v", err)
		http.Error(w, "Failed to read theme preference", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(ThemeResponse{DarkMode: dark})
}

func (h *APIHandler) PutThemeHandler(w http.ResponseWriter, r *http.Request) {
	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.themeService.SetDarkMode(req.DarkMode); err != nil {
		log.Printf("Error saving theme preference: %v", err)
		http.Error(w, "Failed to save theme preference", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(req)
}

func (h *APIHandler) HowItWorksHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(site.HowItWorksSteps)
}

func (h *APIHandler) WhyChooseUsHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(site.WhyChooseUsReasons)
}

func (h *APIHandler) TestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(site.Testimonials)
}
