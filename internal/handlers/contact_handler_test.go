package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattencreative/studio-backend/internal/models"
)

type fakeContactStore struct {
	contacts  []*models.Contact
	createErr error
}

func (f *fakeContactStore) Create(contact *models.Contact) error {
	if f.createErr != nil {
		return f.createErr
	}
	contact.ID = "contact-1"
	f.contacts = append(f.contacts, contact)
	return nil
}

func (f *fakeContactStore) List(limit, offset int) ([]models.Contact, error) {
	out := make([]models.Contact, 0, len(f.contacts))
	for _, c := range f.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func setupContactRouter(store *fakeContactStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewContactHandler(store, noopActivity{}, testLogger())
	router := gin.New()
	router.POST("/api/v1/contact", handler.CreateContact)
	return router
}

func TestCreateContactEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &fakeContactStore{}
		router := setupContactRouter(store)

		w := postJSON(router, "/api/v1/contact", map[string]string{
			"name":    "Jane Smith",
			"email":   "jane@example.com",
			"subject": "Project inquiry",
			"message": "I'd like to talk about a redesign.",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"success": true}`, w.Body.String())
		require.Len(t, store.contacts, 1)
		assert.Equal(t, "jane@example.com", store.contacts[0].Email)
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		router := setupContactRouter(&fakeContactStore{})

		w := postJSON(router, "/api/v1/contact", map[string]string{
			"name":  "Jane Smith",
			"email": "jane@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name, email, and message are required")
	})

	t.Run("Store Failure", func(t *testing.T) {
		router := setupContactRouter(&fakeContactStore{createErr: assert.AnError})

		w := postJSON(router, "/api/v1/contact", map[string]string{
			"name":    "Jane Smith",
			"email":   "jane@example.com",
			"message": "Hello there.",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed to send message")
	})
}
