package document

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.DocumentRenderer{
		RendererURL:     serverURL,
		RendererAPIKey:  "test-key",
		RendererTimeout: 5 * time.Second,
	})
}

func TestRenderDocument(t *testing.T) {
	order := models.Order{ID: 7, CustomerName: "Szabó János", Status: "Kész"}

	t.Run("успешный рендеринг", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/render", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req renderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "invoice", req.DocumentType)
			assert.Equal(t, "Kovács Béla", req.RequestedBy)
			assert.Equal(t, 7, req.Order.ID)

			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		pdf, err := newTestClient(server.URL).RenderDocument(context.Background(), order, "invoice", "Kovács Béla")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), pdf)
	})

	t.Run("ошибка рендеринга", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		pdf, err := newTestClient(server.URL).RenderDocument(context.Background(), order, "invoice", "Kovács Béla")
		assert.Error(t, err)
		assert.Nil(t, pdf)
	})

	t.Run("сервис недоступен", func(t *testing.T) {
		pdf, err := newTestClient("http://127.0.0.1:1").RenderDocument(context.Background(), order, "invoice", "Kovács Béla")
		assert.Error(t, err)
		assert.Nil(t, pdf)
	})
}

func TestIsKnownType(t *testing.T) {
	assert.True(t, IsKnownType(TypeInvoice))
	assert.True(t, IsKnownType(TypeOffer))
	assert.True(t, IsKnownType(TypeHandout))
	assert.True(t, IsKnownType(TypeWorksheet))
	assert.False(t, IsKnownType("passport"))
	assert.False(t, IsKnownType(""))
}

func TestFileName(t *testing.T) {
	order := models.Order{ID: 7, CustomerName: "Szabó János"}
	assert.Equal(t, "invoice_7_Szabó_János.pdf", FileName(order, TypeInvoice))
}
