// Package document реализует клиента внешнего сервиса генерации документов.
//
// Сервис рендерит PDF из данных заказа; этот пакет только собирает запрос
// и возвращает готовые байты. Ошибки рендеринга наружу не детализируются.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/repair-orders/internal/config"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Типы документов, которые умеет рендерить внешний сервис.
const (
	TypeInvoice   = "invoice"
	TypeOffer     = "offer"
	TypeHandout   = "kiadni"
	TypeWorksheet = "worksheet"
)

var knownTypes = map[string]struct{}{
	TypeInvoice:   {},
	TypeOffer:     {},
	TypeHandout:   {},
	TypeWorksheet: {},
}

// IsKnownType сообщает, поддерживается ли тип документа.
func IsKnownType(docType string) bool {
	_, ok := knownTypes[docType]
	return ok
}

// Client клиент HTTP API сервиса генерации документов.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт нового клиента по настройкам из конфигурации.
func NewClient(cfg config.DocumentRenderer) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.RendererURL, "/"),
		apiKey:     cfg.RendererAPIKey,
		httpClient: &http.Client{Timeout: cfg.RendererTimeout},
	}
}

type renderRequest struct {
	DocumentType string       `json:"document_type"`
	RequestedBy  string       `json:"requested_by"`
	Order        models.Order `json:"order"`
}

// RenderDocument запрашивает PDF указанного типа для заказа.
// requestedBy — отображаемое имя сотрудника, попадает в шапку документа.
func (c *Client) RenderDocument(ctx context.Context, order models.Order, docType, requestedBy string) ([]byte, error) {
	const op = "document.RenderDocument"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(renderRequest{
		DocumentType: docType,
		RequestedBy:  requestedBy,
		Order:        order,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/render", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(op + ": unexpected status: " + resp.Status)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pdf, nil
}

// FileName собирает имя файла выгрузки для заказа и типа документа.
func FileName(order models.Order, docType string) string {
	name := strings.ReplaceAll(order.CustomerName, " ", "_")
	return fmt.Sprintf("%s_%d_%s.pdf", docType, order.ID, name)
}
