package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/ports"
)

type stubProductService struct {
	addFn    func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, update ports.ProductUpdate) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error)
}

func (s *stubProductService) Add(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.addFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, update ports.ProductUpdate) (*domain.Product, error) {
	return s.updateFn(ctx, id, update)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	return s.listFn(ctx, input)
}

func TestProductHandler_List_EmptyPage(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(_ context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
			if input.Page != 2 || input.Limit != 5 {
				t.Fatalf("unexpected pagination: %d/%d", input.Page, input.Limit)
			}
			return &ports.ListProductsResult{Total: 3, Page: 2, Limit: 5, Products: nil}, nil
		},
	}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(3) || resp["page"] != float64(2) || resp["limit"] != float64(5) {
		t.Fatalf("unexpected meta: %+v", resp)
	}
	products, ok := resp["products"].([]any)
	if !ok {
		t.Fatalf("products must be an array even when empty, got %T", resp["products"])
	}
	if len(products) != 0 {
		t.Fatalf("expected empty products, got %d", len(products))
	}
}

func TestProductHandler_List_PassesSearchParams(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(_ context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
			if input.Name != "lap" || input.Category != "elec" {
				t.Fatalf("unexpected search params: %q %q", input.Name, input.Category)
			}
			return &ports.ListProductsResult{Page: 1, Limit: 10}, nil
		},
	}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products?name=lap&category=elec", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		addFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			return &domain.Product{ID: "p1", Name: input.Name, Category: input.Category, Price: input.Price}, nil
		},
	}
	handler := NewProductHandler(stub)

	body := strings.NewReader(`{"name":"Laptop","category":"Electronics","price":999.99}`)
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Product added" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		addFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)

	body := strings.NewReader(`{"name":"Laptop","price":-5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, update ports.ProductUpdate) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if update.Price == nil || *update.Price != 49.5 {
				t.Fatalf("expected price update, got %+v", update)
			}
			if update.Name != nil || update.Category != nil {
				t.Fatalf("absent fields must stay nil: %+v", update)
			}
			return &domain.Product{ID: id, Price: 49.5}, nil
		},
	}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", strings.NewReader(`{"price":49.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, update ports.ProductUpdate) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/products/missing", strings.NewReader(`{"price":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Update(c); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound passthrough, got %v", err)
	}
}

func TestProductHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Product deleted" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
