package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/service"
	"github.com/lalitbansal40/shopify-backend/internal/shopify"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalog struct {
	gotSearch string
	gotHandle string
	gotPage   int
	gotLimit  int

	productList    *service.ProductList
	collectionList *service.CollectionProductList
	err            error
}

func (s *stubCatalog) ListProducts(ctx context.Context, search string, page, limit int) (*service.ProductList, error) {
	s.gotSearch, s.gotPage, s.gotLimit = search, page, limit
	return s.productList, s.err
}

func (s *stubCatalog) ListCollectionProducts(ctx context.Context, handle, search string, page, limit int) (*service.CollectionProductList, error) {
	s.gotHandle, s.gotSearch, s.gotPage, s.gotLimit = handle, search, page, limit
	return s.collectionList, s.err
}

type stubAuth struct {
	gotEmail    string
	gotCustomer shopify.NewCustomer

	token    string
	customer json.RawMessage
	err      error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (string, error) {
	s.gotEmail = email
	return s.token, s.err
}

func (s *stubAuth) Signup(ctx context.Context, customer shopify.NewCustomer) (json.RawMessage, error) {
	s.gotCustomer = customer
	return s.customer, s.err
}

func (s *stubAuth) RecoveryLink() string {
	return "https://demo.myshopify.com/account/recover"
}

func performRequest(handler gin.HandlerFunc, method, route, target, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, route, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestHandleProductList_Envelope(t *testing.T) {
	stub := &stubCatalog{productList: &service.ProductList{
		Items:       []json.RawMessage{json.RawMessage(`{"id":"p1"}`), json.RawMessage(`{"id":"p2"}`)},
		CurrentPage: 2,
		Limit:       2,
		Total:       9,
		HasNextPage: true,
	}}
	handler := HandleProductList(stub, zap.NewNop())

	w := performRequest(handler, http.MethodGet, "/api/productList", "/api/productList?page=2&limit=2&search=shirt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if stub.gotSearch != "shirt" || stub.gotPage != 2 || stub.gotLimit != 2 {
		t.Errorf("params not forwarded: search=%q page=%d limit=%d", stub.gotSearch, stub.gotPage, stub.gotLimit)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["total"] != float64(9) || body["hasNextPage"] != true {
		t.Errorf("unexpected envelope: %v", body)
	}
	if items, ok := body["data"].([]interface{}); !ok || len(items) != 2 {
		t.Errorf("unexpected data: %v", body["data"])
	}
}

func TestHandleProductList_ParamDefaults(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing", "/api/productList"},
		{"non-numeric", "/api/productList?page=abc&limit=xyz"},
		{"below one", "/api/productList?page=0&limit=-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCatalog{productList: &service.ProductList{Items: []json.RawMessage{}}}
			w := performRequest(HandleProductList(stub, zap.NewNop()), http.MethodGet, "/api/productList", tt.target, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if stub.gotPage != 1 || stub.gotLimit != 20 {
				t.Errorf("expected defaults 1/20, got %d/%d", stub.gotPage, stub.gotLimit)
			}
		})
	}
}

func TestHandleProductList_UpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"upstream 503 forwarded", &apperrors.ErrUpstream{Status: 503, Message: "down"}, 503},
		{"upstream 429 becomes 502", &apperrors.ErrUpstream{Status: 429, Message: "throttled"}, 502},
		{"network failure", &apperrors.ErrUpstream{Message: "dial tcp: refused"}, 500},
		{"plain error", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCatalog{err: tt.err}
			w := performRequest(HandleProductList(stub, zap.NewNop()), http.MethodGet, "/api/productList", "/api/productList", "")
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeBody(t, w)
			if body["error"] != "Failed to fetch paginated products" {
				t.Errorf("unexpected error body: %v", body)
			}
		})
	}
}

func TestHandleProductListByCollection_Envelope(t *testing.T) {
	stub := &stubCatalog{collectionList: &service.CollectionProductList{
		Items:           []json.RawMessage{json.RawMessage(`{"id":"p1"}`)},
		CollectionID:    "gid://shopify/Collection/42",
		CollectionTitle: "Summer",
		CurrentPage:     1,
		Limit:           20,
		Total:           1,
	}}
	handler := HandleProductListByCollection(stub, zap.NewNop())

	w := performRequest(handler, http.MethodGet, "/api/productListByCollection/:collectionHandle", "/api/productListByCollection/summer", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.gotHandle != "summer" {
		t.Errorf("handle = %q", stub.gotHandle)
	}

	body := decodeBody(t, w)
	if body["collectionId"] != "gid://shopify/Collection/42" || body["collectionTitle"] != "Summer" {
		t.Errorf("collection metadata missing: %v", body)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	stub := &stubAuth{token: "signed-jwt"}
	w := performRequest(HandleLogin(stub, zap.NewNop()), http.MethodPost, "/api/login", "/api/login",
		`{"email":"jane@example.com","password":"hunter22"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if stub.gotEmail != "jane@example.com" {
		t.Errorf("email = %q", stub.gotEmail)
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	if data["token"] != "signed-jwt" {
		t.Errorf("token = %v", data["token"])
	}
}

func TestHandleLogin_ValidationStopsBeforeService(t *testing.T) {
	stub := &stubAuth{}
	w := performRequest(HandleLogin(stub, zap.NewNop()), http.MethodPost, "/api/login", "/api/login",
		`{"email":"jane@example.com","password":"abc"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.gotEmail != "" {
		t.Error("service should not be called on validation failure")
	}
	body := decodeBody(t, w)
	if body["message"] != "Password must be at least 6 characters long" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestHandleLogin_BadJSON(t *testing.T) {
	w := performRequest(HandleLogin(&stubAuth{}, zap.NewNop()), http.MethodPost, "/api/login", "/api/login", `{"email":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestHandleLogin_WrongCredentials(t *testing.T) {
	stub := &stubAuth{err: &apperrors.ErrUpstreamUser{Errors: []apperrors.UserError{
		{Field: []string{"input", "password"}, Message: "Unidentified customer"},
	}}}
	w := performRequest(HandleLogin(stub, zap.NewNop()), http.MethodPost, "/api/login", "/api/login",
		`{"email":"jane@example.com","password":"hunter22"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	errs := body["errors"].([]interface{})
	first := errs[0].(map[string]interface{})
	if first["message"] != "Unidentified customer" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestHandleSignup_Success(t *testing.T) {
	stub := &stubAuth{customer: json.RawMessage(`{"id":7,"email":"jane@example.com"}`)}
	w := performRequest(HandleSignup(stub, zap.NewNop()), http.MethodPost, "/api/signup", "/api/signup",
		`{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","phone":"+15551234567",
		  "verified_email":true,"password":"hunter22","password_confirmation":"hunter22"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if stub.gotCustomer.Email != "jane@example.com" || !stub.gotCustomer.VerifiedEmail {
		t.Errorf("customer payload not forwarded: %+v", stub.gotCustomer)
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	customer := data["customer"].(map[string]interface{})
	if customer["id"] != float64(7) {
		t.Errorf("unexpected customer: %v", customer)
	}
}

func TestHandleSignup_CollectsAllValidationErrors(t *testing.T) {
	stub := &stubAuth{}
	w := performRequest(HandleSignup(stub, zap.NewNop()), http.MethodPost, "/api/signup", "/api/signup",
		`{"last_name":"Doe","email":"not-an-email","phone":"+15551234567",
		  "verified_email":true,"password":"hunter22","password_confirmation":"different"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.gotCustomer.Email != "" {
		t.Error("service should not be called on validation failure")
	}

	body := decodeBody(t, w)
	raw := body["errors"].([]interface{})
	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		msgs = append(msgs, m.(string))
	}
	for _, want := range []string{
		"first_name is required",
		"Invalid email format",
		"password_confirmation does not match password",
	} {
		found := false
		for _, m := range msgs {
			if m == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %q in %v", want, msgs)
		}
	}
}

func TestHandleForgotPassword(t *testing.T) {
	w := performRequest(HandleForgotPassword(&stubAuth{}), http.MethodGet, "/api/forgotPassword", "/api/forgotPassword", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	if data["link"] != "https://demo.myshopify.com/account/recover" {
		t.Errorf("link = %v", data["link"])
	}
}
