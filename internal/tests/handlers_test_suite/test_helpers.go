package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	api "github.com/inventory-suite/product-catalog/internal/http"
	handler "github.com/inventory-suite/product-catalog/internal/http/handlers"
	"github.com/inventory-suite/product-catalog/internal/models"
	"github.com/inventory-suite/product-catalog/internal/repo"
)

var (
	adminToken  string
	clientToken string
	productRepo *repo.InMemoryProductRepository
)

func init() {
	setupTestRepos("secret1", "secret2")
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin", "secret1")
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	clientToken, err = generateToken(r, "client", "secret2")
	if err != nil {
		panic(fmt.Sprintf("error generating client token: %v", err))
	}
}

func setupTestRepos(adminPassword, clientPassword string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	adminHash, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(adminHash),
		Role:         "admin",
	})

	clientHash, _ := bcrypt.GenerateFromPassword([]byte(clientPassword), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "client",
		PasswordHash: string(clientHash),
		Role:         "client",
	})
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, target, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", adminToken, p)
}

func updateProduct(r http.Handler, id int, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPut, fmt.Sprintf("/products/%d", id), adminToken, p)
}

func getHistory(r http.Handler, id int) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d/history", id), adminToken, nil)
}

func listProducts(r http.Handler, query string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodGet, "/products"+query, adminToken, nil)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importCSV(r http.Handler, csvContent string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvContent, "products.csv")

	req := httptest.NewRequest(http.MethodPost, "/products/import", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func exportCSV(r http.Handler) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodGet, "/products/export", adminToken, nil)
}

func seedProduct(name, category string, stock int) models.Product {
	p, err := productRepo.Create(models.Product{Name: name, Category: category, Stock: stock})
	if err != nil {
		panic(fmt.Sprintf("error seeding product %q: %v", name, err))
	}
	return p
}
