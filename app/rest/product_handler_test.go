package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercatto/inventory-service/app/apperr"
	"github.com/mercatto/inventory-service/app/products"
)

// --- Mock service ---

type mockProductService struct {
	listFn           func() ([]products.ProductView, error)
	getFn            func(id uint) (products.ProductView, error)
	listByCategoryFn func(categoryID uint) ([]products.ProductView, error)
	searchFn         func(fragment string) ([]products.ProductView, error)
	lowStockFn       func(threshold int) ([]products.ProductView, error)
	createFn         func(input products.ProductInput) (products.ProductView, error)
	updateFn         func(id uint, input products.ProductInput) (products.ProductView, error)
	deleteFn         func(id uint) error
}

func (m *mockProductService) List() ([]products.ProductView, error) {
	return m.listFn()
}

func (m *mockProductService) Get(id uint) (products.ProductView, error) {
	return m.getFn(id)
}

func (m *mockProductService) ListByCategory(categoryID uint) ([]products.ProductView, error) {
	return m.listByCategoryFn(categoryID)
}

func (m *mockProductService) SearchByName(fragment string) ([]products.ProductView, error) {
	return m.searchFn(fragment)
}

func (m *mockProductService) ListLowStock(threshold int) ([]products.ProductView, error) {
	return m.lowStockFn(threshold)
}

func (m *mockProductService) Create(input products.ProductInput) (products.ProductView, error) {
	return m.createFn(input)
}

func (m *mockProductService) Update(id uint, input products.ProductInput) (products.ProductView, error) {
	return m.updateFn(id, input)
}

func (m *mockProductService) Delete(id uint) error {
	return m.deleteFn(id)
}

func newProductRouter(svc ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProductHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestListDispatch(t *testing.T) {
	laptop := products.ProductView{ID: 1, Name: "Laptop", CategoryID: 1, CategoryName: "Electronics"}

	t.Run("categoryId filter wins", func(t *testing.T) {
		var gotCategoryID uint
		svc := &mockProductService{
			listByCategoryFn: func(categoryID uint) ([]products.ProductView, error) {
				gotCategoryID = categoryID
				return []products.ProductView{laptop}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodGet, "/products?categoryId=7&search=laptop", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(7), gotCategoryID)
	})

	t.Run("search filter", func(t *testing.T) {
		var gotFragment string
		svc := &mockProductService{
			searchFn: func(fragment string) ([]products.ProductView, error) {
				gotFragment = fragment
				return []products.ProductView{laptop}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodGet, "/products?search=laptop", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "laptop", gotFragment)
	})

	t.Run("blank search lists everything", func(t *testing.T) {
		listed := false
		svc := &mockProductService{
			listFn: func() ([]products.ProductView, error) {
				listed = true
				return []products.ProductView{}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodGet, "/products?search=%20%20", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, listed)
	})

	t.Run("invalid categoryId is 400", func(t *testing.T) {
		rec := doRequest(newProductRouter(&mockProductService{}), http.MethodGet, "/products?categoryId=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListLowStockThreshold(t *testing.T) {
	t.Run("default threshold is 10", func(t *testing.T) {
		var gotThreshold int
		svc := &mockProductService{
			lowStockFn: func(threshold int) ([]products.ProductView, error) {
				gotThreshold = threshold
				return []products.ProductView{}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodGet, "/products/low-stock", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, gotThreshold)
	})

	t.Run("explicit threshold", func(t *testing.T) {
		var gotThreshold int
		svc := &mockProductService{
			lowStockFn: func(threshold int) ([]products.ProductView, error) {
				gotThreshold = threshold
				return []products.ProductView{}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodGet, "/products/low-stock?threshold=3", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, gotThreshold)
	})

	t.Run("non-numeric threshold is 400", func(t *testing.T) {
		rec := doRequest(newProductRouter(&mockProductService{}), http.MethodGet, "/products/low-stock?threshold=lots", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &mockProductService{
			createFn: func(input products.ProductInput) (products.ProductView, error) {
				assert.Equal(t, "Laptop", input.Name)
				assert.Equal(t, "999.99", input.Price.String())
				assert.Equal(t, 10, input.Stock)
				assert.Equal(t, uint(1), input.CategoryID)
				return products.ProductView{ID: 1, Name: "Laptop", Price: 999.99, CategoryName: "Electronics"}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodPost, "/products",
			`{"name":"Laptop","price":999.99,"stock":10,"categoryId":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var view products.ProductView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, "Electronics", view.CategoryName)
	})

	t.Run("missing category is 404", func(t *testing.T) {
		svc := &mockProductService{
			createFn: func(input products.ProductInput) (products.ProductView, error) {
				return products.ProductView{}, apperr.NotFound("Category", input.CategoryID)
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodPost, "/products",
			`{"name":"Laptop","price":999.99,"stock":10,"categoryId":42}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Category not found with id: 42")
	})

	t.Run("missing categoryId is a violation", func(t *testing.T) {
		rec := doRequest(newProductRouter(&mockProductService{}), http.MethodPost, "/products",
			`{"name":"Laptop","price":999.99,"stock":10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"categoryId"`)
	})

	t.Run("negative price is a violation", func(t *testing.T) {
		rec := doRequest(newProductRouter(&mockProductService{}), http.MethodPost, "/products",
			`{"name":"Laptop","price":-1,"stock":10,"categoryId":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"price"`)
	})

	t.Run("negative stock is a violation", func(t *testing.T) {
		rec := doRequest(newProductRouter(&mockProductService{}), http.MethodPost, "/products",
			`{"name":"Laptop","price":1,"stock":-2,"categoryId":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"stock"`)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &mockProductService{
			updateFn: func(id uint, input products.ProductInput) (products.ProductView, error) {
				assert.Equal(t, uint(1), id)
				assert.Equal(t, "899.99", input.Price.String())
				return products.ProductView{ID: 1, Name: "Laptop", Price: 899.99}, nil
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodPut, "/products/1",
			`{"name":"Laptop","price":899.99,"stock":10,"categoryId":1}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing product is 404", func(t *testing.T) {
		svc := &mockProductService{
			updateFn: func(id uint, input products.ProductInput) (products.ProductView, error) {
				return products.ProductView{}, apperr.NotFound("Product", id)
			},
		}
		rec := doRequest(newProductRouter(svc), http.MethodPut, "/products/42",
			`{"name":"Laptop","price":1,"stock":1,"categoryId":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("ok is 204", func(t *testing.T) {
		svc := &mockProductService{
			deleteFn: func(id uint) error { return nil },
		}
		rec := doRequest(newProductRouter(svc), http.MethodDelete, "/products/1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing is 404", func(t *testing.T) {
		svc := &mockProductService{
			deleteFn: func(id uint) error { return apperr.NotFound("Product", id) },
		}
		rec := doRequest(newProductRouter(svc), http.MethodDelete, "/products/42", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
