package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
)

type productRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id" binding:"required"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

func listProductsHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Product, 0, len(data.products))
		for _, p := range data.products {
			if matchesQuery(data, p, c) {
				out = append(out, data.renderProduct(p))
			}
		}
		sortProducts(out, c.Query("ordering"))
		c.JSON(http.StatusOK, out)
	}
}

// matchesQuery applies search, category and price bound filters. Unparsable
// price bounds are ignored rather than rejected.
func matchesQuery(data *state, p *product, c *gin.Context) bool {
	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		name := strings.ToLower(p.Name)
		catName := ""
		if cat, ok := data.categories[p.CategoryID]; ok {
			catName = strings.ToLower(cat.Name)
		}
		if !strings.Contains(name, search) && !strings.Contains(catName, search) {
			return false
		}
	}
	if slug := c.Query("category"); slug != "" {
		cat, ok := data.categories[p.CategoryID]
		if !ok || cat.Slug != slug {
			return false
		}
	}
	if raw := c.Query("price_min"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil && p.Price.LessThan(min) {
			return false
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil && p.Price.GreaterThan(max) {
			return false
		}
	}
	return true
}

// sortProducts orders the list by one of the whitelisted fields. Anything
// else falls back to newest-first, the backend default.
func sortProducts(products []domain.Product, ordering string) {
	field := strings.TrimPrefix(ordering, "-")
	desc := strings.HasPrefix(ordering, "-")
	switch field {
	case "price", "name", "created_at":
	default:
		field, desc = "created_at", true
	}

	sort.SliceStable(products, func(i, j int) bool {
		var less bool
		switch field {
		case "price":
			less = products[i].Price.LessThan(products[j].Price)
		case "name":
			less = products[i].Name < products[j].Name
		default:
			less = products[i].CreatedAt.Before(products[j].CreatedAt)
		}
		if desc {
			return !less && !productEqual(products[i], products[j], field)
		}
		return less
	})
}

func productEqual(a, b domain.Product, field string) bool {
	switch field {
	case "price":
		return a.Price.Equal(b.Price)
	case "name":
		return a.Name == b.Name
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

func productsByCategoryHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Query("slug")
		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Product, 0)
		for _, p := range data.products {
			if slug != "" {
				cat, ok := data.categories[p.CategoryID]
				if !ok || cat.Slug != slug {
					continue
				}
			}
			out = append(out, data.renderProduct(p))
		}
		sortProducts(out, "")
		c.JSON(http.StatusOK, out)
	}
}

func lowStockHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := 10
		if raw := c.Query("threshold"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				threshold = v
			}
		}
		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Product, 0)
		for _, p := range data.products {
			if p.StockQuantity > 0 && p.StockQuantity <= threshold {
				out = append(out, data.renderProduct(p))
			}
		}
		sortProducts(out, "")
		c.JSON(http.StatusOK, out)
	}
}

func outOfStockHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Product, 0)
		for _, p := range data.products {
			if p.StockQuantity == 0 {
				out = append(out, data.renderProduct(p))
			}
		}
		sortProducts(out, "")
		c.JSON(http.StatusOK, out)
	}
}

func getProductHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		data.mu.Lock()
		defer data.mu.Unlock()

		p, ok := data.products[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusOK, data.renderProduct(p))
	}
}

func checkAvailabilityHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}

		var req struct {
			Quantity *int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a valid number"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		p, ok := data.products[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		available := p.StockQuantity >= quantity
		message := "Available"
		if !available {
			message = "Insufficient stock"
		}
		c.JSON(http.StatusOK, gin.H{
			"product":            p.Name,
			"requested_quantity": quantity,
			"available_stock":    p.StockQuantity,
			"is_available":       available,
			"message":            message,
		})
	}
}

func createProductHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
			return
		}
		if req.Price.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Price must be greater than 0."})
			return
		}
		if req.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Stock quantity cannot be negative."})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		if _, ok := data.categories[req.CategoryID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid category."})
			return
		}

		data.nextProductID++
		p := &product{
			ID:            data.nextProductID,
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			CategoryID:    req.CategoryID,
			StockQuantity: req.StockQuantity,
			ImageURL:      req.ImageURL,
			OwnerID:       currentUser(c).ID,
			CreatedAt:     nowUTC(),
		}
		data.products[p.ID] = p
		c.JSON(http.StatusCreated, data.renderProduct(p))
	}
}

func updateProductHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		p, ok := data.products[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if p.OwnerID != currentUser(c).ID {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		if _, ok := data.categories[req.CategoryID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid category."})
			return
		}

		p.Name = req.Name
		p.Description = req.Description
		p.Price = req.Price
		p.CategoryID = req.CategoryID
		p.StockQuantity = req.StockQuantity
		p.ImageURL = req.ImageURL
		c.JSON(http.StatusOK, data.renderProduct(p))
	}
}

func deleteProductHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		data.mu.Lock()
		defer data.mu.Unlock()

		p, ok := data.products[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if p.OwnerID != currentUser(c).ID {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		delete(data.products, id)
		c.Status(http.StatusNoContent)
	}
}
