package mockapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
)

type orderRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required"`
	Items         []struct {
		ProductID int64 `json:"product" binding:"required"`
		Quantity  int   `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

// createOrderHandler validates stock for every line, snapshots unit prices,
// decrements stock and stores the order. The state mutex makes the whole
// thing atomic: either all lines commit or none do.
func createOrderHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		// Validate everything before mutating anything.
		for _, line := range req.Items {
			p, ok := data.products[line.ProductID]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product with id %d does not exist", line.ProductID)})
				return
			}
			if line.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
				return
			}
			if p.StockQuantity < line.Quantity {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Insufficient stock for %s. Available: %d", p.Name, p.StockQuantity),
				})
				return
			}
		}

		data.nextOrderID++
		o := &order{
			ID:            data.nextOrderID,
			CustomerEmail: req.CustomerEmail,
			Status:        domain.OrderPending,
			CreatedAt:     nowUTC(),
		}
		total := decimal.Zero
		for i, line := range req.Items {
			p := data.products[line.ProductID]
			p.StockQuantity -= line.Quantity
			item := orderItem{
				ID:        int64(i + 1),
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     p.Price,
			}
			o.Items = append(o.Items, item)
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		o.TotalAmount = total
		data.orders[o.ID] = o

		c.JSON(http.StatusCreated, gin.H{
			"order":   data.renderOrder(o),
			"message": "Order created successfully",
		})
	}
}

func myOrdersHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)

		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Order, 0)
		for _, o := range data.orders {
			if o.CustomerEmail == u.Email {
				out = append(out, data.renderOrder(o))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		c.JSON(http.StatusOK, out)
	}
}

// cancelOrderHandler flips a pending or processing order to cancelled and
// puts the reserved stock back.
func cancelOrderHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		o, ok := data.orders[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		switch o.Status {
		case domain.OrderCancelled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already cancelled"})
			return
		case domain.OrderCompleted:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel completed orders"})
			return
		}

		for _, item := range o.Items {
			if p, ok := data.products[item.ProductID]; ok {
				p.StockQuantity += item.Quantity
			}
		}
		o.Status = domain.OrderCancelled

		c.JSON(http.StatusOK, gin.H{
			"order":   data.renderOrder(o),
			"message": "Order cancelled successfully",
		})
	}
}
