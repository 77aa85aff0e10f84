package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shophub-client/internal/domain"
)

func listCategoriesHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		data.mu.Lock()
		defer data.mu.Unlock()

		out := make([]domain.Category, 0, len(data.categories))
		for _, cat := range data.categories {
			out = append(out, *cat)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		c.JSON(http.StatusOK, out)
	}
}

func getCategoryHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		data.mu.Lock()
		defer data.mu.Unlock()

		cat, ok := data.categories[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusOK, *cat)
	}
}

func createCategoryHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		slug := slugify(name)
		for _, cat := range data.categories {
			if cat.Slug == slug {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "A category with this name already exists."})
				return
			}
		}

		data.nextCategoryID++
		cat := &domain.Category{ID: data.nextCategoryID, Name: name, Slug: slug}
		data.categories[cat.ID] = cat
		c.JSON(http.StatusCreated, *cat)
	}
}
