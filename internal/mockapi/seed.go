package mockapi

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"shophub-client/internal/domain"
)

type productSeed struct {
	Name          string
	Description   string
	Price         string
	Category      string
	StockQuantity int
	ImageURL      string
}

// seed inserts demo data for manual testing: one demo account plus the
// sample catalog.
func (s *state) seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.nextUserID++
	demo := &user{ID: s.nextUserID, Username: "demo", Email: "demo@example.com", PasswordHash: hash}
	s.users[demo.ID] = demo

	categories := []string{
		"Electronics",
		"Clothing",
		"Books",
		"Home & Garden",
		"Sports & Outdoors",
	}
	byName := make(map[string]int64)
	for _, name := range categories {
		s.nextCategoryID++
		s.categories[s.nextCategoryID] = &domain.Category{
			ID:   s.nextCategoryID,
			Name: name,
			Slug: slugify(name),
		}
		byName[name] = s.nextCategoryID
	}

	products := []productSeed{
		{
			Name:          "Wireless Bluetooth Headphones",
			Description:   "High-quality wireless headphones with noise cancellation",
			Price:         "79.99",
			Category:      "Electronics",
			StockQuantity: 50,
			ImageURL:      "https://example.com/images/headphones.jpg",
		},
		{
			Name:          "Cotton T-Shirt",
			Description:   "Comfortable 100% cotton t-shirt available in multiple colors",
			Price:         "19.99",
			Category:      "Clothing",
			StockQuantity: 200,
			ImageURL:      "https://example.com/images/tshirt.jpg",
		},
		{
			Name:          "Python Programming Guide",
			Description:   "Comprehensive guide to Python programming for beginners",
			Price:         "34.99",
			Category:      "Books",
			StockQuantity: 75,
			ImageURL:      "https://example.com/images/python-book.jpg",
		},
		{
			Name:          "Indoor Plant Pot Set",
			Description:   "Set of 3 ceramic plant pots with drainage holes",
			Price:         "45.50",
			Category:      "Home & Garden",
			StockQuantity: 30,
			ImageURL:      "https://example.com/images/plant-pots.jpg",
		},
		{
			Name:          "Yoga Mat",
			Description:   "Non-slip exercise mat for yoga and fitness",
			Price:         "29.99",
			Category:      "Sports & Outdoors",
			StockQuantity: 0,
			ImageURL:      "https://example.com/images/yoga-mat.jpg",
		},
	}

	now := time.Now().UTC()
	for i, in := range products {
		price, err := decimal.NewFromString(in.Price)
		if err != nil {
			return err
		}
		s.nextProductID++
		s.products[s.nextProductID] = &product{
			ID:            s.nextProductID,
			Name:          in.Name,
			Description:   in.Description,
			Price:         price,
			CategoryID:    byName[in.Category],
			StockQuantity: in.StockQuantity,
			ImageURL:      in.ImageURL,
			OwnerID:       demo.ID,
			CreatedAt:     now.Add(time.Duration(i) * time.Second),
		}
	}
	return nil
}
