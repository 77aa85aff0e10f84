package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
)

// state is the in-memory dataset behind the mock backend. One mutex guards
// everything; each request holds it for the duration of its handler, which
// keeps order creation atomic with respect to stock.
type state struct {
	mu sync.Mutex

	users      map[int64]*user
	tokens     map[string]int64 // token -> user id
	categories map[int64]*domain.Category
	products   map[int64]*product
	orders     map[int64]*order

	nextUserID     int64
	nextCategoryID int64
	nextProductID  int64
	nextOrderID    int64
}

type user struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
}

type product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    int64
	StockQuantity int
	ImageURL      string
	OwnerID       int64
	CreatedAt     time.Time
}

type order struct {
	ID            int64
	CustomerEmail string
	Items         []orderItem
	TotalAmount   decimal.Decimal
	Status        string
	CreatedAt     time.Time
}

type orderItem struct {
	ID        int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal // unit price at order time
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func newState() *state {
	return &state{
		users:      make(map[int64]*user),
		tokens:     make(map[string]int64),
		categories: make(map[int64]*domain.Category),
		products:   make(map[int64]*product),
		orders:     make(map[int64]*order),
	}
}

// renderProduct joins a product with its category and owner the way the
// backend serializer does.
func (s *state) renderProduct(p *product) domain.Product {
	out := domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
	}
	if cat, ok := s.categories[p.CategoryID]; ok {
		c := *cat
		out.Category = &c
	}
	if owner, ok := s.users[p.OwnerID]; ok {
		out.Owner = &domain.User{ID: owner.ID, Username: owner.Username}
	}
	return out
}

func (s *state) renderOrder(o *order) domain.Order {
	out := domain.Order{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Items:         make([]domain.OrderItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		item := domain.OrderItem{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductPrice: it.Price,
			Quantity:     it.Quantity,
			Subtotal:     it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		if p, ok := s.products[it.ProductID]; ok {
			item.ProductName = p.Name
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func (s *state) userByUsername(username string) *user {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

func (s *state) userByEmail(email string) *user {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			return u
		}
	}
	return nil
}

// slugify turns a category name into its URL-safe slug.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
