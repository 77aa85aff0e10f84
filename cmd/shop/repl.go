package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"shophub-client/internal/api"
	"shophub-client/internal/domain"
	"shophub-client/internal/payment"
	"shophub-client/internal/service/cart"
	"shophub-client/internal/service/catalog"
	"shophub-client/internal/service/checkout"
	"shophub-client/internal/service/prefs"
	"shophub-client/internal/service/session"
	"shophub-client/internal/service/wishlist"
)

// repl is the interactive storefront shell.
type repl struct {
	in  *bufio.Scanner
	out io.Writer

	session  *session.Session
	catalog  *catalog.Catalog
	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	prefs    *prefs.Prefs
	checkout *checkout.Checkout
	api      *api.Client
}

func (r *repl) run(ctx context.Context) {
	fmt.Fprintln(r.out, "ShopHub. Type 'help' for commands.")
	r.printGreeting()

	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd, args := args[0], args[1:]

		if cmd == "quit" || cmd == "exit" {
			return
		}
		if err := r.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *repl) printGreeting() {
	if r.session.IsAuthenticated() {
		fmt.Fprintf(r.out, "Welcome back, %s.\n", r.session.Username())
	}
}

func (r *repl) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		r.printHelp()
		return nil
	case "login":
		return r.cmdLogin(ctx, args)
	case "register":
		return r.cmdRegister(ctx, args)
	case "logout":
		if err := r.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Logged out.")
		return nil
	case "whoami":
		if !r.session.IsAuthenticated() {
			fmt.Fprintln(r.out, "Not logged in.")
			return nil
		}
		fmt.Fprintf(r.out, "Logged in as %s.\n", r.session.Username())
		return nil
	case "products":
		return r.cmdProducts(ctx)
	case "search":
		return r.cmdSearch(ctx, args)
	case "filter":
		return r.cmdFilter(ctx, args)
	case "categories":
		return r.cmdCategories(ctx)
	case "show":
		return r.cmdShow(ctx, args)
	case "stock":
		return r.cmdStock(ctx, args)
	case "cart":
		return r.cmdCart(ctx, args)
	case "wish":
		return r.cmdWish(ctx, args)
	case "theme":
		return r.cmdTheme(ctx, args)
	case "orders":
		return r.cmdOrders(ctx)
	case "checkout":
		return r.cmdCheckout(ctx, args)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `Commands:
  products                       list products with the current filter
  search <text>                  filter by name or category text
  filter [category=<slug>] [min=<price>] [max=<price>] [order=<field>]
  filter clear                   reset filters to the default
  categories                     list categories
  show <id>                      show one product
  stock <id> <qty>               check availability for a quantity
  cart                           show the cart
  cart add <id>                  add one unit of a product
  cart qty <id> <n>              set a line quantity (0 removes)
  cart rm <id>                   remove a line
  cart clear                     empty the cart
  wish                           show the wishlist
  wish <id>                      toggle a product on the wishlist
  wish move <id>                 move a wishlist entry to the cart
  wish rm <id>                   remove a wishlist entry
  wish clear                     empty the wishlist
  login <username>               log in (password prompted)
  register <username> <email>    create an account (password prompted)
  logout | whoami
  orders                         list your orders
  checkout <card|wallet|cash>    place the order and pay
  theme [light|dark|toggle]      show or change the theme
  quit
`)
}

// prompt reads one line after printing label. Returns "" on EOF.
func (r *repl) prompt(label string) string {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return ""
	}
	return strings.TrimSpace(r.in.Text())
}

func (r *repl) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <username>")
	}
	password := r.prompt("password: ")
	if err := r.session.Login(ctx, args[0], password); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Welcome, %s.\n", r.session.Username())
	return nil
}

func (r *repl) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: register <username> <email>")
	}
	password := r.prompt("password: ")
	if err := r.session.Register(ctx, args[0], args[1], password); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Account created. Welcome, %s.\n", r.session.Username())
	return nil
}

func (r *repl) cmdProducts(ctx context.Context) error {
	products, err := r.catalog.Apply(ctx)
	if err != nil {
		return err
	}
	r.printProducts(products)
	return nil
}

func (r *repl) cmdSearch(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	r.catalog.SetFilter(catalog.Patch{Search: &term})
	products, err := r.catalog.Apply(ctx)
	if err != nil {
		return err
	}
	r.printProducts(products)
	return nil
}

func (r *repl) cmdFilter(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		products, err := r.catalog.Load(ctx)
		if err != nil {
			return err
		}
		r.printProducts(products)
		return nil
	}

	var p catalog.Patch
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("bad filter %q, expected key=value", arg)
		}
		v := value
		switch key {
		case "category":
			p.Category = &v
		case "min":
			p.MinPrice = &v
		case "max":
			p.MaxPrice = &v
		case "order":
			p.Ordering = &v
		default:
			return fmt.Errorf("unknown filter key %q", key)
		}
	}
	r.catalog.SetFilter(p)
	products, err := r.catalog.Apply(ctx)
	if err != nil {
		return err
	}
	r.printProducts(products)
	return nil
}

func (r *repl) printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(r.out, "No products found.")
		return
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tSAVED")
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		stock := strconv.Itoa(p.StockQuantity)
		if !p.InStock() {
			stock = "out of stock"
		}
		saved := ""
		if r.wishlist.Contains(p.ID) {
			saved = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Price.StringFixed(2), stock, category, saved)
	}
	w.Flush()
}

func (r *repl) cmdCategories(ctx context.Context) error {
	categories, err := r.catalog.LoadCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(r.out, "%s (%s)\n", c.Name, c.Slug)
	}
	return nil
}

func (r *repl) cmdShow(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}
	p, err := r.api.Product(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s\n%s\n", p.Name, p.Description)
	fmt.Fprintf(r.out, "Price: %s\n", p.Price.StringFixed(2))
	if p.Category != nil {
		fmt.Fprintf(r.out, "Category: %s\n", p.Category.Name)
	}
	if p.InStock() {
		fmt.Fprintf(r.out, "Stock: %d\n", p.StockQuantity)
	} else {
		fmt.Fprintln(r.out, "Out of stock")
	}
	return nil
}

func (r *repl) cmdStock(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: stock <id> <qty>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q", args[0])
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad quantity %q", args[1])
	}
	a, err := r.api.CheckAvailability(ctx, id, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s: %s (requested %d, available %d)\n",
		a.Product, a.Message, a.RequestedQuantity, a.AvailableStock)
	return nil
}

func (r *repl) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return r.printCart()
	}
	switch args[0] {
	case "add":
		id, err := parseID(args[1:], "cart add <id>")
		if err != nil {
			return err
		}
		p, err := r.api.Product(ctx, id)
		if err != nil {
			return err
		}
		if !p.InStock() {
			fmt.Fprintf(r.out, "%s is out of stock.\n", p.Name)
			return nil
		}
		if err := r.cart.Add(ctx, p.ID, p.Name, p.Price); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Added %s. Cart: %d items, total %s.\n",
			p.Name, r.cart.Count(), r.cart.DisplayTotal())
		return nil
	case "qty":
		if len(args) != 3 {
			return errors.New("usage: cart qty <id> <n>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[1])
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		if err := r.cart.UpdateQuantity(ctx, id, qty); err != nil {
			return err
		}
		return r.printCart()
	case "rm":
		id, err := parseID(args[1:], "cart rm <id>")
		if err != nil {
			return err
		}
		if err := r.cart.Remove(ctx, id); err != nil {
			return err
		}
		return r.printCart()
	case "clear":
		if err := r.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Cart cleared.")
		return nil
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (r *repl) printCart() error {
	items := r.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(r.out, "Your cart is empty.")
		return nil
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			it.ProductID, it.Name, it.Price.StringFixed(2), it.Quantity, it.Subtotal().StringFixed(2))
	}
	w.Flush()
	fmt.Fprintf(r.out, "Total: %s\n", r.cart.DisplayTotal())
	return nil
}

func (r *repl) cmdWish(ctx context.Context, args []string) error {
	if len(args) == 0 {
		items := r.wishlist.Items()
		if len(items) == 0 {
			fmt.Fprintln(r.out, "Your wishlist is empty.")
			return nil
		}
		w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
		for _, it := range items {
			category := ""
			if it.Category != nil {
				category = it.Category.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.ProductID, it.Name, it.Price.StringFixed(2), category)
		}
		w.Flush()
		return nil
	}

	switch args[0] {
	case "move":
		id, err := parseID(args[1:], "wish move <id>")
		if err != nil {
			return err
		}
		outcome, err := r.wishlist.MoveToCart(ctx, id)
		if err != nil {
			return err
		}
		if outcome == wishlist.OutOfStock {
			fmt.Fprintln(r.out, "That product is out of stock; it stays on the wishlist.")
			return nil
		}
		fmt.Fprintf(r.out, "Moved to cart. Cart: %d items.\n", r.cart.Count())
		return nil
	case "rm":
		id, err := parseID(args[1:], "wish rm <id>")
		if err != nil {
			return err
		}
		return r.wishlist.Remove(ctx, id)
	case "clear":
		if err := r.wishlist.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Wishlist cleared.")
		return nil
	}

	// Bare id toggles membership.
	id, err := parseID(args, "wish <id>")
	if err != nil {
		return err
	}
	p, err := r.api.Product(ctx, id)
	if err != nil {
		return err
	}
	added, err := r.wishlist.Toggle(ctx, *p)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(r.out, "Saved %s to your wishlist.\n", p.Name)
	} else {
		fmt.Fprintf(r.out, "Removed %s from your wishlist.\n", p.Name)
	}
	return nil
}

func (r *repl) cmdTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Theme: %s\n", r.prefs.Theme())
		return nil
	}
	if args[0] == "toggle" {
		next, err := r.prefs.ToggleTheme(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Theme: %s\n", next)
		return nil
	}
	if err := r.prefs.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Theme: %s\n", args[0])
	return nil
}

func (r *repl) cmdOrders(ctx context.Context) error {
	orders, err := r.api.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(r.out, "No orders yet.")
		return nil
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tITEMS\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			o.ID, o.Status, o.TotalAmount.StringFixed(2), len(o.Items),
			o.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func (r *repl) cmdCheckout(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: checkout <card|wallet|cash>")
	}

	var method payment.Method
	var card *payment.Card
	switch args[0] {
	case "card":
		method = payment.MethodCard
		card = &payment.Card{
			Number:     r.prompt("card number: "),
			Expiry:     r.prompt("expiry (MM/YY): "),
			CVV:        r.prompt("cvv: "),
			HolderName: r.prompt("name on card: "),
		}
	case "wallet":
		method = payment.MethodWallet
	case "cash":
		method = payment.MethodCash
	default:
		return fmt.Errorf("unknown payment method %q", args[0])
	}

	result, err := r.checkout.PlaceOrder(ctx, method, card)
	if err != nil {
		if errors.Is(err, payment.ErrCancelled) {
			fmt.Fprintln(r.out, "Payment cancelled; the order was not placed.")
			return nil
		}
		return err
	}

	fmt.Fprintf(r.out, "Order #%d placed. Paid %s via %s.\n",
		result.Order.ID, result.Receipt.Amount.StringFixed(2), result.Receipt.Method)
	fmt.Fprintf(r.out, "Transaction %s\n", result.Receipt.TransactionID)
	return nil
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad product id %q", args[0])
	}
	return id, nil
}

// terminalApprover asks for a y/n confirmation on the terminal. It stands in
// for the storefront's payment dialog.
type terminalApprover struct {
	in  *bufio.Scanner
	out io.Writer
}

func (t terminalApprover) Approve(_ context.Context, req payment.ApprovalRequest) (bool, error) {
	fmt.Fprintf(t.out, "Pay %s via %s? [y/N] ", req.Amount.StringFixed(2), req.Method)
	if !t.in.Scan() {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(t.in.Text()))
	return answer == "y" || answer == "yes", nil
}
