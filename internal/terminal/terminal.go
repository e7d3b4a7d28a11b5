package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"posdesk/internal/auth"
	"posdesk/internal/cart"
	"posdesk/internal/catalog"
	"posdesk/internal/checkout"
	"posdesk/internal/journal"
	"posdesk/internal/order"
	"posdesk/internal/receipt"
	"posdesk/internal/utils"
)

// Terminal is the line-driven register surface: browse the catalog, build
// the cart, capture customer details, settle by cash or hosted checkout,
// then print the receipt. It owns no business logic; every command maps
// onto the stores, gateways and orchestrator behind it.
type Terminal struct {
	in  io.Reader
	out io.Writer

	cart      *cart.Store
	checkout  *checkout.Service
	catalog   *catalog.Client
	auth      *auth.Client
	journal   journal.Repository // nil when the journal is not configured
	presenter *receipt.Presenter

	items    []catalog.Item
	lastView *receipt.View
}

func New(
	in io.Reader,
	out io.Writer,
	cartStore *cart.Store,
	checkoutSvc *checkout.Service,
	catalogClient *catalog.Client,
	authClient *auth.Client,
	journalRepo journal.Repository,
	presenter *receipt.Presenter,
) *Terminal {
	return &Terminal{
		in:        in,
		out:       out,
		cart:      cartStore,
		checkout:  checkoutSvc,
		catalog:   catalogClient,
		auth:      authClient,
		journal:   journalRepo,
		presenter: presenter,
	}
}

// NewNotifier returns the notifier wired into the checkout service so its
// messages land on the same output as the prompt.
func NewNotifier(out io.Writer) checkout.Notifier {
	return &notifier{out: out}
}

// Run reads commands until EOF or quit.
func (t *Terminal) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "posdesk register ready. Type 'help' for commands.")

	scanner := bufio.NewScanner(t.in)
	for {
		fmt.Fprint(t.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		t.dispatch(ctx, cmd, args)
	}
}

func (t *Terminal) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		t.printHelp()
	case "login":
		err = t.login(ctx, args)
	case "categories":
		err = t.listCategories(ctx)
	case "items":
		err = t.listItems(ctx, args)
	case "add":
		err = t.addItem(args)
	case "inc", "dec", "remove":
		err = t.adjustLine(cmd, args)
	case "cart":
		t.showCart()
	case "clear":
		t.cart.Clear()
		fmt.Fprintln(t.out, "cart cleared")
	case "customer":
		err = t.setCustomer(args)
	case "cash":
		err = t.pay(ctx, order.MethodCash)
	case "upi":
		err = t.pay(ctx, order.MethodUPI)
	case "place":
		err = t.placeOrder(ctx)
	case "print":
		err = t.printReceipt()
	case "dismiss":
		t.lastView = nil
		fmt.Fprintln(t.out, "receipt dismissed")
	case "dashboard":
		err = t.showDashboard(ctx)
	default:
		fmt.Fprintf(t.out, "unknown command %q, try 'help'\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(t.out, "[error] %v\n", err)
	}
}

func (t *Terminal) printHelp() {
	fmt.Fprint(t.out, `commands:
  login <email> <password>   authenticate against the backend
  categories                 list catalog categories
  items [term]               list catalog items, optionally filtered
  add <itemId> [qty]         add a catalog item to the cart
  inc|dec|remove <itemId>    adjust a cart line
  cart                       show cart with totals
  clear                      empty the cart
  customer <name...> <phone> set customer details
  cash | upi                 settle the current cart
  place                      place the finalized order and show receipt
  print                      print the last receipt
  dismiss                    discard the last receipt
  dashboard                  today's sales summary
  quit
`)
}

func (t *Terminal) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	role, err := t.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "logged in as %s (%s)\n", args[0], role)
	return nil
}

func (t *Terminal) listCategories(ctx context.Context) error {
	categories, err := t.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(t.out, "%-12s %s (%d items)\n", c.CategoryID, c.Name, c.Items)
	}
	return nil
}

func (t *Terminal) listItems(ctx context.Context, args []string) error {
	items, err := t.catalog.ListItems(ctx)
	if err != nil {
		return err
	}
	t.items = items

	term := strings.Join(args, " ")
	for _, it := range catalog.FilterItems(items, term, "") {
		fmt.Fprintf(t.out, "%-12s %-24s ₹%s\n", it.ItemID, it.Name, utils.FormatAmount(it.Price))
	}
	return nil
}

func (t *Terminal) addItem(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <itemId> [qty]")
	}

	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		qty = n
	}

	for _, it := range t.items {
		if it.ItemID == args[0] {
			if err := t.cart.Add(cart.Line{
				ItemID:    it.ItemID,
				Name:      it.Name,
				UnitPrice: it.Price,
				Quantity:  qty,
			}); err != nil {
				return err
			}
			fmt.Fprintf(t.out, "added %s x%d\n", it.Name, qty)
			return nil
		}
	}
	return fmt.Errorf("item %q not found, run 'items' first", args[0])
}

func (t *Terminal) adjustLine(cmd string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <itemId>", cmd)
	}
	switch cmd {
	case "inc":
		return t.cart.Increment(args[0])
	case "dec":
		return t.cart.Decrement(args[0])
	default:
		return t.cart.Remove(args[0])
	}
}

func (t *Terminal) showCart() {
	snap := t.cart.Snapshot()
	if snap.Empty() {
		fmt.Fprintln(t.out, "cart is empty")
		return
	}

	for _, l := range snap.Lines {
		fmt.Fprintf(t.out, "%-12s %-24s x%-3d ₹%s\n", l.ItemID, l.Name, l.Quantity, utils.FormatAmount(l.Total()))
	}

	tax := snap.Subtotal.Mul(checkout.TaxRate)
	fmt.Fprintf(t.out, "Item:     ₹%s\n", utils.FormatAmount(snap.Subtotal))
	fmt.Fprintf(t.out, "Tax (1%%): ₹%s\n", utils.FormatAmount(tax))
	fmt.Fprintf(t.out, "Total:    ₹%s\n", utils.FormatAmount(snap.Subtotal.Add(tax)))
}

func (t *Terminal) setCustomer(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: customer <name...> <phone>")
	}
	name := strings.Join(args[:len(args)-1], " ")
	phone := args[len(args)-1]
	t.checkout.SetCustomer(name, phone)
	fmt.Fprintf(t.out, "customer set: %s (%s)\n", name, phone)
	return nil
}

func (t *Terminal) pay(ctx context.Context, method order.PaymentMethod) error {
	if !t.auth.LoggedIn() {
		return fmt.Errorf("session expired, run 'login' first")
	}
	if t.checkout.InProgress() {
		fmt.Fprintln(t.out, "Processing...")
		return nil
	}

	fmt.Fprintln(t.out, "Processing...")
	attempt, err := t.checkout.CompletePayment(ctx, method)
	if err != nil {
		// The notifier already surfaced the message to the operator.
		return nil
	}
	if attempt.State == checkout.StateFinalized {
		fmt.Fprintln(t.out, "order finalized, run 'place' to print the receipt")
	}
	return nil
}

func (t *Terminal) placeOrder(ctx context.Context) error {
	ord, err := t.checkout.PlaceOrder()
	if err != nil {
		return err
	}

	view := receipt.NewView(ord)
	t.lastView = view
	if err := t.presenter.Render(t.out, view); err != nil {
		return err
	}

	if t.journal != nil {
		if err := t.journal.RecordOrder(ctx, ord); err != nil {
			fmt.Fprintf(t.out, "[error] journal: %v\n", err)
		}
	}
	return nil
}

func (t *Terminal) printReceipt() error {
	if t.lastView == nil {
		return fmt.Errorf("no receipt to print")
	}
	return t.presenter.Print(t.lastView)
}

func (t *Terminal) showDashboard(ctx context.Context) error {
	if t.journal == nil {
		return fmt.Errorf("journal not configured")
	}

	summary, err := t.journal.TodaySummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "today: ₹%s across %d orders\n", utils.FormatAmount(summary.TodaySales), summary.TodayOrders)

	recent, err := t.journal.RecentOrders(ctx, 5)
	if err != nil {
		return err
	}
	for _, o := range recent {
		fmt.Fprintf(t.out, "%-24s %-16s ₹%s %s\n", o.OrderID, o.CustomerName, utils.FormatAmount(o.GrandTotal), o.PaymentMethod)
	}
	return nil
}
