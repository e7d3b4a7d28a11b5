package receipt

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"text/template"
	"time"

	"posdesk/internal/order"
	"posdesk/internal/utils"

	"github.com/shopspring/decimal"
)

// View is the read-only projection of a finalized order used for display
// and printing. Amounts are formatted here; nothing upstream rounds.
type View struct {
	ReceiptNo     string
	OrderID       string
	CustomerName  string
	PhoneNumber   string
	Lines         []ViewLine
	Subtotal      string
	Tax           string
	GrandTotal    string
	PaymentMethod string
	PaymentRef    string
	CreatedAt     time.Time
}

type ViewLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

// NewView projects a finalized order into a printable receipt.
func NewView(o *order.Order) *View {
	lines := make([]ViewLine, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, ViewLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    utils.FormatAmount(l.Price),
			Total:    utils.FormatAmount(l.Price.Mul(qty(l.Quantity))),
		})
	}

	v := &View{
		ReceiptNo:     utils.GenerateReceiptNumber(),
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		PhoneNumber:   o.PhoneNumber,
		Lines:         lines,
		Subtotal:      utils.FormatAmount(o.Subtotal),
		Tax:           utils.FormatAmount(o.Tax),
		GrandTotal:    utils.FormatAmount(o.GrandTotal),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
	}
	if o.PaymentDetails != nil {
		v.PaymentRef = o.PaymentDetails.PaymentRef
	}
	return v
}

var receiptTemplate = template.Must(template.New("receipt").Parse(
	`================================
        {{.StoreName}}
================================
Receipt : {{.View.ReceiptNo}}
Order   : {{.View.OrderID}}
Customer: {{.View.CustomerName}}
Phone   : {{.View.PhoneNumber}}
--------------------------------
{{range .View.Lines}}{{.Name}} x{{.Quantity}} @ {{.Price}}
                    ₹{{.Total}}
{{end}}--------------------------------
Subtotal:           ₹{{.View.Subtotal}}
Tax (1%):           ₹{{.View.Tax}}
Total:              ₹{{.View.GrandTotal}}
--------------------------------
Paid by {{.View.PaymentMethod}}{{if .View.PaymentRef}} ({{.View.PaymentRef}}){{end}}
Thank you, visit again!
================================
`))

// Printer triggers the platform's native print capability.
type Printer interface {
	Print(content string) error
}

// LPPrinter sends the rendered receipt to the default system printer.
type LPPrinter struct{}

func (LPPrinter) Print(content string) error {
	cmd := exec.Command("lp")
	cmd.Stdin = bytes.NewBufferString(content)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("print receipt: %w: %s", err, out)
	}
	return nil
}

// Presenter renders receipt views and exposes the print trigger. Pure
// presentation; it makes no network calls.
type Presenter struct {
	storeName string
	printer   Printer
}

func NewPresenter(storeName string, printer Printer) *Presenter {
	return &Presenter{storeName: storeName, printer: printer}
}

func (p *Presenter) Render(w io.Writer, v *View) error {
	return receiptTemplate.Execute(w, struct {
		StoreName string
		View      *View
	}{p.storeName, v})
}

func (p *Presenter) Print(v *View) error {
	var buf bytes.Buffer
	if err := p.Render(&buf, v); err != nil {
		return err
	}
	return p.printer.Print(buf.String())
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
