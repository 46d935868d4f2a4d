package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Address is a postal address as rendered in order emails.
type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (a Address) Empty() bool {
	return a.Line1 == "" && a.City == ""
}

// Lines renders the address as display lines, skipping blanks.
func (a Address) Lines() []string {
	var lines []string
	for _, l := range []string{a.Name, a.Line1, a.Line2} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	var parts []string
	if a.City != "" {
		parts = append(parts, a.City)
	}
	region := strings.TrimSpace(a.State + " " + a.PostalCode)
	if region != "" {
		parts = append(parts, region)
	}
	if locality := strings.Join(parts, ", "); locality != "" {
		lines = append(lines, locality)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// OrderItem is a purchased line as shown in emails.
type OrderItem struct {
	Name           string
	Quantity       int64
	AmountCents    int64
	UploadedImages []string
}

// OrderData carries everything the order emails render.
type OrderData struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	AmountCents   int64
	Currency      string
	Items         []OrderItem
	Shipping      Address
}

// FormatCents renders an amount in minor units as a currency string,
// e.g. (2497, "usd") -> "$24.97".
func FormatCents(cents int64, currency string) string {
	symbol := "$"
	switch strings.ToLower(currency) {
	case "gbp":
		symbol = "£"
	case "eur":
		symbol = "€"
	case "cad":
		symbol = "CA$"
	case "nzd":
		symbol = "NZ$"
	}
	return fmt.Sprintf("%s%d.%02d", symbol, cents/100, cents%100)
}

var templateFuncs = template.FuncMap{
	"formatCents": FormatCents,
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(templateFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #2d3a2e;">Thanks for your order!</h2>
	<p>Hi {{if .CustomerName}}{{.CustomerName}}{{else}}there{{end}},</p>
	<p>We've received your order <strong>{{.OrderID}}</strong> and it's headed to the workshop.</p>

	<table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
		<tr style="border-bottom: 2px solid #2d3a2e;">
			<th style="text-align: left; padding: 8px;">Item</th>
			<th style="text-align: center; padding: 8px;">Qty</th>
			<th style="text-align: right; padding: 8px;">Price</th>
		</tr>
		{{range .Items}}
		<tr style="border-bottom: 1px solid #ddd;">
			<td style="padding: 8px;">{{.Name}}</td>
			<td style="text-align: center; padding: 8px;">{{.Quantity}}</td>
			<td style="text-align: right; padding: 8px;">{{formatCents .AmountCents $.Currency}}</td>
		</tr>
		{{end}}
		<tr>
			<td colspan="2" style="text-align: right; padding: 8px;"><strong>Total</strong></td>
			<td style="text-align: right; padding: 8px;"><strong>{{formatCents .AmountCents .Currency}}</strong></td>
		</tr>
	</table>

	{{if not .Shipping.Empty}}
	<h3 style="color: #2d3a2e;">Shipping to</h3>
	<p>{{range .Shipping.Lines}}{{.}}<br>{{end}}</p>
	{{end}}

	<p>We'll send tracking details once your order ships.</p>
	<p style="color: #777; font-size: 12px;">Iron Leaf Engravings</p>
</div>
`))

var notificationTemplate = template.Must(template.New("notification").Funcs(templateFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>New order {{.OrderID}}</h2>
	<p><strong>Customer:</strong> {{.CustomerName}} &lt;{{.CustomerEmail}}&gt;</p>
	<p><strong>Total:</strong> {{formatCents .AmountCents .Currency}}</p>

	<table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
		<tr style="border-bottom: 2px solid #333;">
			<th style="text-align: left; padding: 8px;">Item</th>
			<th style="text-align: center; padding: 8px;">Qty</th>
			<th style="text-align: right; padding: 8px;">Price</th>
		</tr>
		{{range .Items}}
		<tr style="border-bottom: 1px solid #ddd;">
			<td style="padding: 8px;">
				{{.Name}}
				{{range .UploadedImages}}<br><a href="{{.}}">artwork</a>{{end}}
			</td>
			<td style="text-align: center; padding: 8px;">{{.Quantity}}</td>
			<td style="text-align: right; padding: 8px;">{{formatCents .AmountCents $.Currency}}</td>
		</tr>
		{{end}}
	</table>

	{{if not .Shipping.Empty}}
	<h3>Ship to</h3>
	<p>{{range .Shipping.Lines}}{{.}}<br>{{end}}</p>
	{{end}}
</div>
`))

// RenderReceiptHTML renders the customer receipt body.
func RenderReceiptHTML(data *OrderData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render receipt email: %w", err)
	}
	return buf.String(), nil
}

// RenderNotificationHTML renders the internal new-order notification body.
func RenderNotificationHTML(data *OrderData) (string, error) {
	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render notification email: %w", err)
	}
	return buf.String(), nil
}

// RenderReceiptText is the plain-text fallback for the customer receipt.
func RenderReceiptText(data *OrderData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order!\n\nOrder %s\n\n", data.OrderID)
	for _, item := range data.Items {
		fmt.Fprintf(&b, "%s x%d  %s\n", item.Name, item.Quantity, FormatCents(item.AmountCents, data.Currency))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", FormatCents(data.AmountCents, data.Currency))
	if !data.Shipping.Empty() {
		b.WriteString("\nShipping to:\n")
		for _, line := range data.Shipping.Lines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nIron Leaf Engravings\n")
	return b.String()
}

// RenderNotificationText is the plain-text fallback for the staff notification.
func RenderNotificationText(data *OrderData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n\nCustomer: %s <%s>\nTotal: %s\n\n", data.OrderID, data.CustomerName, data.CustomerEmail, FormatCents(data.AmountCents, data.Currency))
	for _, item := range data.Items {
		fmt.Fprintf(&b, "%s x%d  %s\n", item.Name, item.Quantity, FormatCents(item.AmountCents, data.Currency))
		for _, img := range item.UploadedImages {
			fmt.Fprintf(&b, "  artwork: %s\n", img)
		}
	}
	if !data.Shipping.Empty() {
		b.WriteString("\nShip to:\n")
		for _, line := range data.Shipping.Lines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
