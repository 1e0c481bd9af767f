// Package invoicedoc renders an invoice as a standalone HTML document.
package invoicedoc

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"regexp"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/filex"
)

// Business is the issuer printed in the document header.
type Business struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type view struct {
	Business Business
	Client   models.Client
	Invoice  models.Invoice
	Total    float64
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"mul":   func(a, b float64) float64 { return a * b },
}

var page = template.Must(template.New("invoice").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.InvoiceNumber}}</title>
<style>
body { font-family: sans-serif; margin: 40px; color: #222; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
td.num, th.num { text-align: right; }
.total { font-size: 1.2em; font-weight: bold; text-align: right; margin-top: 16px; }
.status { text-transform: uppercase; color: #666; }
</style>
</head>
<body>
<h1>Invoice {{.Invoice.InvoiceNumber}}</h1>
<p class="status">{{.Invoice.Status}}</p>
<section>
<h3>{{.Business.Name}}</h3>
{{with .Business.Address}}<div>{{.}}</div>{{end}}
{{with .Business.Email}}<div>{{.}}</div>{{end}}
{{with .Business.Phone}}<div>{{.}}</div>{{end}}
</section>
<section>
<h3>Bill to</h3>
<div>{{.Client.Name}}</div>
{{with .Client.Address}}<div>{{.}}</div>{{end}}
{{with .Client.Email}}<div>{{.}}</div>{{end}}
</section>
<p>
{{with .Invoice.IssuedDate.String}}Issued: {{.}}<br>{{end}}
{{with .Invoice.DueDate.String}}Due: {{.}}{{end}}
</p>
<table>
<tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
{{range .Invoice.Items}}<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money (mul .Quantity .UnitPrice)}}</td></tr>
{{end}}</table>
<p class="total">Total: {{money .Total}}</p>
{{with .Invoice.Notes}}<p>{{.}}</p>{{end}}
</body>
</html>
`))

// Render writes the HTML document to w. The printed total is the invoice's
// total_amount, or the sum of its items when that is zero.
func Render(w io.Writer, b Business, c models.Client, inv models.Invoice) error {
	total := inv.TotalAmount
	if total == 0 {
		total = inv.ItemsTotal()
	}
	return page.Execute(w, view{Business: b, Client: c, Invoice: inv, Total: total})
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName is the export file name for inv.
func FileName(inv models.Invoice) string {
	n := unsafeName.ReplaceAllString(inv.InvoiceNumber, "_")
	if n == "" {
		n = inv.ID
	}
	return "invoice-" + n + ".html"
}

// Export renders the invoice into dataDir/exports and returns the file path.
func Export(dataDir string, b Business, c models.Client, inv models.Invoice) (string, error) {
	dir, err := filex.EnsureDir(dataDir, "exports")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Render(&buf, b, c, inv); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}

	path := filepath.Join(dir, FileName(inv))
	if err := filex.WriteFileAtomic(path, &buf); err != nil {
		return "", err
	}
	return path, nil
}
