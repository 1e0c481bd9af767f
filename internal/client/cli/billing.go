package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) Jobs(ctx context.Context, args []string) error {
	clientID, err := a.clientFilter(ctx, args)
	if err != nil {
		return err
	}
	js, err := a.jobService.List(ctx, clientID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderJobs(js))
	return nil
}

func (a *App) AddJob(ctx context.Context, _ []string) error {
	ref, err := a.prompt("Client id")
	if err != nil {
		return err
	}
	j := models.Job{}
	if j.ClientID, err = a.resolveClient(ctx, ref); err != nil {
		return err
	}
	if j.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	date, err := a.prompt("Scheduled date (YYYY-MM-DD or empty)")
	if err != nil {
		return err
	}
	if j.ScheduledDate, err = ParseDate(date, a.now()); err != nil {
		return err
	}
	price, err := a.prompt("Price")
	if err != nil {
		return err
	}
	if j.Price, err = ParseAmount(price); err != nil {
		return err
	}

	j, err = a.jobService.Create(ctx, j)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Job added:", j.ID)
	return nil
}

func (a *App) SetJobStatus(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "jobstatus <id> <scheduled|in_progress|completed|cancelled>"); err != nil {
		return err
	}
	js, err := a.jobService.List(ctx, "")
	if err != nil {
		return err
	}
	id, err := matchID(js, args[0])
	if err != nil {
		return err
	}
	j, err := a.jobService.SetStatus(ctx, id, models.JobStatus(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", j.Title, j.Status)
	return nil
}

func (a *App) Invoices(ctx context.Context, args []string) error {
	clientID, err := a.clientFilter(ctx, args)
	if err != nil {
		return err
	}
	is, err := a.invoiceService.List(ctx, clientID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderInvoices(is))
	return nil
}

// AddInvoice prompts for the header fields and then for line items until an
// empty description is entered.
func (a *App) AddInvoice(ctx context.Context, _ []string) error {
	ref, err := a.prompt("Client id")
	if err != nil {
		return err
	}
	inv := models.Invoice{}
	if inv.ClientID, err = a.resolveClient(ctx, ref); err != nil {
		return err
	}

	now := a.now()
	if inv.InvoiceNumber, err = a.prompt("Invoice number (empty for automatic)"); err != nil {
		return err
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = "INV-" + now.Format("20060102-150405")
	}

	for {
		desc, err := a.prompt("Item description (empty to finish)")
		if err != nil {
			return err
		}
		if strings.TrimSpace(desc) == "" {
			break
		}
		item := models.InvoiceItem{Description: desc, Quantity: 1}
		qty, err := a.prompt("Quantity (default 1)")
		if err != nil {
			return err
		}
		if qty != "" {
			if item.Quantity, err = ParseAmount(qty); err != nil {
				return err
			}
		}
		price, err := a.prompt("Unit price")
		if err != nil {
			return err
		}
		if item.UnitPrice, err = ParseAmount(price); err != nil {
			return err
		}
		inv.Items = append(inv.Items, item)
	}

	due, err := a.prompt("Due date (YYYY-MM-DD or empty)")
	if err != nil {
		return err
	}
	if inv.DueDate, err = ParseDate(due, now); err != nil {
		return err
	}

	inv, err = a.invoiceService.Create(ctx, inv)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Invoice %s added, total %.2f\n", inv.InvoiceNumber, inv.TotalAmount)
	return nil
}

func (a *App) resolveInvoice(ctx context.Context, ref string) (string, error) {
	is, err := a.invoiceService.List(ctx, "")
	if err != nil {
		return "", err
	}
	for _, inv := range is {
		if inv.InvoiceNumber == ref {
			return inv.ID, nil
		}
	}
	return matchID(is, ref)
}

func (a *App) MarkPaid(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "paid <invoice-id|number>"); err != nil {
		return err
	}
	id, err := a.resolveInvoice(ctx, args[0])
	if err != nil {
		return err
	}
	inv, err := a.invoiceService.MarkPaid(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Paid:", inv.InvoiceNumber)
	return nil
}

func (a *App) ExportInvoice(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "export <invoice-id|number>"); err != nil {
		return err
	}
	id, err := a.resolveInvoice(ctx, args[0])
	if err != nil {
		return err
	}
	path, err := a.invoiceService.Export(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}
