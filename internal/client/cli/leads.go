package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) Leads(ctx context.Context, _ []string) error {
	ls, err := a.leadService.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderLeads(ls))
	return nil
}

func (a *App) AddLead(ctx context.Context, _ []string) error {
	l := models.Lead{}
	var err error

	if l.Name, err = a.prompt("Name"); err != nil {
		return err
	}
	if l.Email, err = a.prompt("Email (optional)"); err != nil {
		return err
	}
	if l.Phone, err = a.prompt("Phone (optional)"); err != nil {
		return err
	}
	if l.Source, err = a.prompt("Source (optional)"); err != nil {
		return err
	}
	value, err := a.prompt("Estimated value")
	if err != nil {
		return err
	}
	if l.EstimatedValue, err = ParseAmount(value); err != nil {
		return err
	}

	l, err = a.leadService.Create(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Lead added:", l.ID)
	return nil
}

func (a *App) SetLeadStatus(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "leadstatus <id> <new|contacted|qualified|won|lost>"); err != nil {
		return err
	}
	ls, err := a.leadService.List(ctx)
	if err != nil {
		return err
	}
	id, err := matchID(ls, args[0])
	if err != nil {
		return err
	}
	l, err := a.leadService.SetStatus(ctx, id, models.LeadStatus(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", l.Name, l.Status)
	return nil
}
