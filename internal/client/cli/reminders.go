package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) Reminders(ctx context.Context, args []string) error {
	clientID, err := a.clientFilter(ctx, args)
	if err != nil {
		return err
	}
	rs, err := a.reminderService.List(ctx, clientID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderReminders(rs))
	return nil
}

func (a *App) AddReminder(ctx context.Context, _ []string) error {
	ref, err := a.prompt("Client id")
	if err != nil {
		return err
	}
	r := models.Reminder{}
	if r.ClientID, err = a.resolveClient(ctx, ref); err != nil {
		return err
	}
	if r.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	if r.Body, err = a.prompt("Details (optional)"); err != nil {
		return err
	}
	when, err := a.prompt("When (+30m or YYYY-MM-DD HH:MM)")
	if err != nil {
		return err
	}
	if r.RemindAt, err = ParseWhen(when, a.now()); err != nil {
		return err
	}

	r, err = a.reminderService.Create(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reminder set for", r.RemindAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *App) DeleteReminder(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delreminder <id>"); err != nil {
		return err
	}
	rs, err := a.reminderService.List(ctx, "")
	if err != nil {
		return err
	}
	id, err := matchID(rs, args[0])
	if err != nil {
		return err
	}
	if err := a.reminderService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reminder deleted")
	return nil
}
