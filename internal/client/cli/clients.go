package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) Clients(ctx context.Context, _ []string) error {
	cs, err := a.clientService.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderClients(cs))
	return nil
}

func (a *App) AddClient(ctx context.Context, _ []string) error {
	var c models.Client
	var err error

	if c.Name, err = a.prompt("Name"); err != nil {
		return err
	}
	if c.Email, err = a.prompt("Email (optional)"); err != nil {
		return err
	}
	if c.Phone, err = a.prompt("Phone (optional)"); err != nil {
		return err
	}
	if c.Address, err = a.prompt("Address (optional)"); err != nil {
		return err
	}

	c, err = a.clientService.Create(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Client added:", c.ID)
	return nil
}

func (a *App) DeleteClient(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delclient <id>"); err != nil {
		return err
	}
	id, err := a.resolveClient(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.clientService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Client deleted")
	return nil
}

// SetPhoto copies an image file as the client's photo.
func (a *App) SetPhoto(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "photo <client-id> <file>"); err != nil {
		return err
	}
	id, err := a.resolveClient(ctx, args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	uri, err := a.clientService.SetPhoto(ctx, id, f, filepath.Ext(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Photo saved:", uri)
	return nil
}

// DeletePhoto removes the client's local photo.
func (a *App) DeletePhoto(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delphoto <client-id>"); err != nil {
		return err
	}
	id, err := a.resolveClient(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.clientService.DeletePhoto(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Photo removed")
	return nil
}
