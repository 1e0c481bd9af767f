package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) Tasks(ctx context.Context, args []string) error {
	clientID, err := a.clientFilter(ctx, args)
	if err != nil {
		return err
	}
	ts, err := a.taskService.List(ctx, clientID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderTasks(ts, a.now()))
	return nil
}

func (a *App) AddTask(ctx context.Context, _ []string) error {
	ref, err := a.prompt("Client id")
	if err != nil {
		return err
	}
	t := models.Task{}
	if t.ClientID, err = a.resolveClient(ctx, ref); err != nil {
		return err
	}
	if t.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	due, err := a.prompt("Due date (YYYY-MM-DD, today, tomorrow or empty)")
	if err != nil {
		return err
	}
	if t.DueDate, err = ParseDate(due, a.now()); err != nil {
		return err
	}

	t, err = a.taskService.Create(ctx, t)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task added:", t.ID)
	return nil
}

func (a *App) CompleteTask(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "done <task-id>"); err != nil {
		return err
	}
	ts, err := a.taskService.List(ctx, "")
	if err != nil {
		return err
	}
	id, err := matchID(ts, args[0])
	if err != nil {
		return err
	}
	t, err := a.taskService.SetStatus(ctx, id, models.TaskDone)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Done:", t.Title)
	return nil
}

func (a *App) Overdue(ctx context.Context, args []string) error {
	clientID, err := a.clientFilter(ctx, args)
	if err != nil {
		return err
	}
	now := a.now()
	ts, err := a.taskService.Overdue(ctx, clientID, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderTasks(ts, now))
	return nil
}
