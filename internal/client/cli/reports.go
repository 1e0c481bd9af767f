package cli

import (
	"context"
	"fmt"
)

func (a *App) Dashboard(ctx context.Context, _ []string) error {
	now := a.now()
	s, err := a.dashboardService.Summary(ctx, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderDashboard(s, now))
	return nil
}

func (a *App) Earnings(ctx context.Context, _ []string) error {
	e, err := a.dashboardService.Earnings(ctx, a.now())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderEarnings(e))
	return nil
}
