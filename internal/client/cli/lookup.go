package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
)

var errAmbiguousID = errors.New("ambiguous id")

// matchID resolves ref to the id of exactly one item, accepting either the
// full id or a unique prefix such as the short ids printed in lists.
func matchID[T models.Entity](items []T, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty id: %w", common.ErrorNotFound)
	}

	var found []string
	for _, it := range items {
		id := it.EntityID()
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, common.ErrorNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s matches %d records: %w", ref, len(found), errAmbiguousID)
	}
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (a *App) resolveClient(ctx context.Context, ref string) (string, error) {
	cs, err := a.clientService.List(ctx)
	if err != nil {
		return "", err
	}
	return matchID(cs, ref)
}

// clientFilter returns the client id named by the first argument, or "" for
// all clients.
func (a *App) clientFilter(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return a.resolveClient(ctx, args[0])
}
