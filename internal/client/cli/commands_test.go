package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchID(t *testing.T) {
	cs := []models.Client{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz"}}

	id, err := matchID(cs, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = matchID(cs, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)

	_, err = matchID(cs, "ab")
	require.ErrorIs(t, err, errAmbiguousID)

	_, err = matchID(cs, "q")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAddClientThenTaskAndOverdue(t *testing.T) {
	a, out := newTestApp(t,
		"Acme", "", "", "",
	)
	ctx := context.Background()
	require.NoError(t, a.AddClient(ctx, nil))

	cs, err := a.clientService.List(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	short := cs[0].ID[:8]

	a.reader = readerFromLines(short, "Fix roof", "2024-03-01")
	require.NoError(t, a.AddTask(ctx, nil))

	out.Reset()
	require.NoError(t, a.Overdue(ctx, nil))
	assert.Contains(t, out.String(), "Fix roof")
	assert.Contains(t, out.String(), "overdue")

	ts, err := a.taskService.List(ctx, "")
	require.NoError(t, err)
	require.NoError(t, a.CompleteTask(ctx, []string{ts[0].ID[:6]}))

	out.Reset()
	require.NoError(t, a.Overdue(ctx, []string{short}))
	assert.Contains(t, out.String(), "(none)")
}

func TestAddClient_ValidationError(t *testing.T) {
	a, _ := newTestApp(t, "", "", "", "")
	err := a.AddClient(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestInvoiceFlow_AddPayExportEarnings(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	c, err := a.clientService.Create(ctx, models.Client{Name: "Acme"})
	require.NoError(t, err)

	a.reader = readerFromLines(
		c.ID,
		"INV-7",
		"Labour", "3", "150",
		"Parts", "", "50",
		"",
		"2024-03-20",
	)
	require.NoError(t, a.AddInvoice(ctx, nil))
	assert.Contains(t, out.String(), "Invoice INV-7 added, total 500.00")

	require.NoError(t, a.MarkPaid(ctx, []string{"INV-7"}))

	out.Reset()
	require.NoError(t, a.ExportInvoice(ctx, []string{"INV-7"}))
	path := strings.TrimSpace(strings.TrimPrefix(out.String(), "Exported to"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Labour")
	assert.Equal(t, "exports", filepath.Base(filepath.Dir(path)))

	out.Reset()
	require.NoError(t, a.Earnings(ctx, nil))
	assert.Contains(t, out.String(), "March 2024")
	assert.Contains(t, out.String(), "500.00")

	out.Reset()
	require.NoError(t, a.Dashboard(ctx, nil))
	assert.Contains(t, out.String(), "Earned this month")
}

func TestJobsAndLeads(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	c, err := a.clientService.Create(ctx, models.Client{Name: "Acme"})
	require.NoError(t, err)

	a.reader = readerFromLines(c.ID, "Paint fence", "", "1200")
	require.NoError(t, a.AddJob(ctx, nil))
	js, err := a.jobService.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, js, 1)

	require.NoError(t, a.SetJobStatus(ctx, []string{js[0].ID, "completed"}))
	require.Error(t, a.SetJobStatus(ctx, []string{js[0].ID, "paused"}))
	require.Error(t, a.SetJobStatus(ctx, []string{js[0].ID}))

	a.reader = readerFromLines("Bob", "", "", "referral", "2500")
	require.NoError(t, a.AddLead(ctx, nil))
	out.Reset()
	require.NoError(t, a.Leads(ctx, nil))
	assert.Contains(t, out.String(), "Bob")
	assert.Contains(t, out.String(), "2k")
}

func TestReminders_AddAndDelete(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	c, err := a.clientService.Create(ctx, models.Client{Name: "Acme"})
	require.NoError(t, err)

	a.reader = readerFromLines(c.ID, "Call back", "", "+2h")
	require.NoError(t, a.AddReminder(ctx, nil))

	rs, err := a.reminderService.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, testNow.Add(2*time.Hour), rs[0].RemindAt)

	require.NoError(t, a.DeleteReminder(ctx, []string{rs[0].ID}))
	rs, err = a.reminderService.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestSetPhotoAndDeleteClient(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	c, err := a.clientService.Create(ctx, models.Client{Name: "Acme"})
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "face.JPG")
	require.NoError(t, os.WriteFile(src, []byte("jpeg"), 0o600))

	require.NoError(t, a.SetPhoto(ctx, []string{c.ID, src}))
	assert.Contains(t, out.String(), "Photo saved: file://")

	require.NoError(t, a.DeleteClient(ctx, []string{c.ID}))
	_, ok, err := a.clientService.PhotoURI(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePhoto_KeepsClient(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	c, err := a.clientService.Create(ctx, models.Client{Name: "Acme"})
	require.NoError(t, err)
	src := filepath.Join(t.TempDir(), "face.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o600))
	require.NoError(t, a.SetPhoto(ctx, []string{c.ID, src}))

	uri, ok, err := a.clientService.PhotoURI(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, a.DeletePhoto(ctx, []string{c.ID}))
	assert.Contains(t, out.String(), "Photo removed")

	_, err = os.Stat(strings.TrimPrefix(uri, "file://"))
	assert.True(t, os.IsNotExist(err))
	_, ok, err = a.clientService.PhotoURI(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.clientService.Get(ctx, c.ID)
	require.NoError(t, err)

	require.Error(t, a.DeletePhoto(ctx, nil))
}
