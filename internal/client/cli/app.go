package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/config"
	"github.com/dmitrijs2005/jobkeeper/internal/client/images"
	"github.com/dmitrijs2005/jobkeeper/internal/client/invoicedoc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/localdb"
	"github.com/dmitrijs2005/jobkeeper/internal/client/notify"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/client/services"
	"github.com/dmitrijs2005/jobkeeper/internal/filex"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger

	authService      services.AuthService
	clientService    services.ClientService
	taskService      services.TaskService
	reminderService  services.ReminderService
	jobService       services.JobService
	invoiceService   services.InvoiceService
	leadService      services.LeadService
	dashboardService services.DashboardService

	scheduler *notify.CronScheduler
	closers   []io.Closer

	mu        sync.RWMutex
	mode      Mode
	userEmail string

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if _, err := filex.EnsureDir(c.DataDir, ""); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(c.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log := logging.NewTextLogger(logFile, logging.ParseLevel(c.LogLevel))

	db, err := localdb.InitDatabase(ctx, c.DatabasePath())
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := &App{
		config:  c,
		log:     log,
		mode:    ModeOffline,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
		closers: []io.Closer{db, logFile},
	}

	store := kv.NewSQLiteRepository(db)
	rc := client.NewRESTClient(c.BackendURL, c.APIKey, c.RequestTimeout)

	auth := services.NewAuthService(rc, store, log)
	rc.OnSession = auth.PersistSession

	photos, err := images.NewStore(c.DataDir, store)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.scheduler = notify.NewCronScheduler(a.deliver, log)
	a.scheduler.Start()

	backend := &gatedBackend{online: a.isOnline, next: rc}
	acc := services.NewAccessors(backend, store, log)
	business := invoicedoc.Business{
		Name:    c.BusinessName,
		Email:   c.BusinessEmail,
		Phone:   c.BusinessPhone,
		Address: c.BusinessAddress,
	}
	clock := services.Clock(time.Now)

	a.authService = auth
	a.clientService = services.NewClientService(acc.Clients, photos, backend, c.RequestTimeout, log, clock)
	a.taskService = services.NewTaskService(acc.Tasks, clock)
	a.reminderService = services.NewReminderService(acc.Reminders, a.scheduler, log, clock)
	a.jobService = services.NewJobService(acc.Jobs, clock)
	a.invoiceService = services.NewInvoiceService(acc.Invoices, acc.Clients, business, c.DataDir, clock)
	a.leadService = services.NewLeadService(acc.Leads, clock)
	a.dashboardService = services.NewDashboardService(acc)

	return a, nil
}

// Close stops the scheduler and releases the database and log file.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}

// Start restores the saved session and probes the backend once.
func (a *App) Start(ctx context.Context) {
	s, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session not restored", "err", err)
	}
	if s != nil {
		a.setUser(s.User.Email)
	}
	a.checkOnline(ctx)
}

func (a *App) Run(ctx context.Context) {
	a.Start(ctx)

	fmt.Fprintln(a.out, "Welcome to JobKeeper (type 'help' for commands)")
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isOnline() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode == ModeOnline
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "mode switched", "mode", mode)
	}
}

func (a *App) setUser(email string) {
	a.mu.Lock()
	a.userEmail = email
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userEmail != ""
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher probes the backend every interval until ctx is
// done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) deliver(n notify.Notification) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, reminderStyle.Render("Reminder: "+n.Title))
	if n.Body != "" {
		fmt.Fprintln(a.out, n.Body)
	}
}

// gatedBackend fails fast while the App is offline so the accessors go to
// the local store without waiting for a network timeout.
type gatedBackend struct {
	online func() bool
	next   client.Client
}

var errOffline = errors.New("offline mode")

func (g *gatedBackend) check() error {
	if !g.online() {
		return fmt.Errorf("%w: %w", client.ErrUnavailable, errOffline)
	}
	return nil
}

func (g *gatedBackend) Select(ctx context.Context, table string, q client.Query, out any) error {
	if err := g.check(); err != nil {
		return err
	}
	return g.next.Select(ctx, table, q, out)
}

func (g *gatedBackend) Insert(ctx context.Context, table string, row any, out any) error {
	if err := g.check(); err != nil {
		return err
	}
	return g.next.Insert(ctx, table, row, out)
}

func (g *gatedBackend) Update(ctx context.Context, table, id string, patch any, out any) error {
	if err := g.check(); err != nil {
		return err
	}
	return g.next.Update(ctx, table, id, patch, out)
}

func (g *gatedBackend) Delete(ctx context.Context, table, id string) error {
	if err := g.check(); err != nil {
		return err
	}
	return g.next.Delete(ctx, table, id)
}

func (g *gatedBackend) UploadURL(ctx context.Context) (string, string, error) {
	if err := g.check(); err != nil {
		return "", "", err
	}
	return g.next.UploadURL(ctx)
}
