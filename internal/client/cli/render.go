package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/jobkeeper/internal/client/earnings"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/services"
)

var (
	primary   = lipgloss.Color("#4ECDC4")
	danger    = lipgloss.Color("#FF6B6B")
	success   = lipgloss.Color("#95E1A3")
	textMuted = lipgloss.Color("#888888")
	border    = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	overdueStyle = lipgloss.NewStyle().
			Foreground(danger)

	paidStyle = lipgloss.NewStyle().
			Foreground(success)

	reminderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(textMuted).Render("(none)")
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func renderClients(cs []models.Client) string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{shortID(c.ID), truncate(c.Name, 30), c.Email, c.Phone})
	}
	return renderTable([]string{"ID", "Name", "Email", "Phone"}, rows)
}

func renderTasks(ts []models.Task, now time.Time) string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		due := t.DueDate.String()
		if t.IsOverdue(now) {
			due = overdueStyle.Render(due + " overdue")
		}
		rows = append(rows, []string{shortID(t.ID), shortID(t.ClientID), truncate(t.Title, 40), string(t.Status), due})
	}
	return renderTable([]string{"ID", "Client", "Title", "Status", "Due"}, rows)
}

func renderReminders(rs []models.Reminder) string {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{shortID(r.ID), shortID(r.ClientID), truncate(r.Title, 40), r.RemindAt.Local().Format("2006-01-02 15:04")})
	}
	return renderTable([]string{"ID", "Client", "Title", "At"}, rows)
}

func renderJobs(js []models.Job) string {
	rows := make([][]string, 0, len(js))
	for _, j := range js {
		rows = append(rows, []string{shortID(j.ID), shortID(j.ClientID), truncate(j.Title, 40), string(j.Status), j.ScheduledDate.String(), fmt.Sprintf("%.2f", j.Price)})
	}
	return renderTable([]string{"ID", "Client", "Title", "Status", "Scheduled", "Price"}, rows)
}

func renderInvoices(is []models.Invoice) string {
	rows := make([][]string, 0, len(is))
	for _, i := range is {
		status := string(i.Status)
		if i.Status == models.InvoicePaid {
			status = paidStyle.Render(status)
		}
		rows = append(rows, []string{shortID(i.ID), i.InvoiceNumber, shortID(i.ClientID), status, i.DueDate.String(), fmt.Sprintf("%.2f", i.TotalAmount)})
	}
	return renderTable([]string{"ID", "Number", "Client", "Status", "Due", "Total"}, rows)
}

func renderLeads(ls []models.Lead) string {
	rows := make([][]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, []string{shortID(l.ID), truncate(l.Name, 30), l.Source, string(l.Status), earnings.FormatAmount(l.EstimatedValue)})
	}
	return renderTable([]string{"ID", "Name", "Source", "Status", "Value"}, rows)
}

func renderDashboard(s services.Summary, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard "+now.Format("January 2006")) + "\n")
	b.WriteString(field("Clients", fmt.Sprint(s.Clients)) + "\n")
	b.WriteString(field("Open tasks", fmt.Sprint(s.OpenTasks)) + "\n")

	overdue := fmt.Sprint(s.OverdueTasks)
	if s.OverdueTasks > 0 {
		overdue = overdueStyle.Render(overdue)
	}
	b.WriteString(field("Overdue tasks", overdue) + "\n")

	for _, st := range []models.JobStatus{models.JobScheduled, models.JobInProgress, models.JobCompleted} {
		b.WriteString(field("Jobs "+strings.ReplaceAll(string(st), "_", " "), fmt.Sprint(s.Jobs[st])) + "\n")
	}
	b.WriteString(field("Unpaid invoices", fmt.Sprintf("%d (%s)", s.UnpaidCount, earnings.FormatAmount(s.UnpaidAmount))) + "\n")
	b.WriteString(field("Open leads", fmt.Sprint(s.Leads[models.LeadNew]+s.Leads[models.LeadContacted]+s.Leads[models.LeadQualified])) + "\n")
	b.WriteString(field("Earned this month", earnings.FormatAmount(s.MonthEarnings)))
	return b.String()
}

func renderEarnings(e earnings.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Earnings") + "\n")

	years := e.Years()
	if len(years) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(textMuted).Render("No paid invoices yet."))
		return b.String()
	}

	rows := make([][]string, 0)
	for _, p := range e.Periods() {
		rows = append(rows, []string{p.String(), earnings.FormatAmount(e.Month(p.Year, p.Month))})
	}
	b.WriteString(renderTable([]string{"Month", "Paid"}, rows) + "\n")

	for _, y := range years {
		b.WriteString(field(fmt.Sprintf("Total %d", y), earnings.FormatAmount(e.Year(y))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
