package dashboard

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/robsahakyan/mining-pools/internal/models"
)

// statusLabel mirrors the colour the web dashboard gives each status chip
func statusLabel(status models.PoolStatus) string {
	switch status {
	case models.PoolStatusOnline:
		return "● online"
	case models.PoolStatusDegraded:
		return "▲ degraded"
	case models.PoolStatusOffline:
		return "✕ offline"
	default:
		return string(status)
	}
}

// RenderTable writes the pool list, or the loading/error line in its place
func RenderTable(w io.Writer, state State) error {
	if state.Loading {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}
	if state.Error != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", state.Error)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tName\tHashrate (TH/s)\tActive workers\tReject rate (%)\tStatus\t")
	for _, p := range state.Pools {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%d\t%.2f%%\t%s\t\n",
			p.ID, p.Name, p.HashrateTHs, p.ActiveWorkers, p.RejectRate*100, statusLabel(p.Status))
	}
	return tw.Flush()
}

// RenderDetail writes the selected pool, or the loading/error/empty line
func RenderDetail(w io.Writer, state State) error {
	if state.Loading {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}
	if state.Error != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", state.Error)
		return err
	}
	p := state.SelectedPool
	if p == nil {
		_, err := fmt.Fprintln(w, "No pool data found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", p.Name, statusLabel(p.Status))
	fmt.Fprintf(tw, "Hashrate\t%.1f TH/s\n", p.HashrateTHs)
	fmt.Fprintf(tw, "Active workers\t%d\n", p.ActiveWorkers)
	fmt.Fprintf(tw, "Reject rate\t%.2f%%\n", p.RejectRate*100)
	fmt.Fprintf(tw, "Uptime\t%.2f%%\n", p.UptimePercent)
	fmt.Fprintf(tw, "Revenue (24h)\t%.6f BTC\n", p.Last24hRevenueBTC)
	fmt.Fprintf(tw, "Pool fee\t%.2f%%\n", p.FeePercent)
	fmt.Fprintf(tw, "Location\t%s\n", p.Location)
	return tw.Flush()
}
