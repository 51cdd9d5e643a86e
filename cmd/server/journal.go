package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eventgallery/internal/repository/sqlite"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show query journal statistics and recent cycles",
	Long:  `Opens the journal database (DB_PATH) and prints aggregate figures followed by the most recent query cycles.`,
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "Number of recent cycles to show")
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	journal := sqlite.NewJournalRepository(db)

	stats, err := journal.Stats()
	if err != nil {
		return err
	}
	recent, err := journal.Recent(journalLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Journal: %s\n", cfg.DatabasePath)
	fmt.Fprintf(out, "Total cycles: %d\n", stats.TotalCycles)
	for outcome, n := range stats.PerOutcome {
		fmt.Fprintf(out, "  %-8s %d\n", outcome, n)
	}

	prompts := make([]string, 0, len(stats.TopPrompts))
	for p := range stats.TopPrompts {
		prompts = append(prompts, p)
	}
	sort.Slice(prompts, func(i, j int) bool {
		return stats.TopPrompts[prompts[i]] > stats.TopPrompts[prompts[j]]
	})
	if len(prompts) > 0 {
		fmt.Fprintln(out, "Top prompts:")
		for _, p := range prompts {
			fmt.Fprintf(out, "  %4d  %s\n", stats.TopPrompts[p], p)
		}
	}

	if len(recent) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ISSUED\tSESSION\tSEQ\tTRIGGER\tOUTCOME\tCARDS\tTOOK\tPROMPT")
	for _, r := range recent {
		fmt.Fprintf(w, "%s\t%.8s\t%d\t%s\t%s\t%d\t%v\t%s\n",
			r.IssuedAt.Local().Format("2006-01-02 15:04:05"), r.SessionID, r.Seq, r.Trigger, r.Outcome, r.Cards, r.Duration(), r.Prompt)
	}
	return w.Flush()
}
