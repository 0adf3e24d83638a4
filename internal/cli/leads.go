package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var leadStages []string

var leadsCmd = &cobra.Command{
	Use:   "leads <pipeline>",
	Short: "List leads in a pipeline, optionally filtered by stage",
	Long: `List leads in a pipeline. With one or more --stage flags only
leads currently in one of those stages are shown; leads without a stage
are shown only when no filter is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		leads, err := newClient().Leads(cmd.Context(), args[0], leadStages...)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTAGE")
		for _, l := range leads {
			stage := "-"
			if l.Stage != nil {
				stage = l.Stage.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, l.Name, stage)
		}
		return w.Flush()
	},
}

func init() {
	leadsCmd.Flags().StringArrayVar(&leadStages, "stage", nil, "Stage name to filter by (repeatable)")
	rootCmd.AddCommand(leadsCmd)
}
