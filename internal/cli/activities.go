package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

var (
	activityPipeline string
	activityLead     string
	activityTypes    []string
	activityFrom     string
	activityTo       string
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List activities, globally or for one lead",
	Long: `List activities from the global feed, or from one lead with
--lead. Filters compose: --type is applied by the server, --pipeline
and the --from/--to date range (inclusive, YYYY-MM-DD, compared in UTC)
are applied client-side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		query := clinchpad.ActivityQuery{
			Types: activityTypes,
			Start: activityFrom,
			End:   activityTo,
		}
		if activityPipeline != "" {
			pipeline, err := c.PipelineByName(cmd.Context(), activityPipeline)
			if err != nil {
				return err
			}
			query.Pipeline = pipeline
		}
		if activityLead != "" {
			query.Lead = &clinchpad.Lead{ID: activityLead}
		}

		activities, err := c.Activities(cmd.Context(), query)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tLEAD\tCREATED")
		for _, a := range activities {
			lead := a.LeadID
			if lead == "" {
				lead = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Type, lead, a.CreatedAt.UTC().Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	activitiesCmd.Flags().StringVar(&activityPipeline, "pipeline", "", "Only activities in this pipeline")
	activitiesCmd.Flags().StringVar(&activityLead, "lead", "", "Only activities of this lead id")
	activitiesCmd.Flags().StringArrayVar(&activityTypes, "type", nil, "Activity type to filter by (repeatable)")
	activitiesCmd.Flags().StringVar(&activityFrom, "from", "", "Earliest date, YYYY-MM-DD inclusive")
	activitiesCmd.Flags().StringVar(&activityTo, "to", "", "Latest date, YYYY-MM-DD inclusive")
	rootCmd.AddCommand(activitiesCmd)
}
