package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zonedispatch/internal/models"
)

func coverageCmd(opts *rootOptions) *cobra.Command {
	var (
		zoneName string
		business string
		pending  int
	)

	c := &cobra.Command{
		Use:   "coverage",
		Short: "Report driver coverage per zone",
		Long: "Report driver coverage for one zone, or for every active zone of a business.\n" +
			"Pending orders default to the snapshot's pending_orders values.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var report []*models.ZoneCoverage
			if zoneName != "" {
				zone, err := s.zone(zoneName)
				if err != nil {
					return err
				}
				count := s.snapshot.PendingOrders[zone.ID]
				if cmd.Flags().Changed("pending") {
					count = pending
				}
				coverage, err := s.service.GetZoneCoverage(ctx, zone.ID, count)
				if err != nil {
					return err
				}
				report = append(report, coverage)
			} else {
				businessID, err := s.business(business)
				if err != nil {
					return err
				}
				report, err = s.service.GetBusinessCoverage(ctx, businessID, s.snapshot.PendingOrders)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, report)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ZONE\tDRIVERS\tPENDING\tCOVERAGE")
			for _, row := range report {
				fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", row.ZoneName, row.ActiveDrivers, row.PendingOrders, row.CoveragePercentage)
			}
			return w.Flush()
		},
	}

	c.Flags().StringVarP(&zoneName, "zone", "z", "", "zone name")
	c.Flags().StringVarP(&business, "business", "b", "", "business label or id (default: snapshot business)")
	c.Flags().IntVarP(&pending, "pending", "p", 0, "pending orders for --zone")

	return c
}
