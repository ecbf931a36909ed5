package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func quoteCmd(opts *rootOptions) *cobra.Command {
	var (
		zoneName string
		lat, lng float64
	)

	c := &cobra.Command{
		Use:   "quote",
		Short: "Quote a distance-based delivery fee from a zone center",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			zone, err := s.zone(zoneName)
			if err != nil {
				return err
			}

			quote, err := s.service.QuoteDeliveryFee(cmd.Context(), zone.ID, lat, lng)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, quote)
			}
			if !quote.Valid {
				_, err = fmt.Fprintf(out, "%s: %.2f km, fee %.2f rejected: %s\n", zone.Name, quote.DistanceKM, quote.Fee, quote.Reason)
				return err
			}
			_, err = fmt.Fprintf(out, "%s: %.2f km, fee %.2f\n", zone.Name, quote.DistanceKM, quote.Fee)
			return err
		},
	}

	c.Flags().StringVarP(&zoneName, "zone", "z", "", "zone name")
	c.Flags().Float64Var(&lat, "lat", 0, "destination latitude")
	c.Flags().Float64Var(&lng, "lng", 0, "destination longitude")
	_ = c.MarkFlagRequired("zone")
	_ = c.MarkFlagRequired("lat")
	_ = c.MarkFlagRequired("lng")

	return c
}
