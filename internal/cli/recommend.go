package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zonedispatch/internal/services"
)

func recommendCmd(opts *rootOptions) *cobra.Command {
	var (
		lat, lng, total float64
		business        string
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a zone for an order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			businessID, err := s.business(business)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rec, err := s.service.RecommendZone(cmd.Context(), businessID, lat, lng, total)
			if errors.Is(err, services.ErrNoZoneAvailable) {
				_, err = fmt.Fprintln(out, "no zone available")
				return err
			}
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(out, rec)
			}
			_, err = fmt.Fprintf(out, "zone:       %s\nconfidence: %.2f\nreason:     %s\nfee:        %.2f\n",
				rec.Zone.Name, rec.Confidence, rec.Reason, rec.Zone.DeliveryFee)
			return err
		},
	}

	c.Flags().Float64Var(&lat, "lat", 0, "latitude")
	c.Flags().Float64Var(&lng, "lng", 0, "longitude")
	c.Flags().Float64VarP(&total, "total", "t", 0, "order total")
	c.Flags().StringVarP(&business, "business", "b", "", "business label or id (default: snapshot business)")
	_ = c.MarkFlagRequired("lat")
	_ = c.MarkFlagRequired("lng")

	return c
}
