package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zonedispatch/internal/models"
	"zonedispatch/internal/services"
)

func locateCmd(opts *rootOptions) *cobra.Command {
	var (
		lat, lng float64
		business string
		nearest  bool
	)

	c := &cobra.Command{
		Use:   "locate",
		Short: "Find the zone containing a location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			businessID, err := s.business(business)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			zone, err := s.service.LocateZone(ctx, businessID, lat, lng)
			if errors.Is(err, services.ErrNoZoneAvailable) && nearest {
				zone, err = s.service.FindNearestZone(ctx, businessID, lat, lng)
			}

			out := cmd.OutOrStdout()
			if errors.Is(err, services.ErrNoZoneAvailable) {
				if opts.asJSON {
					return writeJSON(out, map[string]*models.Zone{"zone": nil})
				}
				_, err = fmt.Fprintf(out, "no zone covers %.6f,%.6f\n", lat, lng)
				return err
			}
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(out, map[string]*models.Zone{"zone": zone})
			}
			_, err = fmt.Fprintf(out, "%s (%s)\n", zone.Name, zone.ID.Hex())
			return err
		},
	}

	c.Flags().Float64Var(&lat, "lat", 0, "latitude")
	c.Flags().Float64Var(&lng, "lng", 0, "longitude")
	c.Flags().StringVarP(&business, "business", "b", "", "business label or id (default: snapshot business)")
	c.Flags().BoolVar(&nearest, "nearest", false, "fall back to the nearest zone")
	_ = c.MarkFlagRequired("lat")
	_ = c.MarkFlagRequired("lng")

	return c
}
