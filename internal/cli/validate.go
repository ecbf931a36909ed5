package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zonedispatch/internal/models"
)

type zoneCheck struct {
	Zone    string                  `json:"zone"`
	Polygon models.ValidationResult `json:"polygon"`
	Fee     models.ValidationResult `json:"fee"`
}

func (c zoneCheck) ok() bool {
	return c.Polygon.Valid && c.Fee.Valid
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every zone polygon and delivery fee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}

			checks := make([]zoneCheck, 0, len(s.snapshot.Zones))
			failed := 0
			for _, zone := range s.snapshot.Zones {
				check := zoneCheck{
					Zone:    zone.Name,
					Polygon: s.engine.ValidateZonePolygon(zone.Polygon),
					Fee:     s.engine.ValidateDeliveryFee(zone.DeliveryFee),
				}
				if !check.ok() {
					failed++
				}
				checks = append(checks, check)
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				if err := writeJSON(out, checks); err != nil {
					return err
				}
			} else {
				for _, check := range checks {
					switch {
					case check.ok():
						fmt.Fprintf(out, "ok       %s\n", check.Zone)
					case !check.Polygon.Valid:
						fmt.Fprintf(out, "invalid  %s: %s\n", check.Zone, check.Polygon.Reason)
					default:
						fmt.Fprintf(out, "invalid  %s: %s\n", check.Zone, check.Fee.Reason)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d zones failed validation", failed, len(checks))
			}
			return nil
		},
	}
}
