// Package cli implements zonectl, an offline evaluator for zone snapshots.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"zonedispatch/internal/config"
	"zonedispatch/internal/domain"
	"zonedispatch/internal/fixtures"
	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/memory"
	"zonedispatch/internal/services"
	"zonedispatch/internal/utils"
	"zonedispatch/pkg/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	file   string
	debug  bool
	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "zonectl",
		Short:        "Evaluate delivery zone snapshots offline",
		Version:      utils.AppVersion,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "zones.yaml", "path to the zone snapshot")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log service activity to stderr")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")

	cmd.AddCommand(locateCmd(opts))
	cmd.AddCommand(recommendCmd(opts))
	cmd.AddCommand(coverageCmd(opts))
	cmd.AddCommand(validateCmd(opts))
	cmd.AddCommand(quoteCmd(opts))

	return cmd
}

type session struct {
	snapshot *fixtures.Snapshot
	engine   domain.ZoneDomainService
	service  services.ZoneService
}

// openSession loads the snapshot and wires an in-memory zone service. The
// policy comes from ZONE_* settings with snapshot overrides on top.
func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	snapshot, err := fixtures.Load(opts.file)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewNopLogger()
	if opts.debug {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(logger.DebugLevel)
	}

	engine := domain.NewZoneDomainService(snapshot.Policy(cfg.Zone.Policy()))
	service := services.NewZoneService(services.ZoneServiceConfig{
		ZoneRepository:       memory.NewZoneRepository(snapshot.Zones...),
		AssignmentRepository: memory.NewZoneAssignmentRepository(snapshot.Assignments...),
		Engine:               engine,
		Logger:               log,
	})

	log.WithField("file", opts.file).Debugf("loaded %d zones and %d assignments", len(snapshot.Zones), len(snapshot.Assignments))

	return &session{snapshot: snapshot, engine: engine, service: service}, nil
}

func (s *session) business(label string) (primitive.ObjectID, error) {
	id, ok := s.snapshot.Business(label)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unknown business %q", label)
	}
	return id, nil
}

func (s *session) zone(name string) (*models.Zone, error) {
	zone := s.snapshot.ZoneByName(name)
	if zone == nil {
		return nil, fmt.Errorf("unknown zone %q", name)
	}
	return zone, nil
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
