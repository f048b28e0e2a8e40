package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Nader-Awad/COMP4050BAMBrazil/api"
	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
	"github.com/Nader-Awad/COMP4050BAMBrazil/notify"
	"github.com/Nader-Awad/COMP4050BAMBrazil/storage"
)

var (
	outputJSON bool
	actorID    string
	cfg        Config
)

type Config struct {
	OpenTime          string  `yaml:"open_time"`
	CloseTime         string  `yaml:"close_time"`
	SlotMinutes       int     `yaml:"slot_minutes"`
	FairnessThreshold *int    `yaml:"fairness_threshold"`
	DBPath            string  `yaml:"db_path"`
	SessionTrackerURL string  `yaml:"session_tracker_url"`
	AMQPURL           string  `yaml:"amqp_url"`
	AMQPQueue         string  `yaml:"amqp_queue"`
	Actors            []Actor `yaml:"actors"`
}

type Actor struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

var rootCmd = &cobra.Command{
	Use:   "labbook",
	Short: "Lab equipment reservation CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if actorID == "" {
			actorID = os.Getenv("LABBOOK_ACTOR")
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(requestCmd())
	rootCmd.AddCommand(decideCmd())
	rootCmd.AddCommand(reservationsCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(conflictsCmd())
	rootCmd.AddCommand(queueCmd())
	rootCmd.AddCommand(resourcesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output JSON")
	rootCmd.PersistentFlags().StringVar(&actorID, "as", "", "Acting user id")
}

func initConfig() {
	loaded, err := loadConfig()
	if err == nil {
		cfg = loaded
	}
}

func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("config path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "labbook", "config.yaml"), nil
}

func configuredGrid() (booking.Grid, error) {
	grid := booking.DefaultGrid()
	if cfg.OpenTime != "" {
		open, err := parseClock(cfg.OpenTime)
		if err != nil {
			return booking.Grid{}, fmt.Errorf("open_time: %w", err)
		}
		grid.OpenMinute = open
	}
	if cfg.CloseTime != "" {
		closeMin, err := parseClock(cfg.CloseTime)
		if err != nil {
			return booking.Grid{}, fmt.Errorf("close_time: %w", err)
		}
		grid.CloseMinute = closeMin
	}
	if cfg.SlotMinutes > 0 {
		grid.SlotMinutes = cfg.SlotMinutes
	}
	return grid, nil
}

// roleAuthorizer is the capability check backed by the configured
// actor list: teachers and admins decide reservations.
type roleAuthorizer struct {
	roles map[string]string
}

func newAuthorizer(actors []Actor) roleAuthorizer {
	roles := make(map[string]string, len(actors))
	for _, actor := range actors {
		roles[actor.ID] = strings.ToLower(actor.Role)
	}
	return roleAuthorizer{roles: roles}
}

func (a roleAuthorizer) CanDecide(actorID, resourceID string) bool {
	role := a.roles[actorID]
	return role == "teacher" || role == "admin"
}

func lookupActor(id string) (Actor, bool) {
	for _, actor := range cfg.Actors {
		if actor.ID == id {
			return actor, true
		}
	}
	return Actor{}, false
}

func requireActor() (Actor, error) {
	if actorID == "" {
		return Actor{}, fmt.Errorf("--as is required (or set LABBOOK_ACTOR)")
	}
	actor, ok := lookupActor(actorID)
	if !ok {
		return Actor{ID: actorID, Name: actorID}, nil
	}
	return actor, nil
}

// openService wires the engine: sqlite store, resource registry,
// role authorizer and the configured notifiers. The returned closer
// releases the store and any AMQP connection.
func openService() (*booking.Service, func(), error) {
	grid, err := configuredGrid()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.OpenReservationsDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	registry, err := storage.LoadResources()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	var notifiers notify.Multi
	var publisher *notify.AMQPPublisher
	if cfg.AMQPURL != "" {
		publisher, err = notify.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		notifiers = append(notifiers, publisher)
	}
	if cfg.SessionTrackerURL != "" {
		notifiers = append(notifiers, notify.Tracker{Client: api.NewClient(cfg.SessionTrackerURL)})
	}
	var notifier booking.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	service, err := booking.NewService(booking.ServiceConfig{
		Store:             store,
		Registry:          registry,
		Grid:              grid,
		Authorizer:        newAuthorizer(cfg.Actors),
		Notifier:          notifier,
		FairnessThreshold: cfg.FairnessThreshold,
	})
	if err != nil {
		_ = store.Close()
		if publisher != nil {
			_ = publisher.Close()
		}
		return nil, nil, err
	}

	closer := func() {
		_ = store.Close()
		if publisher != nil {
			_ = publisher.Close()
		}
	}
	return service, closer, nil
}
