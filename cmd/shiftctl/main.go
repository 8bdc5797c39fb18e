package main

import (
	"os"

	"github.com/spf13/cobra"

	"shiftpay/config"
	"shiftpay/internal/app/service"
	"shiftpay/internal/repository"
	"shiftpay/pkg/workerpool"
)

var (
	cfg            *config.Config
	store          *repository.Store
	pool           *workerpool.WorkerPool
	profileService *service.ProfileService
	shiftService   *service.ShiftServiceImpl
)

var rootCmd = &cobra.Command{
	Use:          "shiftctl",
	Short:        "Shift log and earnings from the command line",
	Long:         `shiftctl manages salary profiles and shifts in the same database the bot uses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadCLIConfig()
		if err != nil {
			return err
		}
		store, err = repository.Open(cfg.DatabaseURL, cfg.DatabasePath)
		if err != nil {
			return err
		}
		pool = workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
		profileService = service.NewProfileService(store.Profiles)
		shiftService = &service.ShiftServiceImpl{
			Repo:     store.Shifts,
			Profiles: profileService,
			Location: cfg.Location,
			Pool:     pool,
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if pool != nil {
			pool.Close()
		}
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(recalcCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
