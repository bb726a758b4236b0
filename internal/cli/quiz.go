package cli

import (
	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/tui"
)

func (a *app) quizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Answer the questions interactively and browse shop listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plants, err := a.loadCatalog()
			if err != nil {
				return err
			}
			searcher, err := a.searcher()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), plants.All(), searcher, a.cfg.LookupDelay, a.cfg.BaseURL)
		},
	}
}
