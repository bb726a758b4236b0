package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/tui"
)

func (a *app) plantsCmd() *cobra.Command {
	var (
		care    string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List the plant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if care != "" && !slices.Contains(domain.CareLevels, domain.CareLevel(care)) {
				return fmt.Errorf("unknown care level %q", care)
			}

			plants, err := a.listPlants(cmd)
			if err != nil {
				return err
			}
			if care != "" {
				plants = slices.DeleteFunc(plants, func(p domain.Plant) bool {
					return p.CareLevel != domain.CareLevel(care)
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlants(plants, details))
			return nil
		},
	}

	cmd.Flags().StringVar(&care, "care", "", "Only plants of this care level (easy|moderate|advanced)")
	cmd.Flags().BoolVar(&details, "details", false, "Show sunlight, care and watering")
	return cmd
}

func (a *app) listPlants(cmd *cobra.Command) ([]domain.Plant, error) {
	if a.remote != "" {
		conn, client, err := a.dialRemote()
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return client.ListPlants(cmd.Context())
	}

	plants, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	return plants.All(), nil
}

func (a *app) plantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plant <slug>",
		Short: "Show one plant from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plant, err := a.getPlant(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tui.RenderPlants([]domain.Plant{plant}, true))
			fmt.Fprintf(out, "  %s\n", plant.Description)
			if plant.Meaning != "" {
				fmt.Fprintf(out, "  Meaning: %s\n", plant.Meaning)
			}
			if len(plant.Examples) > 0 {
				fmt.Fprintf(out, "  Varieties: %s\n", strings.Join(plant.Examples, ", "))
			}
			return nil
		},
	}
}

func (a *app) getPlant(cmd *cobra.Command, slug string) (domain.Plant, error) {
	if a.remote != "" {
		conn, client, err := a.dialRemote()
		if err != nil {
			return domain.Plant{}, err
		}
		defer conn.Close()
		return client.GetPlant(cmd.Context(), slug)
	}

	plants, err := a.loadCatalog()
	if err != nil {
		return domain.Plant{}, err
	}
	return plants.BySlug(slug)
}
