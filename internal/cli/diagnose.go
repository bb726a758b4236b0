package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/tui"
)

// diagnosisOutput is the --json shape of a diagnosis
type diagnosisOutput struct {
	domain.Diagnosis
	ShareURL string `json:"shareUrl"`
}

func (a *app) diagnoseCmd() *cobra.Command {
	defaults := domain.DefaultRoomProfile()
	var (
		dir, win, dist string
		obstructed     bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Score a spot's sunlight and recommend plants",
		Example: `  leafit diagnose --dir east --win large --dist medium
  leafit diagnose --dir north --obstructed --json
  leafit diagnose --dir west --remote localhost:50051`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := domain.NewRoomProfile(dir, win, dist, obstructed)
			if err != nil {
				return err
			}

			out, err := a.diagnose(cmd, profile)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiagnosis(out.Diagnosis, out.ShareURL))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", string(defaults.Orientation), "Window direction (north|east|south|west)")
	cmd.Flags().StringVar(&win, "win", string(defaults.WindowSize), "Window size (small|medium|large)")
	cmd.Flags().StringVar(&dist, "dist", string(defaults.Distance), "Distance from the window (near|medium|far)")
	cmd.Flags().BoolVar(&obstructed, "obstructed", false, "Something outside blocks the light")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the diagnosis as JSON")
	return cmd
}

// diagnose runs locally, or on the server when --remote is set
func (a *app) diagnose(cmd *cobra.Command, profile domain.RoomProfile) (diagnosisOutput, error) {
	if a.remote != "" {
		conn, client, err := a.dialRemote()
		if err != nil {
			return diagnosisOutput{}, err
		}
		defer conn.Close()

		resp, err := client.Diagnose(cmd.Context(), profile)
		if err != nil {
			return diagnosisOutput{}, fmt.Errorf("remote diagnosis failed: %w", err)
		}
		return diagnosisOutput{Diagnosis: resp.Diagnosis, ShareURL: resp.ShareURL}, nil
	}

	plants, err := a.loadCatalog()
	if err != nil {
		return diagnosisOutput{}, err
	}
	return diagnosisOutput{
		Diagnosis: domain.Diagnose(profile, plants.All()),
		ShareURL:  domain.ShareURL(a.cfg.BaseURL, profile),
	}, nil
}

func (a *app) decodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <share-url-or-query>",
		Short: "Show the room profile encoded in a share link",
		Example: `  leafit decode 'https://leafit.example.com/?dir=south&win=large&dist=near&obs=0'
  leafit decode 'dir=north&win=small&dist=far&obs=1'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := domain.DecodeShareURL(args[0])
			if !ok {
				return fmt.Errorf("%w: %q is not a complete share link", domain.ErrInvalidProfile, args[0])
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), profile)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProfile(profile))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
