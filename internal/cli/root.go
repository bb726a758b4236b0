package cli

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/rakuten"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/pkg/tlsconfig"
)

// app carries state shared by every command
type app struct {
	v          *viper.Viper
	configFile string
	remote     string
	cfg        *config.Config
}

// NewRootCmd builds the leafit command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "leafit",
		Short: "Find houseplants that suit your room's sunlight",
		Long: `Leafit scores how much sunlight a spot in your room gets from the window
direction, window size, distance and obstructions, then recommends houseplants
that will thrive there.

Commands run against the built-in plant catalog, or against a diagnosis
server with --remote.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			a.cfg = cfg
			return config.SetupLogging(cfg.LogLevel, cfg.LogFormat)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default ./leafit.yaml if present)")
	flags.StringVar(&a.remote, "remote", "", "Address of a diagnosis server, e.g. localhost:50051")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("catalog", "", "Glob of extra catalog files, e.g. 'plants/**/*.yaml'")
	flags.String("base-url", "", "Public site address used in share links")

	a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	a.v.BindPFlag("catalog_glob", flags.Lookup("catalog"))
	a.v.BindPFlag("base_url", flags.Lookup("base-url"))

	root.AddCommand(
		a.diagnoseCmd(),
		a.decodeCmd(),
		a.plantsCmd(),
		a.plantCmd(),
		a.productsCmd(),
		a.quizCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.LoadWithOverlays(a.cfg.CatalogGlob)
	if err != nil {
		return nil, fmt.Errorf("error loading plant catalog: %w", err)
	}
	return c, nil
}

// dialRemote connects to --remote, with mTLS when TLS_CERT is configured
func (a *app) dialRemote() (*grpc.ClientConn, *grpcAdapter.Client, error) {
	var tlsCfg *tls.Config
	if a.cfg.TLSCert != "" {
		var err error
		tlsCfg, err = tlsconfig.LoadClientTLS(a.cfg.TLSCert, a.cfg.TLSKey, a.cfg.TLSCA)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading TLS config: %w", err)
		}
	}

	conn, err := grpcAdapter.Dial(a.remote, tlsCfg)
	if err != nil {
		return nil, nil, err
	}
	return conn, grpcAdapter.NewClient(conn), nil
}

// searcher builds the configured product searcher behind an in-memory cache
func (a *app) searcher() (ports.ProductSearcher, error) {
	var next ports.ProductSearcher
	switch a.cfg.SearcherType {
	case "rakuten":
		client, err := rakuten.NewClient(rakuten.Config{
			ApplicationID: a.cfg.RakutenAppID,
			AffiliateID:   a.cfg.RakutenAffiliateID,
		})
		if err != nil {
			return nil, err
		}
		next = client
	default:
		next = mock.NewFakeSearcher(5)
	}
	return ports.NewCachingSearcher(next, memory.NewProductCache(), a.cfg.CacheTTL), nil
}
