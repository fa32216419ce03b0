package main

import (
	"fmt"
	"os"

	"github.com/davidc-dev/device-workflow/pkg/argocd"
	"github.com/davidc-dev/device-workflow/pkg/chart"
	"github.com/davidc-dev/device-workflow/pkg/config"
	"github.com/davidc-dev/device-workflow/pkg/log"
	"github.com/davidc-dev/device-workflow/pkg/provision"
	"github.com/davidc-dev/device-workflow/pkg/scm"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	cfgFile string
	cfg     config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devicectl",
	Short: "Devicectl - GitOps provisioning for edge devices",
	Long: `Devicectl provisions per-device GitOps repositories and drives their
deployment through a CD controller: it scaffolds a git repository from a
helm chart, registers the matching Application with the controller and
reports the live device inventory.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile, os.Getenv)
		if err != nil {
			return err
		}
		log.Init(log.Config{
			Level:      log.Level(cfg.Log.Level),
			JSONOutput: cfg.Log.JSON,
		})
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Devicectl version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(syncCmd)
}

// newControllerClient builds the CD controller client from config.
func newControllerClient() (*argocd.Client, error) {
	if cfg.ArgoCD.URL == "" || cfg.ArgoCD.Token == "" {
		return nil, fmt.Errorf("ARGOCD_URL and ARGOCD_TOKEN must be set")
	}
	return argocd.NewClient(argocd.Config{
		APIURL:      cfg.ArgoCD.URL,
		AuthToken:   cfg.ArgoCD.Token,
		InsecureTLS: cfg.ArgoCD.InsecureTLS,
		Timeout:     cfg.ArgoCD.Timeout,
	})
}

// newProvisioner builds the repository provisioner from config.
func newProvisioner() (*provision.Provisioner, error) {
	if cfg.GitHub.Token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN must be set")
	}
	provider, err := scm.NewGitHubProvider(scm.GitHubConfig{
		Token:  cfg.GitHub.Token,
		APIURL: cfg.GitHub.APIURL,
	})
	if err != nil {
		return nil, err
	}
	pusher := scm.NewGitPusher(cfg.GitHub.Username, cfg.GitHub.Token)
	return provision.NewProvisioner(chart.NewCLIFetcher(), provider, pusher), nil
}
