package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidc-dev/device-workflow/pkg/api"
	"github.com/davidc-dev/device-workflow/pkg/deploy"
	"github.com/davidc-dev/device-workflow/pkg/inventory"
	"github.com/davidc-dev/device-workflow/pkg/metrics"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the device workflow HTTP server",
	Long: `Run the HTTP server exposing repository provisioning, application
deployment, inventory listing and manual sync.

Collaborators that are not configured leave their endpoints responding 503:
a server without GITHUB_TOKEN still serves deployments, and a server without
ARGOCD_URL still renders manifests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics.SetVersion(Version)

		var (
			deployer    api.Deployer
			provisioner api.Provisioner
			inv         api.Inventory
			syncer      api.Syncer
		)

		controller, err := newControllerClient()
		if err != nil {
			// Manifest rendering must keep working without controller
			// credentials, so the deployer is always wired.
			fmt.Printf("  Controller API disabled: %v\n", err)
			deployer = deploy.NewOrchestrator(nil)
			metrics.RegisterComponent("argocd", false, err.Error())
		} else {
			deployer = deploy.NewOrchestrator(controller)
			inv = inventory.NewReconciler(controller, cfg.Cluster.AppsDomain)
			syncer = controller

			pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			if err := controller.Ping(pingCtx); err != nil {
				metrics.RegisterComponent("argocd", false, err.Error())
			} else {
				metrics.RegisterComponent("argocd", true, "")
			}
			cancel()
		}

		prov, err := newProvisioner()
		if err != nil {
			fmt.Printf("  Repository provisioning disabled: %v\n", err)
			metrics.RegisterComponent("github", false, err.Error())
		} else {
			provisioner = prov
			metrics.RegisterComponent("github", true, "")
		}

		server := api.NewServer(api.Options{
			ListenAddr:  cfg.Server.ListenAddr,
			CORSOrigins: cfg.Server.CORSOrigins,
			AppsDomain:  cfg.Cluster.AppsDomain,
		}, deployer, provisioner, inv, syncer)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		fmt.Printf("Server listening on %s. Press Ctrl+C to stop.\n", cfg.Server.ListenAddr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigCh:
			fmt.Println("\nShutting down...")
		case err := <-errCh:
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown: %v", err)
		}

		fmt.Println("✓ Shutdown complete")
		return nil
	},
}
