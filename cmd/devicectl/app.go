package main

import (
	"fmt"

	"github.com/davidc-dev/device-workflow/pkg/deploy"
	"github.com/davidc-dev/device-workflow/pkg/inventory"
	"github.com/davidc-dev/device-workflow/pkg/types"
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Create or replace a device application in the controller",
	Long: `Upsert the device's Application in the CD controller and request an
immediate sync. With --yaml-only the manifest is printed without any
controller interaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := deployRequestFromFlags(cmd)

		var orchestrator *deploy.Orchestrator
		if req.YAMLOnly {
			orchestrator = deploy.NewOrchestrator(nil)
		} else {
			controller, err := newControllerClient()
			if err != nil {
				return err
			}
			orchestrator = deploy.NewOrchestrator(controller)
		}

		result, err := orchestrator.Deploy(cmd.Context(), req)
		if err != nil {
			return err
		}

		if req.YAMLOnly {
			fmt.Print(result.YAML)
			return nil
		}

		fmt.Printf("✓ Application %s %s\n", result.AppName, result.Status)
		if result.SyncError != "" {
			fmt.Printf("  Sync request failed (controller will converge later): %s\n", result.SyncError)
		}
		return nil
	},
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Render the device application manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := deployRequestFromFlags(cmd)
		req.YAMLOnly = true

		result, err := deploy.NewOrchestrator(nil).Deploy(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Print(result.YAML)
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices known to the controller",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newControllerClient()
		if err != nil {
			return err
		}

		records, err := inventory.NewReconciler(controller, cfg.Cluster.AppsDomain).List(cmd.Context())
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No applications found.")
			return nil
		}

		fmt.Printf("%-30s %-20s %-10s %-10s %s\n", "APP", "DEVICE", "HEALTH", "SYNC", "NAMESPACE")
		for _, rec := range records {
			device := rec.Identity.Name
			if rec.Identity.ID != "" {
				device = fmt.Sprintf("%s (%s)", rec.Identity.Name, rec.Identity.ID)
			}
			fmt.Printf("%-30s %-20s %-10s %-10s %s\n",
				rec.AppName, device, rec.Health, rec.SyncStatus, rec.Namespace)
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync APP_NAME",
	Short: "Request an immediate sync for an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newControllerClient()
		if err != nil {
			return err
		}

		if _, err := controller.SyncApplication(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Sync requested for %s\n", args[0])
		return nil
	},
}

// deployRequestFromFlags builds a deploy request shared by deploy and manifest.
func deployRequestFromFlags(cmd *cobra.Command) deploy.Request {
	deviceName, _ := cmd.Flags().GetString("device-name")
	deviceID, _ := cmd.Flags().GetString("device-id")
	repoURL, _ := cmd.Flags().GetString("repo-url")
	destServer, _ := cmd.Flags().GetString("dest-server")
	destNamespace, _ := cmd.Flags().GetString("dest-namespace")
	yamlOnly, _ := cmd.Flags().GetBool("yaml-only")

	return deploy.Request{
		Identity:             types.DeviceIdentity{Name: deviceName, ID: deviceID},
		RepoURL:              repoURL,
		DestinationServer:    destServer,
		DestinationNamespace: destNamespace,
		YAMLOnly:             yamlOnly,
	}
}

func addManifestFlags(cmd *cobra.Command) {
	cmd.Flags().String("device-name", "", "Device name")
	cmd.Flags().String("device-id", "", "Device ID")
	cmd.Flags().String("repo-url", "", "Device GitOps repository URL")
	cmd.Flags().String("dest-server", "", "Destination cluster API server")
	cmd.Flags().String("dest-namespace", "", "Destination namespace")
	cmd.MarkFlagRequired("device-name")
	cmd.MarkFlagRequired("device-id")
	cmd.MarkFlagRequired("repo-url")
}

func init() {
	addManifestFlags(deployCmd)
	deployCmd.Flags().Bool("yaml-only", false, "Render the manifest without calling the controller")

	addManifestFlags(manifestCmd)
}
