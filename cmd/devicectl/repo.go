package main

import (
	"fmt"
	"os"

	"github.com/davidc-dev/device-workflow/pkg/chart"
	"github.com/davidc-dev/device-workflow/pkg/provision"
	"github.com/davidc-dev/device-workflow/pkg/types"
	"github.com/spf13/cobra"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create and populate a device git repository",
	Long: `Create a git repository for a device: pull the base helm chart,
write the identity-derived values.yaml and devfile.yaml, create the remote
repository and push the initial commit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceName, _ := cmd.Flags().GetString("device-name")
		deviceID, _ := cmd.Flags().GetString("device-id")
		chartRepo, _ := cmd.Flags().GetString("chart-repo")
		chartName, _ := cmd.Flags().GetString("chart-name")
		chartVersion, _ := cmd.Flags().GetString("chart-version")
		valuesFile, _ := cmd.Flags().GetString("values-file")
		clusterFQDN, _ := cmd.Flags().GetString("cluster-fqdn")

		if clusterFQDN == "" {
			clusterFQDN = cfg.Cluster.AppsDomain
		}

		var valuesYAML string
		if valuesFile != "" {
			data, err := os.ReadFile(valuesFile)
			if err != nil {
				return fmt.Errorf("reading values file: %v", err)
			}
			valuesYAML = string(data)
		}

		provisioner, err := newProvisioner()
		if err != nil {
			return err
		}

		fmt.Printf("Provisioning repository for '%s' (%s)\n", deviceName, deviceID)
		result, err := provisioner.Provision(cmd.Context(), provision.Request{
			Identity:    types.DeviceIdentity{Name: deviceName, ID: deviceID},
			ClusterFQDN: clusterFQDN,
			Chart: chart.Request{
				RepoURL: chartRepo,
				Name:    chartName,
				Version: chartVersion,
			},
			ValuesYAML: valuesYAML,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Repository created: %s\n", result.RepoName)
		fmt.Printf("  Clone URL: %s\n", result.RepoURL)
		return nil
	},
}

func init() {
	provisionCmd.Flags().String("device-name", "", "Device name")
	provisionCmd.Flags().String("device-id", "", "Device ID")
	provisionCmd.Flags().String("chart-repo", "", "Helm chart repository URL (oci:// or https://)")
	provisionCmd.Flags().String("chart-name", "", "Helm chart name (required for non-OCI repositories)")
	provisionCmd.Flags().String("chart-version", "", "Helm chart version (default: latest)")
	provisionCmd.Flags().String("values-file", "", "Custom values.yaml to use verbatim")
	provisionCmd.Flags().String("cluster-fqdn", "", "Cluster application domain for route hosts")
	provisionCmd.MarkFlagRequired("device-name")
	provisionCmd.MarkFlagRequired("device-id")
	provisionCmd.MarkFlagRequired("chart-repo")
}
