// Package scaffold renders the files seeded into a freshly created device
// repository: the helm values.yaml carrying the device identity and route
// host, and the devfile.yaml that opens the repository in a cloud workspace.
package scaffold
