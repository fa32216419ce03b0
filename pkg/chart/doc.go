// Package chart fetches helm charts through the helm CLI and unpacks their
// contents into a device repository working directory. Both OCI references
// and classic chart repositories are supported.
package chart
