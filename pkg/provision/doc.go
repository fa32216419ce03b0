// Package provision implements the device repository creation flow. It
// composes the chart fetcher, the file scaffolder and the SCM layer into a
// single operation that leaves no local state behind: all work happens in a
// temporary directory that is removed when the flow ends.
package provision
