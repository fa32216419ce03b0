// Package scm creates remote git repositories and pushes the scaffolded
// device content to them. The GitHub REST API handles repository creation
// and the git CLI handles the initial push.
package scm
