/*
Package log provides structured logging for the device workflow service using
zerolog.

The package wraps zerolog behind a global logger configured once via Init.
Output is JSON in production and human-readable console format in development.
Child loggers carry stable context fields:

	workflowLog := log.WithComponent("deploy")
	deviceLog := log.WithDevice("sensor-lab", "42")
	appLog := log.WithApp("device-sensor-lab-42")

All packages log through this package so that every line carries a timestamp
and, where applicable, the device or application it concerns.
*/
package log
