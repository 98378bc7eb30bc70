// mms-metricsd is the host metrics agent for the model server.
//
// It samples host utilization (CPU, memory, disk) on a schedule, emits
// the samples as model-server metric lines on stdout, republishes them
// for Prometheus scrapers, and keeps a local SQLite history.
//
// Usage:
//
//	# Start the agent with the default configuration
//	mms-metricsd run
//
//	# Start with a custom configuration file
//	mms-metricsd run --config /etc/mms/metricsd.yaml
//
//	# Check a configuration file without starting
//	mms-metricsd validate --config /etc/mms/metricsd.yaml
//
//	# Show version information
//	mms-metricsd version
package main

func main() {
	Execute()
}
