// Package promexport republishes finished per-batch metric stores as
// Prometheus series.
//
// # Overview
//
// The worker-side Store keeps metrics in the model server's own line
// format; promexport is the bridge to Prometheus scrapers. A Publisher
// owns three pre-registered metric families:
//
//   - counter-method metrics are summed into a CounterVec
//   - every other numeric metric sets a GaugeVec (last value wins)
//   - error records increment an error CounterVec
//
// All three are labelled {name, unit, model_name, level}. Request ids
// are deliberately not labels: one series per request would blow up
// cardinality on a busy worker.
//
// # Usage
//
//	pub, err := promexport.NewPublisher(promexport.Config{
//	    Namespace: "mms",
//	    Subsystem: "worker",
//	}, registry)
//	...
//	pub.Publish(store) // after each batch
package promexport
