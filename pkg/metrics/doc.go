// Package metrics implements the per-batch metrics buffer used by model
// workers.
//
// # Overview
//
// A worker creates one Store per inference batch, records counters,
// timers, sizes, percentages and error events while the batch is being
// handled, and hands the accumulated metrics to an emitter when the
// batch completes. Repeated emissions of the same metric (same name,
// unit, request id and dimension sequence) are folded into a single
// Metric via its Update method instead of appending duplicates.
//
// # Usage
//
//	store := metrics.NewStore(metrics.ForBatch(map[int]string{
//	    0: "req-a",
//	    1: "req-b",
//	}), "resnet-18")
//
//	store.AddCounter("Requests", 1, 0)
//	if err := store.AddTime("InferenceLatency", 41.2, 0, "ms"); err != nil {
//	    return err
//	}
//	store.AddError("InferenceFailed", "worker out of memory")
//
//	emitter := metrics.NewLogEmitter(os.Stdout)
//	emitter.Emit(store)
//
// # Concurrency
//
// A Store is owned by a single request-handling goroutine and provides
// no internal locking. Workers that fan a batch out across goroutines
// must either give each goroutine its own Store or serialize access
// externally.
package metrics
