// Package jobsystem runs units of work concurrently on behalf of a host that
// is driven by its own loop (a game loop, a UI tick, a simulation step) and
// hands their results back on the host's goroutine.
//
// # Submitting Jobs
//
// A [System] starts every submitted job on its own goroutine immediately.
// There are four ways to submit, depending on whether the work produces a
// value and whether the outcome should be delivered by polling or waiting:
//
//	js := jobsystem.New()
//
//	js.SubmitThen("load-level", loadLevel, func() {
//	    fmt.Println("level loaded")
//	})
//	jobsystem.SubmitValueThen(js, "count", countEntities, func(n *int) {
//	    fmt.Println("entities:", *n)
//	})
//
//	w := js.Submit("flush", flush)
//	v := jobsystem.SubmitValue(js, "answer", func() int { return 42 })
//
// # Polling
//
// [System.Poll] makes one non-blocking pass over the tracked jobs. Each
// finished job has its callback run on the polling goroutine and is then
// removed. A host loop calls Poll once per tick until [System.HasPending]
// reports false:
//
//	for js.HasPending() {
//	    js.Poll()
//	    tick()
//	}
//
// Callbacks may submit new jobs; those are picked up by later passes.
//
// # Waiting
//
// [Waiter.Wait] blocks until its job finishes and delivers it at once, out
// of band. [ValueWaiter.Result] then returns the produced value. Delivery
// happens exactly once per job: waiting twice, or polling after a wait,
// does not run the callback again. The job is still removed by Poll.
//
// # Faults
//
// A panic inside a job is captured on the job goroutine as a [*PanicError]
// and surfaces only when the job is delivered, on the goroutine calling
// Poll or Wait. By default it is re-raised with panic there; with
// [WithPanicAsError] it is returned as a [*JobError] instead. A faulted job
// never runs its callback. Use [IsJobError], [JobOf] and [CauseOf] to
// inspect returned faults.
//
// # Concurrency
//
// A System and its waiters belong to one goroutine. Job goroutines only
// touch their own finished flag and one-shot outcome channel. By default
// the number of running jobs is unbounded; [WithLimit] caps it with a
// [Semaphore] without making Submit block.
//
// # Observability
//
// [WithLogger] sets a [log/slog] logger (debug records for submit, deliver
// and reap; warn for faults). [WithMeter] sets the OpenTelemetry meter for
// the jobsystem.job.* instruments. [WithOnStart] and [WithOnDone] register
// hooks run on job goroutines, and [System.Stats] returns counters.
//
// # Configuration
//
// [Config] is the YAML file form of the limit and fault settings; see
// [LoadConfig] and [Config.Options].
package jobsystem
