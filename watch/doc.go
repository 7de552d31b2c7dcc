// Package watch implements the optional rebuild-on-change loop.
//
// A filesystem watcher on the input directory filters events down to input
// files, debounces bursts, and triggers a full batch per trigger. Batches
// stay strictly sequential: a trigger during a running batch queues exactly
// one follow-up run. There is no per-file incremental rebuild.
package watch
