// Package convert runs conversion batches.
//
// The Runner takes a job list and a Converter backend and processes jobs
// strictly sequentially: echo the command line, run the tool, wait, move
// on. A failing job never stops the batch; its outcome is recorded and the
// remaining jobs still run. The aggregate Result reports what happened so
// callers can decide whether partial failure is fatal.
//
// There is deliberately no incremental skip logic: every run does full work
// over the whole job list, so repeated runs over an unchanged corpus are
// exactly repeatable.
package convert
