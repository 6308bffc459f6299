// Package intake runs an EventLinker behind a single goroutine.
//
// A linker must be driven by one goroutine at a time, and the order in which
// events and window updates reach it decides which parents are found. Stage
// owns the linker: producers Submit events and UpdateWindow windows onto one
// ordered queue, and Run applies them in that order, handing every linked
// event to a Consumer.
//
//	stage := intake.NewStage(conf, l, func(e *hashgraph.LinkedEvent) { ... })
//	go stage.Run(ctx)
//	stage.Submit(ctx, event)
//	stage.UpdateWindow(ctx, window)
//	stage.Flush(ctx)
//	stage.Close()
package intake
