package rga

import "github.com/ugparu/gorga"

// Blitter drives one 2D transfer engine. Init and Deinit bracket the
// engine context; Blit runs one synchronous job. Implementations are not
// safe for concurrent use on one instance.
type Blitter interface {
	Init() error                       // Acquires the engine context.
	Deinit()                           // Releases the engine context.
	SetCore(mask gorga.CoreMask) error // Applies a global scheduler core hint.
	Blit(src, dst *Descriptor) error   // Runs one synchronous blit job.
}
