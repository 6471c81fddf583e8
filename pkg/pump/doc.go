// Package pump drives the decoder and a display at a fixed frame rate.
//
// Each cycle decodes one frame, renders it and sleeps for whatever is left
// of the frame interval. Pacing is best effort: a cycle which overruns the
// interval is followed immediately by the next one, nothing is skipped.
package pump
