package rle

// Escape markers.
const (
	MarkerZero byte = 0x55
	MarkerOne  byte = 0xaa
)

// DecodeState is the state of the decoder between two input bytes.
type DecodeState int

const (
	// StateGround means no escape is pending.
	StateGround DecodeState = iota
	// StateEscape means a marker was just consumed.
	StateEscape
	// StateRunLength means the low 7 bits of a long run are captured.
	StateRunLength
)

// String implements fmt.Stringer.
func (s DecodeState) String() string {
	switch s {
	case StateGround:
		return "ground"
	case StateEscape:
		return "escape"
	case StateRunLength:
		return "run-length"
	}
	return "unknown"
}

// Decoder expands the stream into frames.
// The zero value is ready to use.
type Decoder struct {
	pos          int
	state        DecodeState
	escape       byte
	runLength    int
	bytesWritten int
}

// NewDecoder creates a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Reset rewinds the decoder to the beginning of the stream.
func (d *Decoder) Reset() {
	*d = Decoder{}
}

// Position returns the index of the next byte to consume.
func (d *Decoder) Position() int {
	return d.pos
}

// BytesWritten returns the number of bytes produced for the current frame.
func (d *Decoder) BytesWritten() int {
	return d.bytesWritten
}

// State returns the current decode state.
func (d *Decoder) State() DecodeState {
	return d.state
}

// Escape returns the active escape marker, ok is false in ground state.
func (d *Decoder) Escape() (marker byte, ok bool) {
	if d.state == StateGround {
		return 0, false
	}
	return d.escape, true
}

// DecodeFrame consumes stream bytes until frame is full or the stream is
// exhausted. It returns true when a complete frame is available in frame.
// When called with the stream already consumed, decoding restarts from
// the beginning of the stream.
func (d *Decoder) DecodeFrame(frame *Frame, stream []byte) bool {
	if d.pos >= len(stream) {
		d.Reset()
	}
	for d.bytesWritten < FrameSize && d.pos < len(stream) {
		d.decodeByte(frame, stream[d.pos])
		d.pos++
	}
	if d.bytesWritten == FrameSize {
		d.bytesWritten = 0
		return true
	}
	return false
}

func (d *Decoder) decodeByte(frame *Frame, c byte) {
	switch d.state {
	case StateGround:
		if c == MarkerZero || c == MarkerOne {
			d.escape, d.state = c, StateEscape
			return
		}
		d.put(frame, c, 1)
	case StateEscape:
		switch {
		case c == 0:
			d.put(frame, d.escape, 1)
			d.state = StateGround
		case c&0x80 == 0:
			d.put(frame, d.runValue(), int(c))
			d.state = StateGround
		default:
			d.runLength, d.state = int(c&0x7f), StateRunLength
		}
	case StateRunLength:
		d.put(frame, d.runValue(), d.runLength|int(c)<<7)
		d.runLength, d.state = 0, StateGround
	}
}

func (d *Decoder) runValue() byte {
	if d.escape == MarkerZero {
		return 0
	}
	return 0xff
}

// put writes count copies of b, anything beyond the frame is dropped.
func (d *Decoder) put(frame *Frame, b byte, count int) {
	end := d.bytesWritten + count
	if end > FrameSize {
		end = FrameSize
	}
	for i := d.bytesWritten; i < end; i++ {
		frame[i] = b
	}
	d.bytesWritten = end
}
