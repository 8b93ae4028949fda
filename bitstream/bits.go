// Package bitstream reads and writes the coded stream: bit-level I/O with
// interleaved exponential-Golomb coding, the data unit structures, and the
// parse_info framing which glues data units into a sequence.
package bitstream

import (
	"io"
	"math/bits"
)

// BitWriter writes a bitstream to an io.Writer, most significant bit first.
// Errors are sticky: after a write fails every later call is a no-op and
// Err() reports the first failure.
type BitWriter struct {
	w       io.Writer
	current byte
	used    int
	written int64
	err     error
}

func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: w}
}

// Err returns the first error encountered, if any.
func (bw *BitWriter) Err() error { return bw.err }

// Tell returns the number of whole bytes emitted so far.
func (bw *BitWriter) Tell() int64 { return bw.written }

// Aligned reports whether the writer sits on a byte boundary.
func (bw *BitWriter) Aligned() bool { return bw.used == 0 }

func (bw *BitWriter) WriteBit(bit int) {
	if bw.err != nil {
		return
	}
	bw.current = bw.current<<1 | byte(bit&1)
	bw.used++
	if bw.used == 8 {
		_, bw.err = bw.w.Write([]byte{bw.current})
		bw.current = 0
		bw.used = 0
		bw.written++
	}
}

func (bw *BitWriter) WriteBool(v bool) {
	if v {
		bw.WriteBit(1)
	} else {
		bw.WriteBit(0)
	}
}

// WriteNBits writes the n least significant bits of value, most significant
// first.
func (bw *BitWriter) WriteNBits(n int, value uint64) {
	for i := n - 1; i >= 0; i-- {
		bw.WriteBit(int(value >> uint(i) & 1))
	}
}

// WriteUint writes an unsigned interleaved exp-Golomb code (A.4.3): the bits
// of value+1 below its leading one, each preceded by a zero continuation
// bit, terminated by a one.
func (bw *BitWriter) WriteUint(value uint64) {
	v := value + 1
	for i := bits.Len64(v) - 2; i >= 0; i-- {
		bw.WriteBit(0)
		bw.WriteBit(int(v >> uint(i) & 1))
	}
	bw.WriteBit(1)
}

// WriteSint writes a signed interleaved exp-Golomb code: the magnitude
// followed by a sign bit when non-zero.
func (bw *BitWriter) WriteSint(value int64) {
	magnitude := value
	if magnitude < 0 {
		magnitude = -magnitude
	}
	bw.WriteUint(uint64(magnitude))
	if value > 0 {
		bw.WriteBit(0)
	} else if value < 0 {
		bw.WriteBit(1)
	}
}

// ByteAlign pads to the next byte boundary with zero bits.
func (bw *BitWriter) ByteAlign() {
	for bw.used != 0 {
		bw.WriteBit(0)
	}
}

// WriteBytes writes whole bytes. The writer must be byte aligned.
func (bw *BitWriter) WriteBytes(p []byte) {
	if bw.err != nil {
		return
	}
	if bw.used != 0 {
		bw.err = ErrNotByteAligned
		return
	}
	n, err := bw.w.Write(p)
	bw.written += int64(n)
	bw.err = err
}

// BitReader reads a bitstream from an io.Reader, most significant bit first.
// Errors are sticky; reads after an error return zero. A short read surfaces
// as io.ErrUnexpectedEOF.
type BitReader struct {
	r       io.Reader
	current byte
	left    int
	read    int64
	err     error
}

func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{r: r}
}

// Err returns the first error encountered, if any.
func (br *BitReader) Err() error { return br.err }

// Tell returns the number of whole bytes consumed from the underlying
// reader.
func (br *BitReader) Tell() int64 { return br.read }

// Aligned reports whether the reader sits on a byte boundary.
func (br *BitReader) Aligned() bool { return br.left == 0 }

func (br *BitReader) ReadBit() int {
	if br.err != nil {
		return 0
	}
	if br.left == 0 {
		var buf [1]byte
		if _, err := io.ReadFull(br.r, buf[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			br.err = err
			return 0
		}
		br.current = buf[0]
		br.left = 8
		br.read++
	}
	br.left--
	return int(br.current >> uint(br.left) & 1)
}

func (br *BitReader) ReadBool() bool {
	return br.ReadBit() == 1
}

// ReadNBits reads n bits, most significant first.
func (br *BitReader) ReadNBits(n int) uint64 {
	var out uint64
	for i := 0; i < n; i++ {
		out = out<<1 | uint64(br.ReadBit())
	}
	return out
}

// ReadUint reads an unsigned interleaved exp-Golomb code.
func (br *BitReader) ReadUint() uint64 {
	value := uint64(1)
	for br.err == nil && br.ReadBit() == 0 {
		value = value<<1 | uint64(br.ReadBit())
	}
	return value - 1
}

// ReadSint reads a signed interleaved exp-Golomb code.
func (br *BitReader) ReadSint() int64 {
	magnitude := int64(br.ReadUint())
	if magnitude != 0 && br.ReadBit() == 1 {
		magnitude = -magnitude
	}
	return magnitude
}

// ByteAlign discards bits up to the next byte boundary.
func (br *BitReader) ByteAlign() {
	br.left = 0
}

// ReadBytes reads whole bytes. The reader must be byte aligned.
func (br *BitReader) ReadBytes(n int) []byte {
	if br.err != nil {
		return nil
	}
	if br.left != 0 {
		br.err = ErrNotByteAligned
		return nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(br.r, buf)
	br.read += int64(read)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.err = err
		return nil
	}
	return buf
}
