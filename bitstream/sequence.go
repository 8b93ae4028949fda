package bitstream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// EncodeDataUnitBody serializes the payload of a data unit, excluding the
// parse_info framing. The geometry needed to size picture slices is implied
// by the slice contents, so none is required here.
func EncodeDataUnitBody(unit *DataUnit) ([]byte, error) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	switch unit.ParseCode {
	case vc2.ParseCodeSequenceHeader:
		WriteSequenceHeader(bw, unit.SequenceHeader)
	case vc2.ParseCodeHighQualityPicture:
		if err := WritePictureParse(bw, unit.Picture); err != nil {
			return nil, err
		}
	case vc2.ParseCodePaddingData, vc2.ParseCodeAuxiliaryData:
		bw.WriteBytes(unit.Payload)
	case vc2.ParseCodeEndOfSequence:
		// No body.
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownParseCode, int(unit.ParseCode))
	}
	bw.ByteAlign()
	if err := bw.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeParseInfo(w io.Writer, info ParseInfo) error {
	var buf [ParseInfoSize]byte
	copy(buf[:4], parseInfoPrefix[:])
	buf[4] = byte(info.ParseCode)
	putUint32(buf[5:9], info.NextParseOffset)
	putUint32(buf[9:13], info.PreviousParseOffset)
	_, err := w.Write(buf[:])
	return err
}

func putUint32(p []byte, v uint32) {
	p[0] = byte(v >> 24)
	p[1] = byte(v >> 16)
	p[2] = byte(v >> 8)
	p[3] = byte(v)
}

func getUint32(p []byte) uint32 {
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

// WriteSequence serializes a whole sequence, chaining the data units
// together with parse_info offsets: each block's next offset spans the block
// and its body, the previous offset points back at the preceding block, and
// the end of sequence block's next offset is zero.
func WriteSequence(w io.Writer, seq *Sequence) error {
	previous := uint32(0)
	for i := range seq.DataUnits {
		unit := &seq.DataUnits[i]
		body, err := EncodeDataUnitBody(unit)
		if err != nil {
			return err
		}

		next := uint32(0)
		if unit.ParseCode != vc2.ParseCodeEndOfSequence {
			next = uint32(ParseInfoSize + len(body))
		}
		if err := writeParseInfo(w, ParseInfo{unit.ParseCode, next, previous}); err != nil {
			return err
		}
		if _, err := w.Write(body); err != nil {
			return err
		}
		previous = uint32(ParseInfoSize + len(body))
	}
	return nil
}

// Unit is one data unit as read from a stream: its framing header, its raw
// body bytes and the byte offset of the parse_info block within the stream.
type Unit struct {
	Offset    int64
	ParseInfo ParseInfo
	Body      []byte
}

// Reader splits a stream into framed data units without interpreting their
// bodies. Body parsing is left to the caller, which knows the current video
// format.
type Reader struct {
	r      io.Reader
	offset int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the byte position of the next unread parse_info block.
func (r *Reader) Offset() int64 { return r.offset }

// Next reads the next data unit. At a clean end of input it returns io.EOF;
// a stream truncated part way through a unit returns io.ErrUnexpectedEOF.
//
// The body length is taken from the next parse offset. An end of sequence
// block has no body; any other block must carry an explicit next offset.
func (r *Reader) Next() (*Unit, error) {
	var header [ParseInfoSize]byte
	n, err := io.ReadFull(r.r, header[:])
	if err == io.EOF && n == 0 {
		return nil, io.EOF
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	unit := &Unit{Offset: r.offset}
	r.offset += ParseInfoSize

	if !bytes.Equal(header[:4], parseInfoPrefix[:]) {
		return nil, fmt.Errorf("%w at offset %d", ErrBadParseInfoPrefix, unit.Offset)
	}
	unit.ParseInfo = ParseInfo{
		ParseCode:           vc2.ParseCode(header[4]),
		NextParseOffset:     getUint32(header[5:9]),
		PreviousParseOffset: getUint32(header[9:13]),
	}
	if !unit.ParseInfo.ParseCode.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02X at offset %d",
			ErrUnknownParseCode, header[4], unit.Offset)
	}

	bodyLen := 0
	if unit.ParseInfo.ParseCode != vc2.ParseCodeEndOfSequence {
		if unit.ParseInfo.NextParseOffset < ParseInfoSize {
			return nil, fmt.Errorf("%w: %d at offset %d does not span the parse info block",
				ErrBadNextParseOffset, unit.ParseInfo.NextParseOffset, unit.Offset)
		}
		bodyLen = int(unit.ParseInfo.NextParseOffset) - ParseInfoSize
	}
	unit.Body = make([]byte, bodyLen)
	if _, err := io.ReadFull(r.r, unit.Body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.offset += int64(bodyLen)
	return unit, nil
}
