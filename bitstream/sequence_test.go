package bitstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vc2tools/go-vc2-conformance/vc2"
)

func minimalSequence() *Sequence {
	return &Sequence{DataUnits: []DataUnit{
		{
			ParseCode: vc2.ParseCodeSequenceHeader,
			SequenceHeader: &SequenceHeader{
				ParseParameters: ParseParameters{MajorVersion: 2, Profile: vc2.ProfileHighQuality},
				BaseVideoFormat: vc2.BaseVideoFormatQCIF,
			},
		},
		{ParseCode: vc2.ParseCodePaddingData, Payload: []byte{0, 0, 0, 0}},
		{ParseCode: vc2.ParseCodeEndOfSequence},
	}}
}

func TestWriteSequenceFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, minimalSequence()))
	stream := buf.Bytes()

	// Stream opens with the parse info prefix and the sequence header
	// parse code.
	assert.Equal(t, []byte("BBCD"), stream[:4])
	assert.Equal(t, byte(vc2.ParseCodeSequenceHeader), stream[4])

	r := NewReader(bytes.NewReader(stream))

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, vc2.ParseCodeSequenceHeader, first.ParseInfo.ParseCode)
	assert.Equal(t, int64(0), first.Offset)
	assert.Zero(t, first.ParseInfo.PreviousParseOffset)
	// The next offset spans this block exactly.
	assert.Equal(t, uint32(ParseInfoSize+len(first.Body)), first.ParseInfo.NextParseOffset)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, vc2.ParseCodePaddingData, second.ParseInfo.ParseCode)
	assert.Equal(t, first.ParseInfo.NextParseOffset, second.ParseInfo.PreviousParseOffset)
	assert.Equal(t, []byte{0, 0, 0, 0}, second.Body)

	last, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, vc2.ParseCodeEndOfSequence, last.ParseInfo.ParseCode)
	assert.Zero(t, last.ParseInfo.NextParseOffset)
	assert.Empty(t, last.Body)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSequenceHeaderBodyParses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, minimalSequence()))

	r := NewReader(&buf)
	unit, err := r.Next()
	require.NoError(t, err)

	br := NewBitReader(bytes.NewReader(unit.Body))
	header := ReadSequenceHeader(br)
	require.NoError(t, br.Err())
	assert.Equal(t, vc2.BaseVideoFormatQCIF, header.BaseVideoFormat)
}

func TestReaderBadPrefix(t *testing.T) {
	stream := make([]byte, ParseInfoSize)
	copy(stream, "XXXX")
	_, err := NewReader(bytes.NewReader(stream)).Next()
	assert.ErrorIs(t, err, ErrBadParseInfoPrefix)
}

func TestReaderUnknownParseCode(t *testing.T) {
	stream := make([]byte, ParseInfoSize)
	copy(stream, "BBCD")
	stream[4] = 0x42
	_, err := NewReader(bytes.NewReader(stream)).Next()
	assert.ErrorIs(t, err, ErrUnknownParseCode)
}

func TestReaderTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, minimalSequence()))
	stream := buf.Bytes()

	// Cut part way through the first body.
	_, err := NewReader(bytes.NewReader(stream[:ParseInfoSize+2])).Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Cut part way through a parse info block.
	_, err = NewReader(bytes.NewReader(stream[:5])).Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReaderShortNextOffset(t *testing.T) {
	stream := make([]byte, ParseInfoSize)
	copy(stream, "BBCD")
	stream[4] = byte(vc2.ParseCodePaddingData)
	// next_parse_offset of 5 cannot even cover the parse info block.
	stream[8] = 5
	_, err := NewReader(bytes.NewReader(stream)).Next()
	assert.Error(t, err)
}
