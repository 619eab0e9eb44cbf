// Package tensor accumulates per-image float vectors into a single
// shape-tagged batch and serializes it in the tensor-protos container format,
// either as binary wire data or as the equivalent text form.
package tensor

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the tensor-protos container. The container message holds a
// repeated tensor entry; each entry carries dims, a data type and a packed
// float payload.
const (
	fieldProtos    = 1
	fieldDims      = 1
	fieldDataType  = 2
	fieldFloatData = 3

	dataTypeFloat = 1
)

// Batch is the accumulated output of a run: N images of identical C x H x W
// shape concatenated into one flat float buffer in image-major, channel-major,
// row-major order.
type Batch struct {
	Images   int
	Channels int
	Height   int
	Width    int
	Data     []float32
}

// NewBatch creates an empty batch for the given channel count. Height and
// width are fixed by the first appended image.
func NewBatch(channels int) *Batch {
	return &Batch{
		Channels: channels,
		Height:   -1,
		Width:    -1,
	}
}

// Append adds one image's vector to the batch. The first image establishes
// the batch height and width; any later image must match them exactly, and
// every vector must have length channels * height * width.
func (b *Batch) Append(values []float32, height, width int) error {
	if b.Images == 0 {
		b.Height = height
		b.Width = width
	} else if height != b.Height || width != b.Width {
		return fmt.Errorf("image size %dx%d does not match batch size %dx%d",
			height, width, b.Height, b.Width)
	}

	if want := b.Channels * b.Height * b.Width; len(values) != want {
		return fmt.Errorf("vector length %d does not match %dx%dx%d", len(values),
			b.Channels, b.Height, b.Width)
	}

	b.Data = append(b.Data, values...)
	b.Images++
	return nil
}

// Dims returns the batch shape as [N, C, H, W]
func (b *Batch) Dims() []int64 {
	return []int64{int64(b.Images), int64(b.Channels), int64(b.Height), int64(b.Width)}
}

// Encode serializes the batch in text or binary form
func (b *Batch) Encode(text bool) []byte {
	if text {
		return b.EncodeText()
	}
	return b.EncodeBinary()
}

// EncodeBinary serializes the batch as a tensor-protos container in protobuf
// wire format: one tensor entry with float data type, dims [N, C, H, W] and a
// packed float payload.
func (b *Batch) EncodeBinary() []byte {
	var entry []byte
	for _, d := range b.Dims() {
		entry = protowire.AppendTag(entry, fieldDims, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(d))
	}
	entry = protowire.AppendTag(entry, fieldDataType, protowire.VarintType)
	entry = protowire.AppendVarint(entry, dataTypeFloat)

	packed := make([]byte, 0, 4*len(b.Data))
	for _, v := range b.Data {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	entry = protowire.AppendTag(entry, fieldFloatData, protowire.BytesType)
	entry = protowire.AppendBytes(entry, packed)

	var out []byte
	out = protowire.AppendTag(out, fieldProtos, protowire.BytesType)
	out = protowire.AppendBytes(out, entry)
	return out
}

// EncodeText serializes the batch as the text form of the same container
func (b *Batch) EncodeText() []byte {
	var buf bytes.Buffer
	buf.WriteString("protos {\n")
	for _, d := range b.Dims() {
		fmt.Fprintf(&buf, "  dims: %d\n", d)
	}
	buf.WriteString("  data_type: FLOAT\n")
	for _, v := range b.Data {
		buf.WriteString("  float_data: ")
		buf.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}
