// Package formats provides codecs for Quake-era model assets.
// MDL (poly model) decoder.
package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// MDL format errors.
var (
	ErrInvalidFormat    = errors.New("invalid MDL format")
	ErrUnknownFrameType = errors.New("unknown frame type")
	ErrSuspiciousCount  = errors.New("suspicious count")
	ErrDecoderState     = errors.New("decoder used out of order")
)

const (
	// MDLIdent is the four-byte tag at the start of every model.
	MDLIdent = "IDPO"
	// MDLVersion is the only supported format version.
	MDLVersion = 6

	// DefaultMaxGroupFrames bounds the sub-frame count of a frame group.
	DefaultMaxGroupFrames = 10000

	frameNameSize = 16

	maxTablePrealloc = 4096
)

// SyncType tells the engine whether frame groups animate in lockstep.
type SyncType int32

const (
	SyncSynchronized SyncType = 0
	SyncRandom       SyncType = 1
)

// String returns a human-readable sync type name.
func (s SyncType) String() string {
	switch s {
	case SyncSynchronized:
		return "Synchronized"
	case SyncRandom:
		return "Random"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(s))
	}
}

// SkinKind is the discriminator stored before every skin.
type SkinKind int32

const (
	SkinSingle SkinKind = 0
	SkinGroup  SkinKind = 1
)

// String returns a human-readable skin kind name.
func (k SkinKind) String() string {
	switch k {
	case SkinSingle:
		return "Single"
	case SkinGroup:
		return "Group"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(k))
	}
}

// FrameKind is the discriminator stored before every frame entry.
type FrameKind int32

const (
	FrameSingle FrameKind = 0
	FrameGroup  FrameKind = 1
)

// String returns a human-readable frame kind name.
func (k FrameKind) String() string {
	switch k {
	case FrameSingle:
		return "Single"
	case FrameGroup:
		return "Group"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(k))
	}
}

// UnknownFrameTypeError reports a frame discriminator matching no variant.
type UnknownFrameTypeError struct {
	Value  int32
	Index  int   // logical frame index at which it was read
	Offset int64 // offset of the discriminator
}

func (e *UnknownFrameTypeError) Error() string {
	return fmt.Sprintf("unknown frame type %d at frame %d (offset %d)", e.Value, e.Index, e.Offset)
}

// Unwrap lets errors.Is match ErrUnknownFrameType.
func (e *UnknownFrameTypeError) Unwrap() error {
	return ErrUnknownFrameType
}

// Header is the fixed 84-byte model header.
type Header struct {
	Ident          [4]byte
	Version        int32
	Scale          mgl32.Vec3
	ScaleOrigin    mgl32.Vec3
	BoundingRadius float32
	EyePosition    mgl32.Vec3
	SkinCount      int32
	SkinWidth      int32
	SkinHeight     int32
	VertexCount    int32
	TriangleCount  int32
	FrameCount     int32
	SyncType       SyncType
	Flags          int32
	Size           float32
}

// SkinSize returns the number of pixel bytes in one skin.
func (h *Header) SkinSize() int {
	return int(h.SkinWidth) * int(h.SkinHeight)
}

// Skin is one paletted skin image, one byte per pixel.
type Skin struct {
	Index  int
	Kind   SkinKind
	Pixels []byte
}

// TexVertex maps a model vertex onto the skin.
type TexVertex struct {
	OnSeam bool
	S, T   int32
}

// TriangleIndex references three model vertices.
type TriangleIndex struct {
	FacesFront bool
	Vertices   [3]int32
}

// PackedVertex is a vertex position quantized to one byte per axis.
type PackedVertex struct {
	Position    [3]uint8
	LightNormal uint8 // index into the engine's normal table, not resolved here
}

// Topology holds the per-model tables that sit between skins and frames.
type Topology struct {
	TexVertices []TexVertex
	Triangles   []TriangleIndex
}

// FrameGroupHeader describes a timed run of frames.
type FrameGroupHeader struct {
	Count     int
	BBoxMin   PackedVertex
	BBoxMax   PackedVertex
	Intervals []float32
}

// Frame is one pose of the vertex set.
type Frame struct {
	Kind     FrameKind
	Index    int               // logical index of the entry the frame belongs to
	SubIndex int               // position inside a group, 0 for single frames
	Group    *FrameGroupHeader // nil for single frames
	Name     string
	BBoxMin  PackedVertex
	BBoxMax  PackedVertex
	Vertices []PackedVertex
}

// DecodeOptions tunes the few format details that vary between tools.
type DecodeOptions struct {
	// GroupCountOrder is the byte order of a frame group's sub-frame count.
	// Real files use little endian even though the authoring tool nominally
	// wrote it big endian.
	GroupCountOrder binary.ByteOrder
	// MaxGroupFrames bounds a frame group's sub-frame count.
	MaxGroupFrames int
	// NameDecoder converts raw frame names to strings. Nil keeps the bytes.
	NameDecoder func([]byte) string
}

// DefaultDecodeOptions returns the settings that match shipped models.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		GroupCountOrder: binary.LittleEndian,
		MaxGroupFrames:  DefaultMaxGroupFrames,
	}
}

type decoderStage int

const (
	stageHeader decoderStage = iota
	stageSkins
	stageTopology
	stageFrames
)

// Decoder reads a model strictly front to back: header, skins, topology, frames.
type Decoder struct {
	fr     *FieldReader
	opts   DecodeOptions
	stage  decoderStage
	header *Header

	skinIndex  int
	frameIndex int

	group    *FrameGroupHeader
	groupAt  int // logical index of the group being expanded
	groupSub int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts DecodeOptions) *Decoder {
	if opts.GroupCountOrder == nil {
		opts.GroupCountOrder = binary.LittleEndian
	}
	if opts.MaxGroupFrames <= 0 {
		opts.MaxGroupFrames = DefaultMaxGroupFrames
	}
	return &Decoder{fr: NewFieldReader(r), opts: opts}
}

// Offset returns the number of input bytes consumed.
func (d *Decoder) Offset() int64 {
	return d.fr.Offset()
}

// FrameIndex returns the logical frame counter.
func (d *Decoder) FrameIndex() int {
	return d.frameIndex
}

// Header returns the decoded header, or nil before ReadHeader succeeded.
func (d *Decoder) Header() *Header {
	return d.header
}

// ReadHeader reads and validates the model header.
func (d *Decoder) ReadHeader() (*Header, error) {
	if d.stage != stageHeader {
		return nil, fmt.Errorf("%w: header already read", ErrDecoderState)
	}

	h := &Header{}
	ident, err := d.fr.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("reading ident: %w", err)
	}
	copy(h.Ident[:], ident)
	if string(h.Ident[:]) != MDLIdent {
		return nil, fmt.Errorf("%w: ident %q, expected %q", ErrInvalidFormat, h.Ident[:], MDLIdent)
	}
	if h.Version, err = d.fr.ReadInt32LE(); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if h.Version != MDLVersion {
		return nil, fmt.Errorf("%w: version %d, expected %d", ErrInvalidFormat, h.Version, MDLVersion)
	}

	if h.Scale, err = d.fr.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading scale: %w", err)
	}
	if h.ScaleOrigin, err = d.fr.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading scale origin: %w", err)
	}
	if h.BoundingRadius, err = d.fr.ReadFloat32LE(); err != nil {
		return nil, fmt.Errorf("reading bounding radius: %w", err)
	}
	if h.EyePosition, err = d.fr.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading eye position: %w", err)
	}

	counts := []struct {
		name string
		dst  *int32
	}{
		{"skin count", &h.SkinCount},
		{"skin width", &h.SkinWidth},
		{"skin height", &h.SkinHeight},
		{"vertex count", &h.VertexCount},
		{"triangle count", &h.TriangleCount},
		{"frame count", &h.FrameCount},
	}
	for _, c := range counts {
		v, err := d.fr.ReadInt32LE()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.name, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s is %d", ErrSuspiciousCount, c.name, v)
		}
		*c.dst = v
	}

	sync, err := d.fr.ReadInt32LE()
	if err != nil {
		return nil, fmt.Errorf("reading sync type: %w", err)
	}
	h.SyncType = SyncType(sync)
	if h.Flags, err = d.fr.ReadInt32LE(); err != nil {
		return nil, fmt.Errorf("reading flags: %w", err)
	}
	if h.Size, err = d.fr.ReadFloat32LE(); err != nil {
		return nil, fmt.Errorf("reading size: %w", err)
	}

	d.header = h
	d.stage = stageSkins
	return h, nil
}

// NextSkin reads the next skin. It returns io.EOF once SkinCount skins have
// been read. Group skins are returned one member at a time like singles.
func (d *Decoder) NextSkin() (*Skin, error) {
	if d.stage != stageSkins {
		return nil, fmt.Errorf("%w: skins are not next in the stream", ErrDecoderState)
	}
	if d.skinIndex >= int(d.header.SkinCount) {
		return nil, io.EOF
	}

	kind, err := d.fr.ReadInt32LE()
	if err != nil {
		return nil, fmt.Errorf("reading skin %d type: %w", d.skinIndex, err)
	}
	pixels, err := d.fr.ReadBytes(d.header.SkinSize())
	if err != nil {
		return nil, fmt.Errorf("reading skin %d pixels: %w", d.skinIndex, err)
	}

	skin := &Skin{Index: d.skinIndex, Kind: SkinKind(kind), Pixels: pixels}
	d.skinIndex++
	return skin, nil
}

// ReadTopology reads the texture-vertex and triangle tables. All skins must
// have been consumed first.
func (d *Decoder) ReadTopology() (*Topology, error) {
	if d.stage != stageSkins || d.skinIndex < int(d.header.SkinCount) {
		return nil, fmt.Errorf("%w: topology follows the skins", ErrDecoderState)
	}

	topo := &Topology{
		TexVertices: make([]TexVertex, 0, tableCap(d.header.VertexCount)),
		Triangles:   make([]TriangleIndex, 0, tableCap(d.header.TriangleCount)),
	}

	for i := 0; i < int(d.header.VertexCount); i++ {
		var fields [3]int32
		for j := range fields {
			v, err := d.fr.ReadInt32LE()
			if err != nil {
				return nil, fmt.Errorf("reading texture vertex %d: %w", i, err)
			}
			fields[j] = v
		}
		topo.TexVertices = append(topo.TexVertices, TexVertex{OnSeam: fields[0] != 0, S: fields[1], T: fields[2]})
	}

	for i := 0; i < int(d.header.TriangleCount); i++ {
		var fields [4]int32
		for j := range fields {
			v, err := d.fr.ReadInt32LE()
			if err != nil {
				return nil, fmt.Errorf("reading triangle %d: %w", i, err)
			}
			fields[j] = v
		}
		topo.Triangles = append(topo.Triangles, TriangleIndex{
			FacesFront: fields[0] != 0,
			Vertices:   [3]int32{fields[1], fields[2], fields[3]},
		})
	}

	d.stage = stageFrames
	return topo, nil
}

// NextFrame returns the next frame, expanding groups into their members.
// It returns io.EOF once the logical frame index reaches FrameCount.
func (d *Decoder) NextFrame() (*Frame, error) {
	if d.stage != stageFrames {
		return nil, fmt.Errorf("%w: frames follow the topology", ErrDecoderState)
	}

	if d.group != nil {
		return d.nextGroupMember()
	}
	if d.frameIndex >= int(d.header.FrameCount) {
		return nil, io.EOF
	}

	at := d.fr.Offset()
	raw, err := d.fr.ReadInt32LE()
	if err != nil {
		return nil, fmt.Errorf("reading frame %d type: %w", d.frameIndex, err)
	}

	switch kind := FrameKind(raw); kind {
	case FrameSingle:
		frame, err := d.readSingle()
		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", d.frameIndex, err)
		}
		frame.Kind = FrameSingle
		frame.Index = d.frameIndex
		d.frameIndex++
		return frame, nil
	case FrameGroup:
		group, err := d.readGroupHeader()
		if err != nil {
			return nil, fmt.Errorf("reading frame group %d: %w", d.frameIndex, err)
		}
		d.group = group
		d.groupAt = d.frameIndex
		d.groupSub = 0
		return d.nextGroupMember()
	default:
		return nil, &UnknownFrameTypeError{Value: raw, Index: d.frameIndex, Offset: at}
	}
}

func (d *Decoder) nextGroupMember() (*Frame, error) {
	frame, err := d.readSingle()
	if err != nil {
		return nil, fmt.Errorf("reading frame group %d member %d: %w", d.groupAt, d.groupSub, err)
	}
	frame.Kind = FrameGroup
	frame.Index = d.groupAt
	frame.SubIndex = d.groupSub
	frame.Group = d.group

	d.groupSub++
	if d.groupSub == d.group.Count {
		d.frameIndex += 1 + d.group.Count
		d.group = nil
	}
	return frame, nil
}

func (d *Decoder) readGroupHeader() (*FrameGroupHeader, error) {
	count, err := d.fr.ReadInt32(d.opts.GroupCountOrder)
	if err != nil {
		return nil, fmt.Errorf("reading sub-frame count: %w", err)
	}
	if count <= 0 || int(count) > d.opts.MaxGroupFrames {
		return nil, fmt.Errorf("%w: %d sub-frames (expected 1 to %d)", ErrSuspiciousCount, count, d.opts.MaxGroupFrames)
	}

	g := &FrameGroupHeader{Count: int(count)}
	if g.BBoxMin, err = d.fr.ReadPackedVertex(); err != nil {
		return nil, fmt.Errorf("reading group bbox: %w", err)
	}
	if g.BBoxMax, err = d.fr.ReadPackedVertex(); err != nil {
		return nil, fmt.Errorf("reading group bbox: %w", err)
	}

	g.Intervals = make([]float32, g.Count)
	for i := range g.Intervals {
		if g.Intervals[i], err = d.fr.ReadFloat32LE(); err != nil {
			return nil, fmt.Errorf("reading interval %d: %w", i, err)
		}
	}
	return g, nil
}

// readSingle reads a single frame record without its discriminator.
func (d *Decoder) readSingle() (*Frame, error) {
	f := &Frame{}
	var err error
	if f.BBoxMin, err = d.fr.ReadPackedVertex(); err != nil {
		return nil, err
	}
	if f.BBoxMax, err = d.fr.ReadPackedVertex(); err != nil {
		return nil, err
	}
	if f.Name, err = d.fr.ReadFixedString(frameNameSize, d.opts.NameDecoder); err != nil {
		return nil, err
	}

	f.Vertices = make([]PackedVertex, 0, tableCap(d.header.VertexCount))
	for i := 0; i < int(d.header.VertexCount); i++ {
		v, err := d.fr.ReadPackedVertex()
		if err != nil {
			return nil, err
		}
		f.Vertices = append(f.Vertices, v)
	}
	return f, nil
}

// tableCap bounds the up-front capacity of a table sized by a header count.
// Tables grow as records arrive, so a corrupt count hits truncation first.
func tableCap(n int32) int {
	return int(min(n, maxTablePrealloc))
}

// Model is a fully loaded model, used when streaming is not required.
type Model struct {
	Header     *Header
	Skins      []Skin
	Topology   *Topology
	Frames     []Frame
	FrameIndex int // final logical frame counter
}

// Decode loads a whole model into memory.
func Decode(r io.Reader, opts DecodeOptions) (*Model, error) {
	d := NewDecoder(r, opts)
	header, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}

	m := &Model{Header: header}
	for {
		skin, err := d.NextSkin()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		m.Skins = append(m.Skins, *skin)
	}

	if m.Topology, err = d.ReadTopology(); err != nil {
		return nil, err
	}

	for {
		frame, err := d.NextFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		m.Frames = append(m.Frames, *frame)
	}
	m.FrameIndex = d.FrameIndex()
	return m, nil
}

// DecodeFile loads a whole model from disk.
func DecodeFile(path string, opts DecodeOptions) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MDL file: %w", err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), opts)
}
