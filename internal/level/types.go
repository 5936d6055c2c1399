package level

import "github.com/jchantrell/wadex/internal/wad"

// NoSide marks a missing side in Linedef.LeftSide or Linedef.RightSide.
const NoSide = 0xffff

// Linedef flags
const (
	LineBlocking      = 0x0001
	LineBlockMonsters = 0x0002
	LineTwoSided      = 0x0004
	LineUpperUnpegged = 0x0008
	LineLowerUnpegged = 0x0010
	LineSecret        = 0x0020
	LineBlockSound    = 0x0040
	LineNeverOnMap    = 0x0080
	LineAlwaysOnMap   = 0x0100
)

// Thing flags
const (
	ThingEasy        = 0x0001
	ThingMedium      = 0x0002
	ThingHard        = 0x0004
	ThingAmbush      = 0x0008
	ThingMultiplayer = 0x0010
)

// subSectorFlag marks a node child that refers to a subsector rather than a node.
const subSectorFlag = 0x8000

// Thing is a map object placement.
type Thing struct {
	X     int16
	Y     int16
	Angle int16
	Type  uint16
	Flags uint16
}

// Vertex is a map point.
type Vertex struct {
	X int16
	Y int16
}

// Linedef is a wall line between two vertices.
type Linedef struct {
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	SpecialType uint16
	SectorTag   uint16
	RightSide   uint16
	LeftSide    uint16
}

// Sidedef is the textured face of a linedef.
type Sidedef struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  wad.Name
	LowerTexture  wad.Name
	MiddleTexture wad.Name
	Sector        uint16
}

// Sector is an area with a floor and ceiling.
type Sector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   wad.Name
	CeilingTexture wad.Name
	Light          uint16
	Type           uint16
	Tag            uint16
}

// Seg is the part of a linedef that bounds a subsector.
type Seg struct {
	StartVertex uint16
	EndVertex   uint16
	Angle       int16
	Linedef     uint16
	Direction   uint16 // 0 same as linedef, 1 opposite
	Offset      int16
}

// SubSector is a convex run of segs.
type SubSector struct {
	NumSegs  uint16
	FirstSeg uint16
}

// BBox is a node child's bounding box.
type BBox struct {
	Top    int16
	Bottom int16
	Left   int16
	Right  int16
}

// Node is a BSP tree partition.
type Node struct {
	LineX      int16
	LineY      int16
	StepX      int16
	StepY      int16
	RightBox   BBox
	LeftBox    BBox
	RightChild uint16
	LeftChild  uint16
}

// IsTwoSided reports whether the linedef separates two sectors.
func (l Linedef) IsTwoSided() bool {
	return l.Flags&LineTwoSided != 0 && l.LeftSide != NoSide
}

// ChildIsSubSector reports whether a node child index refers to a subsector.
func ChildIsSubSector(child uint16) bool {
	return child&subSectorFlag != 0
}

// ChildIndex strips the subsector flag from a node child index.
func ChildIndex(child uint16) int {
	return int(child &^ subSectorFlag)
}
