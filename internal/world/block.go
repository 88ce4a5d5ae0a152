package world

import "strings"

// BlockType identifies what a block is made of.
type BlockType uint32

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeCobblestone
	BlockTypeGrass

	blockTypeCount
)

var blockTypeNames = [blockTypeCount]string{
	BlockTypeAir:         "Air",
	BlockTypeDirt:        "Dirt",
	BlockTypeCobblestone: "Cobblestone",
	BlockTypeGrass:       "Grass",
}

func (t BlockType) String() string {
	if t < blockTypeCount {
		return blockTypeNames[t]
	}
	return "Unknown"
}

// ParseBlockType looks a block type up by name, ignoring case.
func ParseBlockType(name string) (BlockType, bool) {
	for t, n := range blockTypeNames {
		if strings.EqualFold(n, name) {
			return BlockType(t), true
		}
	}
	return BlockTypeAir, false
}

// SolidBlockTypes returns every block type except air.
func SolidBlockTypes() []BlockType {
	types := make([]BlockType, 0, blockTypeCount-1)
	for t := BlockTypeAir + 1; t < blockTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// BlockFace identifies one of the six axis-aligned sides of a block.
type BlockFace uint8

const (
	FaceBack   BlockFace = iota // -X
	FaceFront                   // +X
	FaceLeft                    // -Z
	FaceRight                   // +Z
	FaceBottom                  // -Y
	FaceTop                     // +Y
)

// FaceCount is the number of faces of a cube.
const FaceCount = 6

var faceNames = [FaceCount]string{"Back", "Front", "Left", "Right", "Bottom", "Top"}

// Valid reports whether f is one of the six faces.
func (f BlockFace) Valid() bool {
	return f < FaceCount
}

func (f BlockFace) String() string {
	if f.Valid() {
		return faceNames[f]
	}
	return "Invalid"
}

// Block is one cell of a chunk.
type Block struct {
	Type BlockType
}

// IsAir reports whether the block is empty.
func (b Block) IsAir() bool {
	return b.Type == BlockTypeAir
}
