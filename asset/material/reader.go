package material

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Stroby241/svoray/types"
)

type paletteEntry struct {
	ID    uint16     `json:"id"`
	Color [3]float32 `json:"rgb"`
}

type paletteFile struct {
	Materials []paletteEntry `json:"materials"`
}

// Read a JSON material palette. Entries override the built-in defaults so a
// palette only needs to list the ids it cares about. Id 0 is reserved for
// empty space and may not be assigned a color.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("material: %s", err.Error())
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("material: could not parse %s: %s", path, err.Error())
	}
	return t, nil
}

// Read a JSON material palette from a stream.
func Read(r io.Reader) (*Table, error) {
	var palette paletteFile
	if err := json.NewDecoder(r).Decode(&palette); err != nil {
		return nil, err
	}

	t := DefaultTable()
	for index, entry := range palette.Materials {
		if entry.ID == EmptyID {
			return nil, fmt.Errorf("material %d redefines reserved empty id 0", index)
		}
		if entry.ID > 255 {
			return nil, fmt.Errorf("material %d id %d exceeds the 8 bit id space", index, entry.ID)
		}
		t[entry.ID] = types.Vec4{entry.Color[0], entry.Color[1], entry.Color[2], 1}
	}

	return t, nil
}
