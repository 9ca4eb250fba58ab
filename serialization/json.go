package serialization

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/greco-zk/greco/vectors"
)

// WriteJSON writes the centered vectors in indented JSON.
func WriteJSON(w io.Writer, vecs *vectors.Vectors) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vecs); err != nil {
		return fmt.Errorf("cannot WriteJSON: %w", err)
	}
	return nil
}
