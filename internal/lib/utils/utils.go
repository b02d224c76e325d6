// Package utils contains small helpers shared by the commands.
package utils

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// PrintJSON writes v to w as tab-indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
