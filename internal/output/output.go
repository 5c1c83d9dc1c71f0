package output

import (
	"fmt"
	"io"
	"os"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Texter is implemented by results that have a human-readable rendering.
type Texter interface {
	Text() string
}

// ParseFormat converts a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text, yaml, or json)", s)
	}
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format. In text mode values
// without a Texter rendering fall back to YAML.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatText:
		if t, ok := v.(Texter); ok {
			_, err := fmt.Fprintln(w, t.Text())
			return err
		}
		return FprintYAML(w, v)
	case FormatJSON:
		return FprintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return FprintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}
