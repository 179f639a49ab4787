package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/dshills/duotone/internal/variant"
)

// Data formats understood by Encode and Decode.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// EncodedStyle is the data form of one variant's style.
type EncodedStyle struct {
	Color     string `json:"color,omitempty" yaml:"color,omitempty" msgpack:"color,omitempty"`
	BgColor   string `json:"bgColor,omitempty" yaml:"bgColor,omitempty" msgpack:"bgColor,omitempty"`
	FontStyle string `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty" msgpack:"fontStyle,omitempty"`
}

// EncodedExplanation is the data form of an explanation item.
type EncodedExplanation struct {
	Content    string `json:"content" yaml:"content" msgpack:"content"`
	Scope      string `json:"scope,omitempty" yaml:"scope,omitempty" msgpack:"scope,omitempty"`
	ThemeMatch string `json:"themeMatch,omitempty" yaml:"themeMatch,omitempty" msgpack:"themeMatch,omitempty"`
}

// EncodedToken is the data form of a merged token.
type EncodedToken struct {
	Content     string                  `json:"content" yaml:"content" msgpack:"content"`
	Offset      int                     `json:"offset" yaml:"offset" msgpack:"offset"`
	Variants    map[string]EncodedStyle `json:"variants" yaml:"variants" msgpack:"variants"`
	Explanation []EncodedExplanation    `json:"explanation,omitempty" yaml:"explanation,omitempty" msgpack:"explanation,omitempty"`
}

// EncodeTokens converts merged lines to their data form.
func EncodeTokens(lines [][]variant.MergedToken) [][]EncodedToken {
	out := make([][]EncodedToken, len(lines))
	for i, line := range lines {
		out[i] = make([]EncodedToken, len(line))
		for j, tok := range line {
			enc := EncodedToken{
				Content:  tok.Content,
				Offset:   tok.Offset,
				Variants: make(map[string]EncodedStyle, len(tok.Variants)),
			}
			for key, style := range tok.Variants {
				enc.Variants[key] = EncodedStyle{
					Color:     style.Foreground.ToHex(),
					BgColor:   style.Background.ToHex(),
					FontStyle: style.FontStyle(),
				}
			}
			for _, item := range tok.Explanation {
				enc.Explanation = append(enc.Explanation, EncodedExplanation(item))
			}
			out[i][j] = enc
		}
	}
	return out
}

// Encode writes merged lines in format.
func Encode(w io.Writer, lines [][]variant.MergedToken, format string) error {
	data := EncodeTokens(lines)

	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode reads lines written by Encode.
func Decode(r io.Reader, format string) ([][]EncodedToken, error) {
	var data [][]EncodedToken

	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&data)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&data)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return data, nil
}
