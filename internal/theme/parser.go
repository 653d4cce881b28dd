package theme

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"
	"sync"
)

// Parse reads a theme file of "Key: #RRGGBB" or "Key: #RRGGBBAA" lines on
// top of the default theme. Blank lines and # or // comments are skipped.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := Set(t, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// colorFields maps lower-cased field names of Theme to their index, in
// declaration order.
var colorFields = sync.OnceValues(func() (map[string]int, []int) {
	byName := map[string]int{}
	var order []int
	typ := reflect.TypeFor[Theme]()
	for i := range typ.NumField() {
		if typ.Field(i).Type == reflect.TypeFor[color.RGBA]() {
			byName[strings.ToLower(typ.Field(i).Name)] = i
			order = append(order, i)
		}
	}
	return byName, order
})

// Set assigns one theme key. Keys match field names case-insensitively;
// unknown keys are ignored.
func Set(t *Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	byName, _ := colorFields()
	i, ok := byName[strings.ToLower(key)]
	if !ok {
		return nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	reflect.ValueOf(t).Elem().Field(i).Set(reflect.ValueOf(c))
	return nil
}

// Fields lists the colors of t as name and Hex value pairs.
func Fields(t *Theme) [][2]string {
	_, order := colorFields()
	v := reflect.ValueOf(t).Elem()
	out := make([][2]string, 0, len(order))
	for _, i := range order {
		out = append(out, [2]string{v.Type().Field(i).Name, Hex(v.Field(i).Interface().(color.RGBA))})
	}
	return out
}

// ParseColor accepts #RRGGBB and #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, errors.New("color must start with #")
	}
	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
