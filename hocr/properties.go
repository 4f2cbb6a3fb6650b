package hocr

import (
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/model"
)

// parseTitle splits an hOCR title attribute into its properties. The
// attribute holds semicolon-separated entries, each a property name
// followed by its value ("bbox 72 100 430 128; baseline 0 -5; x_size 24").
func parseTitle(title string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		props[fields[0]] = strings.Join(fields[1:], " ")
	}
	return props
}

// propBBox reads the bbox property, given in (x1, y1, x2, y2) corner form.
func propBBox(props map[string]string) (model.BBox, bool) {
	raw, ok := props["bbox"]
	if !ok {
		return model.BBox{}, false
	}

	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return model.BBox{}, false
	}

	var coords [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.BBox{}, false
		}
		coords[i] = v
	}
	return model.BBoxFromCorners(coords[0], coords[1], coords[2], coords[3]), true
}

// propFloat reads a numeric property such as x_size or x_wconf.
func propFloat(props map[string]string, key string) (float64, bool) {
	raw, ok := props[key]
	if !ok {
		return 0, false
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// propInt reads an integer property such as ppageno.
func propInt(props map[string]string, key string) (int, bool) {
	v, ok := propFloat(props, key)
	if !ok {
		return 0, false
	}
	return int(v), true
}
