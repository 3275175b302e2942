package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/render"
	"github.com/dshills/spacedlist/internal/script"
)

// printExports writes one JSON line per export:
//
//	{"name":"points","kind":"list","snapshot":{...}}
func printExports(w io.Writer, res *script.Result) error {
	for _, e := range res.Exports {
		snap, err := e.Encode()
		if err != nil {
			return errors.Wrapf(err, "encoding %q", e.Name)
		}
		line, err := sjson.SetBytes([]byte(`{}`), "name", e.Name)
		if err != nil {
			return err
		}
		if line, err = sjson.SetBytes(line, "kind", e.Kind.String()); err != nil {
			return err
		}
		if line, err = sjson.SetRawBytes(line, "snapshot", snap); err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}

// spansOf flattens every export into ruler spans labelled "name:value".
func spansOf(exports []script.Export) []render.Span {
	var spans []render.Span
	for _, e := range exports {
		label := func(v lua.LValue) string { return e.Name + ":" + v.String() }
		var part []render.Span
		switch e.Kind {
		case script.KindList:
			part = render.FromList(e.List, label)
		case script.KindRanges:
			part = render.FromRanges(e.Ranges, label)
		case script.KindAnchors:
			part = render.FromMarks(e.Anchors.Marks())
			for i := range part {
				part[i].Label = e.Name + ":" + part[i].Label
			}
		}
		spans = append(spans, part...)
	}
	return spans
}
