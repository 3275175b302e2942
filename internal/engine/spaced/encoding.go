package spaced

import (
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Snapshot documents look like
//
//	{"length":25,"entries":[{"spacing":20,"value":"a"},{"spacing":5,"value":"b"}]}
//
// Range snapshots add "kind" ("start" or "end") and "pair", the array position
// of the partner bound. Indices are not part of a snapshot; decoding assigns
// fresh ones.

// EncodeList writes l as a snapshot document. enc converts a value into
// something encoding/json can marshal.
func EncodeList[T any](l *List[T], enc func(T) any) ([]byte, error) {
	doc, err := sjson.SetBytes([]byte(`{}`), "length", l.Length())
	if err != nil {
		return nil, errors.Wrap(err, "encoding length")
	}
	doc, err = sjson.SetRawBytes(doc, "entries", []byte(`[]`))
	if err != nil {
		return nil, errors.Wrap(err, "encoding entries")
	}
	for _, e := range l.All() {
		doc, err = sjson.SetBytes(doc, "entries.-1", map[string]any{
			"spacing": e.Spacing,
			"value":   enc(e.Value),
		})
		if err != nil {
			return nil, errors.Wrap(err, "encoding entry")
		}
	}
	return doc, nil
}

// DecodeList rebuilds a list from a snapshot document. dec converts a JSON
// value back into T.
func DecodeList[T any](data []byte, dec func(gjson.Result) (T, error)) (*List[T], error) {
	root, err := parseSnapshot(data)
	if err != nil {
		return nil, err
	}

	l := New[T]()
	for i, e := range root.Get("entries").Array() {
		spacing, err := spacingOf(i, e)
		if err != nil {
			return nil, err
		}
		v, err := dec(e.Get("value"))
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d value", i)
		}
		l.Push(spacing, v)
	}
	if err := checkLength(root, l.Length()); err != nil {
		return nil, err
	}
	return l, nil
}

// EncodeRanges writes r as a snapshot document.
func EncodeRanges[T any](r *RangeList[T], enc func(T) any) ([]byte, error) {
	ordinals := make(map[Index]int, r.bounds.Len())
	n := 0
	for idx := range r.bounds.All() {
		ordinals[idx] = n
		n++
	}

	doc, err := sjson.SetBytes([]byte(`{}`), "length", r.Length())
	if err != nil {
		return nil, errors.Wrap(err, "encoding length")
	}
	doc, err = sjson.SetRawBytes(doc, "entries", []byte(`[]`))
	if err != nil {
		return nil, errors.Wrap(err, "encoding entries")
	}
	for _, e := range r.bounds.All() {
		b := e.Value
		entry := map[string]any{
			"spacing": e.Spacing,
			"kind":    b.Kind.String(),
			"pair":    ordinals[b.Pair],
		}
		if b.Kind == BoundStart {
			entry["value"] = enc(b.Value)
		}
		doc, err = sjson.SetBytes(doc, "entries.-1", entry)
		if err != nil {
			return nil, errors.Wrap(err, "encoding bound")
		}
	}
	return doc, nil
}

// DecodeRanges rebuilds a range list from a snapshot document. The pairing
// recorded in the document is validated before the list is returned.
func DecodeRanges[T any](data []byte, dec func(gjson.Result) (T, error)) (*RangeList[T], error) {
	root, err := parseSnapshot(data)
	if err != nil {
		return nil, err
	}

	entries := root.Get("entries").Array()
	indices := make([]Index, len(entries))
	r := NewRangeList[T]()
	for i, e := range entries {
		spacing, err := spacingOf(i, e)
		if err != nil {
			return nil, err
		}
		pair := e.Get("pair")
		if pair.Type != gjson.Number || pair.Int() < 0 || pair.Int() >= int64(len(entries)) {
			return nil, errors.Wrapf(ErrMalformed, "entry %d: pair %q", i, pair.Raw)
		}

		var b Bound[T]
		switch kind := e.Get("kind").String(); kind {
		case BoundStart.String():
			b.Kind = BoundStart
			if b.Value, err = dec(e.Get("value")); err != nil {
				return nil, errors.Wrapf(err, "entry %d value", i)
			}
		case BoundEnd.String():
			b.Kind = BoundEnd
		default:
			return nil, errors.Wrapf(ErrMalformed, "entry %d: kind %q", i, kind)
		}
		indices[i] = r.bounds.Push(spacing, b)
	}

	for i, e := range entries {
		r.bounds.mustEntry(indices[i]).Value.Pair = indices[e.Get("pair").Int()]
	}
	if err := checkLength(root, r.Length()); err != nil {
		return nil, err
	}
	if err := r.Check(); err != nil {
		return nil, errors.Mark(err, ErrMalformed)
	}
	return r, nil
}

func parseSnapshot(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.Wrap(ErrMalformed, "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if entries := root.Get("entries"); entries.Exists() && !entries.IsArray() {
		return gjson.Result{}, errors.Wrap(ErrMalformed, "entries is not an array")
	}
	return root, nil
}

func spacingOf(i int, e gjson.Result) (uint, error) {
	s := e.Get("spacing")
	if s.Type != gjson.Number || s.Num < 0 || s.Num != float64(s.Uint()) {
		return 0, errors.Wrapf(ErrMalformed, "entry %d: spacing %q", i, s.Raw)
	}
	return uint(s.Uint()), nil
}

func checkLength(root gjson.Result, length uint) error {
	l := root.Get("length")
	if !l.Exists() {
		return nil
	}
	if l.Type != gjson.Number || l.Uint() != uint64(length) {
		return errors.Wrapf(ErrMalformed, "length %s does not match spacings sum %d", l.Raw, length)
	}
	return nil
}
