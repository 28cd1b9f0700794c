package screener

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// This file contains the JSON codec for records and datasets.
//
// encoding/json decodes objects into maps, and loses the field order that defines the
// column order of a dataset. Records are therefore decoded from the token stream.

// DecodeDataset decodes a JSON array of flat objects.
func DecodeDataset(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	ds := make(Dataset, 0, 100)
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", len(ds)+1, err)
		}
		ds = append(ds, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	// only whitespace may follow the array.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("after the records: %w", err)
		}
		return nil, fmt.Errorf("unexpected %v after the records", tok)
	}
	return ds, nil
}

// DecodeDatasetLines decodes a JSONL stream, one flat object per line. Blank lines are skipped.
func DecodeDatasetLines(r io.Reader) (Dataset, error) {
	ds := make(Dataset, 0, 100)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", i, err)
		}
		ds = append(ds, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// DecodeRecord decodes a single flat JSON object.
func DecodeRecord(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeObject(dec)
}

// EncodeDataset writes the dataset as JSONL, one record per line, fields in order.
func EncodeDataset(w io.Writer, ds Dataset) error {
	for i, rec := range ds {
		b, err := rec.MarshalJSON()
		if err != nil {
			return fmt.Errorf("record #%d: %w", i+1, err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// ValueOf converts a decoded JSON scalar into a Value.
// Booleans become the texts "true" and "false".
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return S(t), nil
	case bool:
		return S(strconv.FormatBool(t)), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", t, err)
		}
		return N(d), nil
	case float64:
		return N(t), nil
	case int:
		return N(t), nil
	case int64:
		return N(t), nil
	case decimal.Decimal:
		return N(t), nil
	case map[string]any, []any:
		return Null(), ErrNotFlat
	default:
		return Null(), fmt.Errorf("unsupported value type %T", v)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func decodeObject(dec *json.Decoder) (*Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	fields := make([]Field, 0, 16)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		if _, ok := tok.(json.Delim); ok {
			return nil, fmt.Errorf("field %q: %w", name, ErrNotFlat)
		}
		v, err := ValueOf(tok)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, F(name, v))
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return NewRecord(fields...), nil
}
