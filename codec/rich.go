package codec

import (
	"context"
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"strconv"
	"time"

	"github.com/friendsofgo/errors"
)

// Rich serializes structured values to text and back, preserving types that
// plain JSON flattens: time.Time survives as an exact instant, every Go
// integer type round-trips as the same type and value, and *big.Int carries
// arbitrary precision. Values implementing driver.Valuer (null.Int and
// friends) are unwrapped to their database value before encoding.
//
// The wire form is JSON with each node tagged by type:
//
//	{"t":"map","v":{"age":{"t":"int64","v":"30"},"id":{"t":"string","v":"abc"}}}
//
// Numbers travel as decimal strings, so precision is never lost to float
// parsing on the way back in.
type Rich struct{}

var _ Codec[any, string] = Rich{}

func (Rich) Encode(_ context.Context, in any) (string, error) {
	node, err := wrapValue(in)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(node)
	if err != nil {
		return "", errors.Wrap(err, "cannot marshal value")
	}

	return string(b), nil
}

func (Rich) Decode(_ context.Context, out string) (any, error) {
	var node any
	if err := json.Unmarshal([]byte(out), &node); err != nil {
		return nil, errors.Wrap(err, "malformed payload")
	}

	return unwrapValue(node)
}

func wrapValue(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return map[string]any{"t": "nil"}, nil
	case string:
		return map[string]any{"t": "string", "v": t}, nil
	case bool:
		return map[string]any{"t": "bool", "v": t}, nil
	case int:
		return map[string]any{"t": "int", "v": strconv.FormatInt(int64(t), 10)}, nil
	case int32:
		return map[string]any{"t": "int32", "v": strconv.FormatInt(int64(t), 10)}, nil
	case int64:
		return map[string]any{"t": "int64", "v": strconv.FormatInt(t, 10)}, nil
	case uint:
		return map[string]any{"t": "uint", "v": strconv.FormatUint(uint64(t), 10)}, nil
	case uint32:
		return map[string]any{"t": "uint32", "v": strconv.FormatUint(uint64(t), 10)}, nil
	case uint64:
		return map[string]any{"t": "uint64", "v": strconv.FormatUint(t, 10)}, nil
	case float32:
		return map[string]any{"t": "float32", "v": strconv.FormatFloat(float64(t), 'g', -1, 32)}, nil
	case float64:
		return map[string]any{"t": "float64", "v": strconv.FormatFloat(t, 'g', -1, 64)}, nil
	case time.Time:
		return map[string]any{"t": "time", "v": t.Format(time.RFC3339Nano)}, nil
	case *big.Int:
		return map[string]any{"t": "bigint", "v": t.String()}, nil
	case []byte:
		return map[string]any{"t": "bytes", "v": base64.StdEncoding.EncodeToString(t)}, nil
	case map[string]any:
		wrapped := make(map[string]any, len(t))
		for k, item := range t {
			node, err := wrapValue(item)
			if err != nil {
				return nil, err
			}
			wrapped[k] = node
		}
		return map[string]any{"t": "map", "v": wrapped}, nil
	case []any:
		wrapped := make([]any, len(t))
		for i, item := range t {
			node, err := wrapValue(item)
			if err != nil {
				return nil, err
			}
			wrapped[i] = node
		}
		return map[string]any{"t": "list", "v": wrapped}, nil
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return nil, errors.Wrapf(err, "cannot take database value of %T", t)
		}
		return wrapValue(dv)
	default:
		return nil, errors.Errorf("cannot encode value of type %T", v)
	}
}

func unwrapValue(node any) (any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, errors.Errorf("malformed payload: node is %T, not an object", node)
	}

	tag, ok := obj["t"].(string)
	if !ok {
		return nil, errors.New("malformed payload: node has no type tag")
	}

	if tag == "nil" {
		return nil, nil
	}

	v, ok := obj["v"]
	if !ok {
		return nil, errors.Errorf("malformed payload: %q node has no value", tag)
	}

	switch tag {
	case "string":
		return expectString(tag, v)
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Errorf("malformed payload: bool node holds %T", v)
		}
		return b, nil
	case "int", "int32", "int64":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed payload: bad %s value", tag)
		}
		switch tag {
		case "int":
			return int(n), nil
		case "int32":
			return int32(n), nil
		default:
			return n, nil
		}
	case "uint", "uint32", "uint64":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed payload: bad %s value", tag)
		}
		switch tag {
		case "uint":
			return uint(n), nil
		case "uint32":
			return uint32(n), nil
		default:
			return n, nil
		}
	case "float32", "float64":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		bits := 64
		if tag == "float32" {
			bits = 32
		}
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed payload: bad %s value", tag)
		}
		if tag == "float32" {
			return float32(f), nil
		}
		return f, nil
	case "time":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, errors.Wrap(err, "malformed payload: bad time value")
		}
		return ts, nil
	case "bigint":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("malformed payload: bad bigint value %q", s)
		}
		return n, nil
	case "bytes":
		s, err := expectString(tag, v)
		if err != nil {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(err, "malformed payload: bad bytes value")
		}
		return b, nil
	case "map":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Errorf("malformed payload: map node holds %T", v)
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			u, err := unwrapValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = u
		}
		return out, nil
	case "list":
		l, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf("malformed payload: list node holds %T", v)
		}
		out := make([]any, len(l))
		for i, item := range l {
			u, err := unwrapValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	default:
		return nil, errors.Errorf("malformed payload: unknown type tag %q", tag)
	}
}

func expectString(tag string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("malformed payload: %s node holds %T", tag, v)
	}

	return s, nil
}
