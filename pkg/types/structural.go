package types

import "reflect"

// ObjType is the mapping kind: a map keyed by strings.
type ObjType struct{}

func (t *ObjType) Name() string { return Obj }

func (t *ObjType) Is(value any) bool {
	_, ok := AsMap(value)
	return ok
}

func (t *ObjType) To(value any) (any, error) {
	return nil, &CoercionError{Type: Obj, Value: value}
}

func (t *ObjType) Base() (any, bool) { return nil, false }

// ArrType is the list kind: any slice or array except byte slices.
type ArrType struct{}

func (t *ArrType) Name() string { return Arr }

func (t *ArrType) Is(value any) bool {
	_, ok := AsList(value)
	return ok
}

func (t *ArrType) To(value any) (any, error) {
	return nil, &CoercionError{Type: Arr, Value: value}
}

func (t *ArrType) Base() (any, bool) { return nil, false }

// UndefinedType matches absent values, represented as nil.
type UndefinedType struct{}

func (t *UndefinedType) Name() string { return Undefined }

func (t *UndefinedType) Is(value any) bool { return value == nil }

func (t *UndefinedType) To(value any) (any, error) {
	return nil, &CoercionError{Type: Undefined, Value: value}
}

func (t *UndefinedType) Base() (any, bool) { return nil, false }

// AsMap returns value as a map[string]any. Maps with other string-kinded
// key types are copied into a fresh map.
func AsMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// AsList returns value as a []any. Typed slices and arrays are copied.
func AsList(value any) ([]any, bool) {
	if l, ok := value.([]any); ok {
		return l, l != nil
	}
	if value == nil {
		return nil, false
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
