package filters

// Params holds the /DecodeParms of a stream with values converted to Go
// types: int, float64, bool or string.
type Params map[string]any

// Int returns the integer value of key, or def when it is missing or not a
// number.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns the boolean value of key, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}
