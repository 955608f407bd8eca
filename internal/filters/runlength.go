package filters

import "errors"

// RunLengthDecode expands PackBits style runs. A length byte n below 128
// copies the next n+1 bytes, above 128 repeats the next byte 257-n times,
// and 128 ends the data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var out []byte
	for i := 0; i < len(data); {
		n := int(data[i])
		i++
		switch {
		case n == 128:
			return out, nil
		case n < 128:
			if i+n+1 > len(data) {
				return nil, errors.New("RunLengthDecode: literal run past the end of the data")
			}
			out = append(out, data[i:i+n+1]...)
			i += n + 1
		default:
			if i >= len(data) {
				return nil, errors.New("RunLengthDecode: repeat run past the end of the data")
			}
			for j := 0; j < 257-n; j++ {
				out = append(out, data[i])
			}
			i++
		}
	}
	return out, nil
}
