package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Marker is written into the first line of every generated artifact.
// Readers use it to verify that a file was produced by this generator.
const Marker = "Code generated by maja42/cember/v1. DO NOT EDIT."

// MarkerLine is the full first line of a generated artifact.
const MarkerLine = "/* " + Marker + " */"

// BytesPerLine is the number of array elements rendered per output line.
const BytesPerLine = 16

// elementLen is the rendered size of a single byte: "0xNN, "
const elementLen = len("0x00, ")

const hexDigits = "0123456789ABCDEF"

// Syntax fragments shared by writer and parser.
const (
	arrayPrefix  = "const unsigned char "
	arraySuffix  = "[] = {"
	arrayEnd     = "};"
	sizePrefix   = "const int "
	externArray  = "extern const unsigned char %s[];\n"
	externSize   = "extern const int %s;\n"
	guardIfndef  = "#ifndef "
	guardDefine  = "#define "
	guardEndif   = "#endif"
	sizeofFormat = "sizeof(%s) / sizeof(%s[0])"
)

// RenderArray returns the definition of a byte array and its size constant.
//
//	const unsigned char name[] = {
//	0x01, 0x02, 0x03,
//	};
//
//	const int name_size = sizeof(name) / sizeof(name[0]);
//
// Empty arrays use the literal 0 as size, since sizeof on zero-length arrays
// is a compiler extension.
func RenderArray(name string, data []byte) []byte {
	lines := (len(data) + BytesPerLine - 1) / BytesPerLine
	out := make([]byte, 0, len(data)*elementLen+lines+3*len(name)+96)

	out = append(out, arrayPrefix...)
	out = append(out, name...)
	out = append(out, arraySuffix...)
	out = append(out, '\n')
	for i, b := range data {
		out = append(out, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0F], ',', ' ')
		if i%BytesPerLine == BytesPerLine-1 || i == len(data)-1 {
			out = append(out, '\n')
		}
	}
	out = append(out, arrayEnd...)
	out = append(out, "\n\n"...)

	out = append(out, sizePrefix...)
	out = append(out, SizeSymbol(name)...)
	out = append(out, " = "...)
	if len(data) == 0 {
		out = append(out, '0')
	} else {
		out = append(out, fmt.Sprintf(sizeofFormat, name, name)...)
	}
	out = append(out, ";\n\n"...)
	return out
}

// WriteArray writes the definition of a byte array and its size constant.
func WriteArray(w io.Writer, name string, data []byte) error {
	_, err := w.Write(RenderArray(name, data))
	return err
}

// WriteMarker writes the generated-code marker line.
func WriteMarker(w io.Writer) error {
	_, err := io.WriteString(w, MarkerLine+"\n\n")
	return err
}

// WriteGuardOpen writes the opening include guard pair.
func WriteGuardOpen(w io.Writer, guard string) error {
	_, err := io.WriteString(w, guardIfndef+guard+"\n"+guardDefine+guard+"\n\n")
	return err
}

// WriteGuardClose writes the closing include guard line.
func WriteGuardClose(w io.Writer) error {
	_, err := io.WriteString(w, "\n"+guardEndif+"\n")
	return err
}

// WriteExtern writes the external declarations of an array and its size constant.
func WriteExtern(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, externArray+externSize, name, SizeSymbol(name))
	return err
}

// ParseArrayStart returns the array name if line opens an array definition.
func ParseArrayStart(line string) (string, bool) {
	if !strings.HasPrefix(line, arrayPrefix) || !strings.HasSuffix(line, arraySuffix) {
		return "", false
	}
	name := line[len(arrayPrefix) : len(line)-len(arraySuffix)]
	return name, name != ""
}

// IsArrayEnd reports whether line closes an array definition.
func IsArrayEnd(line string) bool {
	return line == arrayEnd
}

// ParseHexLine decodes a line of "0xNN, " elements.
func ParseHexLine(line string) ([]byte, error) {
	fields := strings.Fields(line)
	data := make([]byte, 0, len(fields))
	for _, f := range fields {
		if len(f) != len("0xNN,") || f[0] != '0' || f[1] != 'x' || f[4] != ',' {
			return nil, fmt.Errorf("malformed element %q", f)
		}
		b, err := strconv.ParseUint(f[2:4], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("malformed element %q", f)
		}
		data = append(data, byte(b))
	}
	return data, nil
}

// ParseSizeLine parses the size constant of the array called name.
// Returns the literal size, or -1 if the size is computed via sizeof.
func ParseSizeLine(line, name string) (int64, error) {
	prefix := sizePrefix + SizeSymbol(name) + " = "
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, ";") {
		return 0, fmt.Errorf("expected size constant of %q", name)
	}
	value := line[len(prefix) : len(line)-1]
	if value == fmt.Sprintf(sizeofFormat, name, name) {
		return -1, nil
	}
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("invalid size %q of %q", value, name)
	}
	return size, nil
}

// ParseGuard returns the token of an "#ifndef" or "#define" line.
// kind is either "ifndef" or "define".
func ParseGuard(line string) (kind, token string, ok bool) {
	switch {
	case strings.HasPrefix(line, guardIfndef):
		return "ifndef", strings.TrimSpace(line[len(guardIfndef):]), true
	case strings.HasPrefix(line, guardDefine):
		return "define", strings.TrimSpace(line[len(guardDefine):]), true
	}
	return "", "", false
}

// IsGuardEnd reports whether line closes the include guard.
func IsGuardEnd(line string) bool {
	return line == guardEndif
}

// ParseExtern returns the declared symbol of an extern line and whether it declares an array.
func ParseExtern(line string) (symbol string, array bool, ok bool) {
	var name string
	if _, err := fmt.Sscanf(line, "extern const unsigned char %s", &name); err == nil && strings.HasSuffix(name, "[];") {
		return strings.TrimSuffix(name, "[];"), true, true
	}
	if _, err := fmt.Sscanf(line, "extern const int %s", &name); err == nil && strings.HasSuffix(name, ";") {
		return strings.TrimSuffix(name, ";"), false, true
	}
	return "", false, false
}
