package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StripMode defines how many file extensions are removed when deriving a symbol name.
type StripMode int

const (
	// StripOne removes the last extension only ("a.tar.gz" --> "a_tar").
	StripOne StripMode = iota
	// StripAll removes every extension ("a.tar.gz" --> "a").
	StripAll
)

func (m StripMode) String() string {
	switch m {
	case StripOne:
		return "one"
	case StripAll:
		return "all"
	}
	return fmt.Sprintf("StripMode(%d)", int(m))
}

// ParseStripMode parses "one" or "all".
func ParseStripMode(s string) (StripMode, error) {
	switch s {
	case "one":
		return StripOne, nil
	case "all":
		return StripAll, nil
	}
	return 0, fmt.Errorf("unknown strip mode %q (want one or all)", s)
}

// mangler replaces everything that is not allowed within C identifiers
// but commonly found in resource paths.
var mangler = strings.NewReplacer(
	"/", "_",
	"-", "_",
	" ", "_",
	".", "_",
)

// SymbolName derives the C symbol name of the file at path.
// The name is the path relative to base, with the extension(s) of the file removed
// and path separators, hyphens, spaces and remaining dots replaced by underscores.
// The result is not validated, see ValidIdentifier.
func SymbolName(base, path string, mode StripMode) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	dir, file := filepath.Split(filepath.ToSlash(rel))
	return mangler.Replace(dir + stripExt(file, mode)), nil
}

// stripExt removes the extension(s) of a file name.
// A leading dot (hidden files) does not start an extension.
func stripExt(file string, mode StripMode) string {
	for {
		i := strings.LastIndexByte(file, '.')
		if i <= 0 {
			return file
		}
		file = file[:i]
		if mode == StripOne {
			return file
		}
	}
}

// keywords of C11 plus the C23 additions; none of them may be used as identifier.
var keywords = make(map[string]bool)

func init() {
	for _, kw := range strings.Fields(`
		auto break case char const continue default do double else enum extern
		float for goto if inline int long register restrict return short signed
		sizeof static struct switch typedef union unsigned void volatile while
		_Alignas _Alignof _Atomic _Bool _Complex _Generic _Imaginary _Noreturn
		_Static_assert _Thread_local
		alignas alignof bool constexpr false nullptr static_assert thread_local
		true typeof typeof_unqual`) {
		keywords[kw] = true
	}
}

// ValidIdentifier returns a non-nil error describing why name cannot be used as C identifier.
func ValidIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return fmt.Errorf("starts with digit %q", c)
			}
		default:
			return fmt.Errorf("contains invalid character %q", c)
		}
	}
	if keywords[name] {
		return fmt.Errorf("reserved keyword")
	}
	return nil
}

// DefaultGuard is used if no guard name can be derived from the header file name.
const DefaultGuard = "__BUILTIN_RESOURCES_H__"

// GuardName derives the include guard token from the header's file name,
// e.g. "build/builtin_resources.h" --> "__BUILTIN_RESOURCES_H__".
func GuardName(headerPath string) string {
	base := filepath.Base(headerPath)
	if base == "." || base == string(filepath.Separator) {
		return DefaultGuard
	}
	var sb strings.Builder
	sb.WriteString("__")
	for i := 0; i < len(base); i++ {
		c := base[i]
		switch {
		case 'a' <= c && c <= 'z':
			sb.WriteByte(c - 'a' + 'A')
		case 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			sb.WriteByte(c)
		default:
			sb.WriteByte('_')
		}
	}
	sb.WriteString("__")
	return sb.String()
}
