package native

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// LookupCharset resolves a charset label such as "UTF-8", "utf8" or "latin1".
// The empty label means UTF-8.
func LookupCharset(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	return enc, nil
}

// CanonicalCharset returns the canonical name of a charset label, preferring
// the IANA name ("utf8" becomes "UTF-8").
func CanonicalCharset(name string) (string, error) {
	enc, err := LookupCharset(name)
	if err != nil {
		return "", err
	}
	if canonical, err := ianaindex.IANA.Name(enc); err == nil && canonical != "" {
		return canonical, nil
	}
	return htmlindex.Name(enc)
}
