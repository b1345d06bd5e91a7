package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// TagAttr returns the value of the named attribute of a single self-closing
// or opening tag. Attribute names are matched case-insensitively and empty
// values count as absent.
func TagAttr(tag, name string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(tag))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			for {
				key, val, more := z.TagAttr()
				if strings.EqualFold(string(key), name) {
					v := strings.TrimSpace(string(val))
					return v, v != ""
				}
				if !more {
					return "", false
				}
			}
		}
	}
}
