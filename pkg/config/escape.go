package config

import (
	"strings"

	"github.com/huaijinli/wazuh/pkg/xmltree"
)

// The loader substitutes escape sequences with placeholder tokens so
// literal angle brackets survive the XML parse (see pkg/xmltree). The
// reader resolves the entity tokens back to their characters in every
// scalar it produces; the upload path runs the full four token round
// trip before and after pretty printing.
//
// The tokens are plain strings with nothing delimiting them from user
// data: a value that happens to contain a token verbatim will be
// rewritten. Known limitation, kept for compatibility with documents
// produced by the existing tooling.

var scalarDecoder = strings.NewReplacer(
	xmltree.TokenAmpLt, "<",
	xmltree.TokenAmpGt, ">",
)

// DecodeValue resolves the entity placeholder tokens inside every
// scalar of v, recursing through sequences and maps. It is applied to
// each option value right after it is read.
func DecodeValue(v Value) Value {
	switch t := v.(type) {
	case Scalar:
		return Scalar(scalarDecoder.Replace(string(t)))
	case Sequence:
		for i := range t {
			t[i] = DecodeValue(t[i])
		}
		return t
	case Map:
		for k := range t {
			t[k] = DecodeValue(t[k])
		}
		return t
	default:
		return v
	}
}

var entityEncoder = strings.NewReplacer(
	`\<`, xmltree.TokenOpenTag,
	`\>`, xmltree.TokenCloseTag,
	"&lt;", xmltree.TokenAmpLt,
	"&gt;", xmltree.TokenAmpGt,
)

var entityDecoder = strings.NewReplacer(
	xmltree.TokenOpenTag, `\<`,
	xmltree.TokenCloseTag, `\>`,
	xmltree.TokenAmpLt, "&lt;",
	xmltree.TokenAmpGt, "&gt;",
)

// EncodeEntities substitutes the four escape sequences of a raw
// submitted document with their placeholder tokens, protecting them
// from the XML tooling used during upload.
func EncodeEntities(s string) string {
	return entityEncoder.Replace(s)
}

// DecodeEntities restores the placeholder tokens to their original
// escape sequences. DecodeEntities(EncodeEntities(s)) == s for any s
// that does not already contain a token verbatim.
func DecodeEntities(s string) string {
	return entityDecoder.Replace(s)
}
