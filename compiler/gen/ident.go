package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Casing classifies the detected case signature of a split word.
type Casing int

const (
	// CasingAllLower marks words with no uppercase letters.
	CasingAllLower Casing = iota
	// CasingAllUpper marks acronym-like words of two or more uppercase letters.
	CasingAllUpper
	// CasingCapitalized marks words with a single leading uppercase letter.
	CasingCapitalized
	// CasingMixed marks anything else, including digit runs.
	CasingMixed
)

// Word is one token produced by SplitWords. The casing tag decides
// acronym handling when the word is recombined.
type Word struct {
	Text   string
	Casing Casing
}

// WordStyle transforms a single legalized word.
type WordStyle func(string) string

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// AllUpperStyle uppercases the whole word.
func AllUpperStyle(s string) string { return upperCaser.String(s) }

// AllLowerStyle lowercases the whole word.
func AllLowerStyle(s string) string { return lowerCaser.String(s) }

// FirstUpperStyle uppercases the first rune and lowercases the rest.
func FirstUpperStyle(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + lowerCaser.String(s[size:])
}

// KeepStyle leaves the word untouched.
func KeepStyle(s string) string { return s }

// IsStartCharacter reports whether r may begin an identifier in the
// default alphabet: a letter or an underscore.
func IsStartCharacter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsPartCharacter reports whether r may appear anywhere in an identifier
// in the default alphabet. Beyond start characters this admits decimal
// digits, connector punctuation and combining marks, following the
// Unicode identifier recommendation.
func IsPartCharacter(r rune) bool {
	return IsStartCharacter(r) ||
		unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Pc, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r)
}

// Legalize drops every rune of s failing the part predicate. Disallowed
// runes are removed, never substituted. Callers legalize each split word
// separately rather than the whole label once, so that dropped runes
// cannot glue two words together.
func Legalize(s string, part func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if part(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LegalizeDefault legalizes with the default identifier alphabet.
func LegalizeDefault(s string) string { return Legalize(s, IsPartCharacter) }

type runeClass int

const (
	classLower runeClass = iota
	classUpper
	classDigit
	classSeparator
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r), r == '\'':
		return classLower
	default:
		return classSeparator
	}
}

// SplitWords segments a label into an ordered sequence of words. The
// segmentation is total: every rune either lands in exactly one word or
// is discarded as a separator. Boundaries occur at separators, at
// letter/digit transitions, at lower-to-upper camel transitions, and
// between an uppercase run and a trailing capitalized word (the end of
// an acronym, as in "HTTPServer").
func SplitWords(label string) []Word {
	label = norm.NFC.String(label)
	runes := []rune(label)
	var words []Word
	var current []rune

	flush := func() {
		if len(current) == 0 {
			return
		}
		words = append(words, Word{Text: string(current), Casing: detectCasing(current)})
		current = current[:0]
	}

	var prev runeClass = classSeparator
	for i, r := range runes {
		cls := classify(r)
		switch {
		case cls == classSeparator:
			flush()
		case prev == classSeparator:
			current = append(current, r)
		case cls != prev && (cls == classDigit || prev == classDigit):
			flush()
			current = append(current, r)
		case cls == classUpper && prev == classLower:
			flush()
			current = append(current, r)
		case cls == classUpper && prev == classUpper && nextIsLower(runes, i):
			// An uppercase run followed by a lowercase rune: the last
			// uppercase rune starts a new capitalized word.
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = cls
	}
	flush()
	return words
}

func nextIsLower(runes []rune, i int) bool {
	return i+1 < len(runes) && classify(runes[i+1]) == classLower
}

func detectCasing(runes []rune) Casing {
	upper, lower := 0, 0
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	switch {
	case upper == 0:
		return CasingAllLower
	case lower == 0 && upper > 1:
		return CasingAllUpper
	case upper == 1 && unicode.IsUpper(runes[0]):
		return CasingCapitalized
	default:
		return CasingMixed
	}
}

// placeholderWord replaces a label whose words legalize to nothing.
const placeholderWord = "empty"

// prefixWord is synthesized ahead of identifiers whose first styled rune
// is not a legal start character, typically a digit.
const prefixWord = "the"

// CombineWords reassembles split words into one identifier. Each word is
// legalized individually; all-upper words take the acronym transform.
// The result is never empty and always begins with a rune accepted by
// isStart. The function is pure and idempotent: re-splitting its output
// and recombining under the same style reproduces the same string.
func CombineWords(words []Word, legalize func(string) string, first, rest, firstAcronym, restAcronym WordStyle, sep string, isStart func(rune) bool) string {
	styled := make([]string, 0, len(words))
	for _, w := range words {
		text := legalize(w.Text)
		if text == "" {
			continue
		}
		acronym := w.Casing == CasingAllUpper
		var style WordStyle
		switch {
		case len(styled) == 0 && acronym:
			style = firstAcronym
		case len(styled) == 0:
			style = first
		case acronym:
			style = restAcronym
		default:
			style = rest
		}
		styled = append(styled, style(text))
	}
	if len(styled) == 0 {
		styled = append(styled, first(placeholderWord))
	}
	out := strings.Join(styled, sep)
	if r, _ := utf8.DecodeRuneInString(out); !isStart(r) {
		// Synthesize a leading word and recombine, so the former first
		// word takes the following-word transform. The prefix is all
		// letters, so a second pass cannot fail the start predicate.
		prefixed := append([]Word{{Text: prefixWord, Casing: CasingAllLower}}, words...)
		return CombineWords(prefixed, legalize, first, rest, firstAcronym, restAcronym, sep, isStart)
	}
	return out
}

// Style bundles the word transforms of one case policy.
type Style struct {
	First        WordStyle
	Rest         WordStyle
	FirstAcronym WordStyle
	RestAcronym  WordStyle
	Separator    string
}

// Prebuilt case policies used by the bundled targets.
var (
	// PascalCase: "user name" -> "UserName", "HTTP port" -> "HTTPPort".
	PascalCase = Style{First: FirstUpperStyle, Rest: FirstUpperStyle, FirstAcronym: AllUpperStyle, RestAcronym: AllUpperStyle}
	// CamelCase: "user name" -> "userName", "HTTP port" -> "httpPort".
	CamelCase = Style{First: AllLowerStyle, Rest: FirstUpperStyle, FirstAcronym: AllLowerStyle, RestAcronym: AllUpperStyle}
	// SnakeCase: "UserName" -> "user_name".
	SnakeCase = Style{First: AllLowerStyle, Rest: AllLowerStyle, FirstAcronym: AllLowerStyle, RestAcronym: AllLowerStyle, Separator: "_"}
	// ScreamingSnakeCase: "UserName" -> "USER_NAME".
	ScreamingSnakeCase = Style{First: AllUpperStyle, Rest: AllUpperStyle, FirstAcronym: AllUpperStyle, RestAcronym: AllUpperStyle, Separator: "_"}
)

// Apply splits, legalizes and recombines a raw label under the style
// with the default identifier alphabet.
func (st Style) Apply(label string) string {
	return st.ApplyWith(label, LegalizeDefault, IsStartCharacter)
}

// ApplyWith is Apply with a custom legalizer and start predicate.
func (st Style) ApplyWith(label string, legalize func(string) string, isStart func(rune) bool) string {
	return CombineWords(SplitWords(label), legalize, st.First, st.Rest, st.FirstAcronym, st.RestAcronym, st.Separator, isStart)
}
