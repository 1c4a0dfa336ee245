package displaywidth

import (
	"unicode"

	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Category is one of 6 char categories as defined in UAX#11.
type Category int8

// East_Asian_Width properties
const (
	N  Category = iota // Neutral (Not East Asian)
	A                  // East Asian Ambiguous
	W                  // East Asian Wide
	Na                 // East Asian Narrow
	H                  // East Asian Halfwidth
	F                  // East Asian Fullwidth
)

func (c Category) String() string {
	switch c {
	case A:
		return "A"
	case W:
		return "W"
	case Na:
		return "Na"
	case H:
		return "H"
	case F:
		return "F"
	}
	return "N"
}

// CategoryOf returns the width category of a single rune as proposed by the UAX#11
// standard.
//
// Returns one of N, A, Na, W, H, F.
func CategoryOf(r rune) Category {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianAmbiguous:
		return A
	case width.EastAsianWide:
		return W
	case width.EastAsianNarrow:
		return Na
	case width.EastAsianHalfwidth:
		return H
	case width.EastAsianFullwidth:
		return F
	}
	return N
}

// Context represents information about the typesetting environment.
//
// From UAX#11:
// The term context as used here includes extra information such as explicit
// markup, knowledge of the source code page, font information, or language and
// script identification
type Context struct {
	ForceEastAsian bool            // force East Asian context
	Script         language.Script // ISO 15924 script identifier
	Locale         string          // ISO 639/3166 locale string
	resolve        resolver
}

// EastAsianContext is a context for East Asian languages.
var EastAsianContext = makeEastAsianContext()

// LatinContext is a context for western languages.
var LatinContext = makeLatinContext()

func makeEastAsianContext() *Context {
	ctx := &Context{
		ForceEastAsian: true,
		Script:         language.MustParseScript("Hant"),
		Locale:         "zh-Hant",
		resolve:        resolveToWide,
	}
	return ctx
}

func makeLatinContext() *Context {
	ctx := &Context{
		ForceEastAsian: false,
		Script:         language.MustParseScript("Latn"),
		Locale:         "en-US",
		resolve:        resolveToNarrow,
	}
	return ctx
}

// resolver decides on the width of ambiguous characters.
type resolver func(Category) int

func resolveToNarrow(cat Category) int {
	return 1
}

func resolveToWide(cat Category) int {
	return 2
}

func findResolver(script language.Script, lang language.Tag) resolver {
	scrcode := script.String()
	switch scrcode {
	case
		// East Asian
		"Bopo", "Hanb", "Hani", "Hans",
		"Hant", "Hang", "Hira", "Kana",
		"Jpan", "Kore",
		// South East Asian
		"Batk", "Beng", "Bugi", "Mymr",
		"Cham", "Java", "Khmr", "Laoo",
		"Lisu", "Mtei", "Thai", "Yiii",
		"Bali", "Khar", "Rjng",
		"Tglg", "Buhd", "Tagb":
		return resolveToWide
	}
	_, _, confidence := eaMatch.Match(lang)
	if confidence == language.No {
		return resolveToNarrow
	}
	return resolveToWide
}

var eaMatch = language.NewMatcher([]language.Tag{
	language.Chinese, // The first language is used as fallback.
	language.Japanese,
	language.Korean,
	language.Vietnamese,
	language.Thai,
	language.Mongolian,
	language.Burmese,
	language.Khmer,
})

// ContextForLocale creates a context for an IETF locale string like "ja-JP".
func ContextForLocale(locale string) *Context {
	lang := language.Make(locale)
	script, _ := lang.Script()
	ctx := &Context{
		Script:  script,
		Locale:  locale,
		resolve: findResolver(script, lang),
	}
	return ctx
}

// ContextFromEnvironment creates a context for the user's locale, as
// detected from the environment. If no locale can be detected, en-US is assumed.
func ContextFromEnvironment() *Context {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf("%s", err)
		userLocale = "en-US"
		T().Infof("UAX#11 sets default user locale %v", userLocale)
	} else {
		T().Infof("UAX#11 detected user locale %v", userLocale)
	}
	return ContextForLocale(userLocale)
}

// IsEastAsian is true if ambiguous characters are displayed wide in this context.
func (ctx *Context) IsEastAsian() bool {
	if ctx == nil {
		return false
	}
	return ctx.ForceEastAsian || (ctx.resolve != nil && ctx.resolve(A) == 2)
}

// Rune returns the display width of a rune in terms of `en`s, where 1en stands
// for 1/2em, i.e. half a full width character.
// Control characters, combining marks and format characters have width 0.
//
// If an empty context is given, LatinContext is assumed.
//
// Returns either 0, 1 (narrow character) or 2 (wide character).
func Rune(r rune, ctx *Context) int {
	if ctx == nil {
		ctx = LatinContext
	}
	if r == 0 || unicode.IsControl(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch cat := CategoryOf(r); cat {
	case W, F:
		return 2
	case A:
		if ctx.ForceEastAsian {
			return 2
		}
		if ctx.resolve != nil {
			return ctx.resolve(cat)
		}
	}
	return 1
}

// String returns the display width of a string, given a context.
func String(s string, ctx *Context) int {
	w := 0
	for _, r := range s {
		w += Rune(r, ctx)
	}
	return w
}
