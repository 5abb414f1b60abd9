package wiki

import "github.com/hoanghai1803/tribalwiki/internal/locale"

// DefaultLocale is the Wikipedia edition used for unknown languages and as
// the fallback when an article is missing from the requested edition.
const DefaultLocale = "en"

// Languages maps supported language names to Wikipedia edition codes.
var Languages = locale.NewTable(DefaultLocale,
	locale.Entry{Name: "english", Code: "en"},
	locale.Entry{Name: "sanskrit", Code: "sa"},
	locale.Entry{Name: "nepali", Code: "ne"},
	locale.Entry{Name: "sindhi", Code: "sd"},
	locale.Entry{Name: "hindi", Code: "hi"},
	locale.Entry{Name: "bengali", Code: "bn"},
	locale.Entry{Name: "tamil", Code: "ta"},
	locale.Entry{Name: "telugu", Code: "te"},
	locale.Entry{Name: "marathi", Code: "mr"},
	locale.Entry{Name: "gujarati", Code: "gu"},
	locale.Entry{Name: "kannada", Code: "kn"},
	locale.Entry{Name: "malayalam", Code: "ml"},
	locale.Entry{Name: "punjabi", Code: "pa"},
	locale.Entry{Name: "odia", Code: "or"},
	locale.Entry{Name: "assamese", Code: "as"},
)
