package speech

import "github.com/hoanghai1803/tribalwiki/internal/locale"

// EnglishLocale is the last-resort voice.
const EnglishLocale = "en"

// Languages maps language names to speech locales. English has no entry;
// unknown names, english included, resolve to the table default.
var Languages = locale.NewTable(EnglishLocale,
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

// fallbacks maps a locale to the closest locale to voice it with when the
// engine cannot.
var fallbacks = map[string]string{
	"sa": "hi",
	"sd": "ur",
	"bn": "hi",
	"ta": "hi",
	"te": "hi",
	"mr": "hi",
	"gu": "hi",
	"kn": "hi",
	"ml": "hi",
	"pa": "hi",
	"or": "hi",
	"as": "hi",
}

// Fallback returns the substitute locale for code, if one is defined.
func Fallback(code string) (string, bool) {
	fb, ok := fallbacks[code]
	return fb, ok
}

// DefaultVoice is used for empty or unknown voice names.
const DefaultVoice = "default"

// Voice selects the accent (by Google domain) and pace of the speech.
type Voice struct {
	TLD         string `json:"tld"`
	Slow        bool   `json:"slow"`
	Description string `json:"description"`
}

// voiceNames lists the voices in presentation order.
var voiceNames = []string{"default", "slow", "uk", "au", "indian"}

var voices = map[string]Voice{
	"default": {TLD: "com", Description: "Standard voice"},
	"slow":    {TLD: "com", Slow: true, Description: "Slower speech for better understanding"},
	"uk":      {TLD: "co.uk", Description: "British English accent"},
	"au":      {TLD: "com.au", Description: "Australian English accent"},
	"indian":  {TLD: "co.in", Description: "Indian English accent"},
}

// VoiceFor resolves a voice name. Unknown names resolve to DefaultVoice; the
// returned name is the one actually used.
func VoiceFor(name string) (string, Voice) {
	if v, ok := voices[name]; ok {
		return name, v
	}
	return DefaultVoice, voices[DefaultVoice]
}

// VoiceNames returns the available voice names.
func VoiceNames() []string {
	out := make([]string, len(voiceNames))
	copy(out, voiceNames)
	return out
}

// VoiceDescriptions maps each voice name to a human-readable description.
func VoiceDescriptions() map[string]string {
	out := make(map[string]string, len(voices))
	for name, v := range voices {
		out[name] = v.Description
	}
	return out
}
