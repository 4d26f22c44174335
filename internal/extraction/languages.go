package extraction

// knownLanguages maps lowercase human language names to their canonical form.
// Stands in for LANGUAGE-entity recognition: a mention only counts when it
// appears capitalized in the source text, the way a named entity would.
var knownLanguages = map[string]string{
	"english":    "English",
	"spanish":    "Spanish",
	"french":     "French",
	"german":     "German",
	"italian":    "Italian",
	"portuguese": "Portuguese",
	"dutch":      "Dutch",
	"russian":    "Russian",
	"ukrainian":  "Ukrainian",
	"polish":     "Polish",
	"czech":      "Czech",
	"swedish":    "Swedish",
	"norwegian":  "Norwegian",
	"danish":     "Danish",
	"finnish":    "Finnish",
	"greek":      "Greek",
	"turkish":    "Turkish",
	"arabic":     "Arabic",
	"hebrew":     "Hebrew",
	"hindi":      "Hindi",
	"urdu":       "Urdu",
	"bengali":    "Bengali",
	"mandarin":   "Mandarin",
	"chinese":    "Chinese",
	"cantonese":  "Cantonese",
	"japanese":   "Japanese",
	"korean":     "Korean",
	"vietnamese": "Vietnamese",
	"thai":       "Thai",
	"indonesian": "Indonesian",
	"malay":      "Malay",
	"tagalog":    "Tagalog",
	"swahili":    "Swahili",
	"romanian":   "Romanian",
	"hungarian":  "Hungarian",
	"bulgarian":  "Bulgarian",
	"croatian":   "Croatian",
	"serbian":    "Serbian",
	"slovak":     "Slovak",
	"farsi":      "Farsi",
	"persian":    "Persian",
}
