package ipachar

// Kind classifies an inventory symbol.
type Kind int

const (
	Consonant Kind = iota
	Vowel
	Diacritic
	Suprasegmental
	Tone
	// Reference marks symbols known only from the reference character
	// set, with no row of their own in the table.
	Reference
	// Extension marks the Sinological extensions, which are not part of
	// the standard inventory.
	Extension
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Consonant:
		return "consonant"
	case Vowel:
		return "vowel"
	case Diacritic:
		return "diacritic"
	case Suprasegmental:
		return "suprasegmental"
	case Tone:
		return "tone"
	case Reference:
		return "reference"
	case Extension:
		return "extension"
	default:
		return "unknown"
	}
}

// entry is one row of the reference table. The first spelling is the
// canonical key; the others are accepted alternatives.
type entry struct {
	spellings []string
	name      string
	kind      Kind
}

// tied builds the spellings of an affricate or double articulation:
// tie bar above (canonical), tie bar below, plus any ligatures.
func tied(first, second string, ligatures ...string) []string {
	out := []string{first + "\u0361" + second, first + "\u035c" + second}
	return append(out, ligatures...)
}

var table = []entry{
	// --- Pulmonic consonants ------------------------------------------------
	{[]string{"p"}, "voiceless bilabial plosive consonant", Consonant},
	{[]string{"b"}, "voiced bilabial plosive consonant", Consonant},
	{[]string{"t"}, "voiceless alveolar plosive consonant", Consonant},
	{[]string{"d"}, "voiced alveolar plosive consonant", Consonant},
	{[]string{"ʈ"}, "voiceless retroflex plosive consonant", Consonant},
	{[]string{"ɖ"}, "voiced retroflex plosive consonant", Consonant},
	{[]string{"c"}, "voiceless palatal plosive consonant", Consonant},
	{[]string{"ɟ"}, "voiced palatal plosive consonant", Consonant},
	{[]string{"k"}, "voiceless velar plosive consonant", Consonant},
	{[]string{"ɡ", "g"}, "voiced velar plosive consonant", Consonant},
	{[]string{"q"}, "voiceless uvular plosive consonant", Consonant},
	{[]string{"ɢ"}, "voiced uvular plosive consonant", Consonant},
	{[]string{"ʡ"}, "voiceless epiglottal plosive consonant", Consonant},
	{[]string{"ʔ"}, "voiceless glottal plosive consonant", Consonant},
	{[]string{"m"}, "voiced bilabial nasal consonant", Consonant},
	{[]string{"ɱ"}, "voiced labio-dental nasal consonant", Consonant},
	{[]string{"n"}, "voiced alveolar nasal consonant", Consonant},
	{[]string{"ɳ"}, "voiced retroflex nasal consonant", Consonant},
	{[]string{"ɲ"}, "voiced palatal nasal consonant", Consonant},
	{[]string{"ŋ"}, "voiced velar nasal consonant", Consonant},
	{[]string{"ɴ"}, "voiced uvular nasal consonant", Consonant},
	{[]string{"ʙ"}, "voiced bilabial trill consonant", Consonant},
	{[]string{"r"}, "voiced alveolar trill consonant", Consonant},
	{[]string{"ʀ"}, "voiced uvular trill consonant", Consonant},
	{[]string{"ⱱ"}, "voiced labio-dental flap consonant", Consonant},
	{[]string{"ɾ"}, "voiced alveolar tap consonant", Consonant},
	{[]string{"ɽ"}, "voiced retroflex flap consonant", Consonant},
	{[]string{"ɺ"}, "voiced alveolar lateral-flap consonant", Consonant},
	{[]string{"ɸ"}, "voiceless bilabial non-sibilant-fricative consonant", Consonant},
	{[]string{"β"}, "voiced bilabial non-sibilant-fricative consonant", Consonant},
	{[]string{"f"}, "voiceless labio-dental non-sibilant-fricative consonant", Consonant},
	{[]string{"v"}, "voiced labio-dental non-sibilant-fricative consonant", Consonant},
	{[]string{"θ"}, "voiceless dental non-sibilant-fricative consonant", Consonant},
	{[]string{"ð"}, "voiced dental non-sibilant-fricative consonant", Consonant},
	{[]string{"s"}, "voiceless alveolar sibilant-fricative consonant", Consonant},
	{[]string{"z"}, "voiced alveolar sibilant-fricative consonant", Consonant},
	{[]string{"ʃ"}, "voiceless palato-alveolar sibilant-fricative consonant", Consonant},
	{[]string{"ʒ"}, "voiced palato-alveolar sibilant-fricative consonant", Consonant},
	{[]string{"ʂ"}, "voiceless retroflex sibilant-fricative consonant", Consonant},
	{[]string{"ʐ"}, "voiced retroflex sibilant-fricative consonant", Consonant},
	{[]string{"ɕ"}, "voiceless alveolo-palatal sibilant-fricative consonant", Consonant},
	{[]string{"ʑ"}, "voiced alveolo-palatal sibilant-fricative consonant", Consonant},
	{[]string{"ç"}, "voiceless palatal non-sibilant-fricative consonant", Consonant},
	{[]string{"ʝ"}, "voiced palatal non-sibilant-fricative consonant", Consonant},
	{[]string{"x"}, "voiceless velar non-sibilant-fricative consonant", Consonant},
	{[]string{"ɣ"}, "voiced velar non-sibilant-fricative consonant", Consonant},
	{[]string{"χ"}, "voiceless uvular non-sibilant-fricative consonant", Consonant},
	{[]string{"ʁ"}, "voiced uvular non-sibilant-fricative consonant", Consonant},
	{[]string{"ħ"}, "voiceless pharyngeal non-sibilant-fricative consonant", Consonant},
	{[]string{"ʕ"}, "voiced pharyngeal non-sibilant-fricative consonant", Consonant},
	{[]string{"ʜ"}, "voiceless epiglottal non-sibilant-fricative consonant", Consonant},
	{[]string{"ʢ"}, "voiced epiglottal non-sibilant-fricative consonant", Consonant},
	{[]string{"h"}, "voiceless glottal non-sibilant-fricative consonant", Consonant},
	{[]string{"ɦ"}, "voiced glottal non-sibilant-fricative consonant", Consonant},
	{[]string{"ɧ"}, "voiceless palatal-velar sibilant-fricative consonant", Consonant},
	{[]string{"ɬ"}, "voiceless alveolar lateral-fricative consonant", Consonant},
	{[]string{"ɮ"}, "voiced alveolar lateral-fricative consonant", Consonant},
	{[]string{"ʋ"}, "voiced labio-dental approximant consonant", Consonant},
	{[]string{"ɹ"}, "voiced alveolar approximant consonant", Consonant},
	{[]string{"ɻ"}, "voiced retroflex approximant consonant", Consonant},
	{[]string{"j"}, "voiced palatal approximant consonant", Consonant},
	{[]string{"ɰ"}, "voiced velar approximant consonant", Consonant},
	{[]string{"w"}, "voiced labio-velar approximant consonant", Consonant},
	{[]string{"ʍ"}, "voiceless labio-velar non-sibilant-fricative consonant", Consonant},
	{[]string{"ɥ"}, "voiced labio-palatal approximant consonant", Consonant},
	{[]string{"l"}, "voiced alveolar lateral-approximant consonant", Consonant},
	{[]string{"ɭ"}, "voiced retroflex lateral-approximant consonant", Consonant},
	{[]string{"ʎ"}, "voiced palatal lateral-approximant consonant", Consonant},
	{[]string{"ʟ"}, "voiced velar lateral-approximant consonant", Consonant},

	// --- Non-pulmonic consonants --------------------------------------------
	{[]string{"ʘ"}, "bilabial click consonant", Consonant},
	{[]string{"ǀ"}, "dental click consonant", Consonant},
	{[]string{"ǃ"}, "alveolar click consonant", Consonant},
	{[]string{"ǂ"}, "palato-alveolar click consonant", Consonant},
	{[]string{"ǁ"}, "alveolar lateral click consonant", Consonant},
	{[]string{"ɓ"}, "voiced bilabial implosive consonant", Consonant},
	{[]string{"ɗ"}, "voiced alveolar implosive consonant", Consonant},
	{[]string{"ʄ"}, "voiced palatal implosive consonant", Consonant},
	{[]string{"ɠ"}, "voiced velar implosive consonant", Consonant},
	{[]string{"ʛ"}, "voiced uvular implosive consonant", Consonant},

	// --- Affricates and double articulations --------------------------------
	{tied("t", "s", "ʦ"), "voiceless alveolar sibilant-affricate consonant", Consonant},
	{tied("d", "z", "ʣ"), "voiced alveolar sibilant-affricate consonant", Consonant},
	{tied("t", "ʃ", "ʧ"), "voiceless palato-alveolar sibilant-affricate consonant", Consonant},
	{tied("d", "ʒ", "ʤ"), "voiced palato-alveolar sibilant-affricate consonant", Consonant},
	{tied("t", "ɕ", "ʨ"), "voiceless alveolo-palatal sibilant-affricate consonant", Consonant},
	{tied("d", "ʑ", "ʥ"), "voiced alveolo-palatal sibilant-affricate consonant", Consonant},
	{tied("ʈ", "ʂ"), "voiceless retroflex sibilant-affricate consonant", Consonant},
	{tied("ɖ", "ʐ"), "voiced retroflex sibilant-affricate consonant", Consonant},
	{tied("p", "f"), "voiceless labio-dental affricate consonant", Consonant},
	{tied("t", "θ"), "voiceless dental non-sibilant-affricate consonant", Consonant},
	{tied("d", "ð"), "voiced dental non-sibilant-affricate consonant", Consonant},
	{tied("k", "x"), "voiceless velar affricate consonant", Consonant},
	{tied("t", "ɬ"), "voiceless alveolar lateral-affricate consonant", Consonant},
	{tied("k", "p"), "voiceless labial-velar plosive consonant", Consonant},
	{tied("ɡ", "b"), "voiced labial-velar plosive consonant", Consonant},

	// --- Vowels -------------------------------------------------------------
	{[]string{"i"}, "close front unrounded vowel", Vowel},
	{[]string{"y"}, "close front rounded vowel", Vowel},
	{[]string{"ɨ"}, "close central unrounded vowel", Vowel},
	{[]string{"ʉ"}, "close central rounded vowel", Vowel},
	{[]string{"ɯ"}, "close back unrounded vowel", Vowel},
	{[]string{"u"}, "close back rounded vowel", Vowel},
	{[]string{"ɪ"}, "near-close near-front unrounded vowel", Vowel},
	{[]string{"ʏ"}, "near-close near-front rounded vowel", Vowel},
	{[]string{"ʊ"}, "near-close near-back rounded vowel", Vowel},
	{[]string{"e"}, "close-mid front unrounded vowel", Vowel},
	{[]string{"ø"}, "close-mid front rounded vowel", Vowel},
	{[]string{"ɘ"}, "close-mid central unrounded vowel", Vowel},
	{[]string{"ɵ"}, "close-mid central rounded vowel", Vowel},
	{[]string{"ɤ"}, "close-mid back unrounded vowel", Vowel},
	{[]string{"o"}, "close-mid back rounded vowel", Vowel},
	{[]string{"ə"}, "mid central unrounded vowel", Vowel},
	{[]string{"ɚ"}, "rhotacized mid central unrounded vowel", Vowel},
	{[]string{"ɛ"}, "open-mid front unrounded vowel", Vowel},
	{[]string{"œ"}, "open-mid front rounded vowel", Vowel},
	{[]string{"ɜ"}, "open-mid central unrounded vowel", Vowel},
	{[]string{"ɝ"}, "rhotacized open-mid central unrounded vowel", Vowel},
	{[]string{"ɞ"}, "open-mid central rounded vowel", Vowel},
	{[]string{"ʌ"}, "open-mid back unrounded vowel", Vowel},
	{[]string{"ɔ"}, "open-mid back rounded vowel", Vowel},
	{[]string{"æ"}, "near-open front unrounded vowel", Vowel},
	{[]string{"ɐ"}, "near-open central unrounded vowel", Vowel},
	{[]string{"a"}, "open front unrounded vowel", Vowel},
	{[]string{"ɶ"}, "open front rounded vowel", Vowel},
	{[]string{"ɑ"}, "open back unrounded vowel", Vowel},
	{[]string{"ɒ"}, "open back rounded vowel", Vowel},

	// --- Diacritics ---------------------------------------------------------
	{[]string{"\u0325", "\u030a"}, "voiceless diacritic", Diacritic},
	{[]string{"\u032c"}, "voiced diacritic", Diacritic},
	{[]string{"ʰ"}, "aspirated diacritic", Diacritic},
	{[]string{"\u0339"}, "more-rounded diacritic", Diacritic},
	{[]string{"\u031c"}, "less-rounded diacritic", Diacritic},
	{[]string{"\u031f"}, "advanced diacritic", Diacritic},
	{[]string{"\u0320"}, "retracted diacritic", Diacritic},
	{[]string{"\u0308"}, "centralized diacritic", Diacritic},
	{[]string{"\u033d"}, "mid-centralized diacritic", Diacritic},
	{[]string{"\u0329", "\u030d"}, "syllabic diacritic", Diacritic},
	{[]string{"\u032f", "\u0311"}, "non-syllabic diacritic", Diacritic},
	{[]string{"˞"}, "rhoticity diacritic", Diacritic},
	{[]string{"\u0324"}, "breathy-voiced diacritic", Diacritic},
	{[]string{"\u0330"}, "creaky-voiced diacritic", Diacritic},
	{[]string{"\u033c"}, "linguolabial diacritic", Diacritic},
	{[]string{"ʷ"}, "labialized diacritic", Diacritic},
	{[]string{"ʲ"}, "palatalized diacritic", Diacritic},
	{[]string{"ˠ"}, "velarized diacritic", Diacritic},
	{[]string{"ˤ"}, "pharyngealized diacritic", Diacritic},
	{[]string{"\u0334"}, "velarized-or-pharyngealized diacritic", Diacritic},
	{[]string{"\u031d"}, "raised diacritic", Diacritic},
	{[]string{"\u031e"}, "lowered diacritic", Diacritic},
	{[]string{"\u0318"}, "advanced-tongue-root diacritic", Diacritic},
	{[]string{"\u0319"}, "retracted-tongue-root diacritic", Diacritic},
	{[]string{"\u032a"}, "dental diacritic", Diacritic},
	{[]string{"\u033a"}, "apical diacritic", Diacritic},
	{[]string{"\u033b"}, "laminal diacritic", Diacritic},
	{[]string{"\u0303"}, "nasalized diacritic", Diacritic},
	{[]string{"ⁿ"}, "nasal-release diacritic", Diacritic},
	{[]string{"ˡ"}, "lateral-release diacritic", Diacritic},
	{[]string{"\u031a"}, "no-audible-release diacritic", Diacritic},
	{[]string{"ʼ"}, "ejective diacritic", Diacritic},
	{[]string{"\u0361", "\u035c"}, "tie-bar diacritic", Diacritic},

	// --- Suprasegmentals ----------------------------------------------------
	{[]string{"ˈ"}, "primary-stress suprasegmental", Suprasegmental},
	{[]string{"ˌ"}, "secondary-stress suprasegmental", Suprasegmental},
	{[]string{"ː"}, "long suprasegmental", Suprasegmental},
	{[]string{"ˑ"}, "half-long suprasegmental", Suprasegmental},
	{[]string{"\u0306"}, "extra-short suprasegmental", Suprasegmental},
	{[]string{"."}, "syllable-break suprasegmental", Suprasegmental},
	{[]string{"|"}, "minor-group suprasegmental", Suprasegmental},
	{[]string{"‖"}, "major-group suprasegmental", Suprasegmental},
	{[]string{"‿"}, "linking suprasegmental", Suprasegmental},

	// --- Tones --------------------------------------------------------------
	{[]string{"˥"}, "extra-high-level tone", Tone},
	{[]string{"˦"}, "high-level tone", Tone},
	{[]string{"˧"}, "mid-level tone", Tone},
	{[]string{"˨"}, "low-level tone", Tone},
	{[]string{"˩"}, "extra-low-level tone", Tone},
	{[]string{"\u030b"}, "extra-high tone diacritic", Tone},
	{[]string{"\u0301"}, "high tone diacritic", Tone},
	{[]string{"\u0304"}, "mid tone diacritic", Tone},
	{[]string{"\u0300"}, "low tone diacritic", Tone},
	{[]string{"\u030f"}, "extra-low tone diacritic", Tone},
	{[]string{"\u030c"}, "rising tone diacritic", Tone},
	{[]string{"\u0302"}, "falling tone diacritic", Tone},
}

// SinologicalURL is the article section describing the Mandarin syllabic
// consonants transcribed with the Sinological extensions.
const SinologicalURL = "https://en.wikipedia.org/wiki/Standard_Chinese_phonology#Syllabic_consonants"

// SinologicalExtensions are the only symbols outside the standard inventory
// a transcription may carry.
var SinologicalExtensions = []Symbol{
	{Key: "ɿ", Name: "laminal denti-alveolar voiced continuant", Kind: Extension},
	{Key: "ʅ", Name: "apical retroflex voiced continuant", Kind: Extension},
}
