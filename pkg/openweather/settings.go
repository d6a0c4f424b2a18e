package openweather

import "go-owm/pkg/http"

// Unit is the measurement system of returned values. The zero value leaves the
// choice to the API (standard units).
type Unit string

const (
	Metric   Unit = "metric"
	Imperial Unit = "imperial"
	Standard Unit = "standard"
)

// Language is a response language code. The zero value leaves the choice to the API.
type Language string

const (
	Afrikaans          Language = "af"
	Albanian           Language = "al"
	Arabic             Language = "ar"
	Azerbaijani        Language = "az"
	Bulgarian          Language = "bg"
	Catalan            Language = "ca"
	Czech              Language = "cz"
	Danish             Language = "da"
	German             Language = "de"
	Greek              Language = "el"
	English            Language = "en"
	Basque             Language = "eu"
	Persian            Language = "fa"
	Finnish            Language = "fi"
	French             Language = "fr"
	Galician           Language = "gl"
	Hebrew             Language = "he"
	Hindi              Language = "hi"
	Croatian           Language = "hr"
	Hungarian          Language = "hu"
	Indonesian         Language = "id"
	Italian            Language = "it"
	Japanese           Language = "ja"
	Korean             Language = "kr"
	Latvian            Language = "la"
	Lithuanian         Language = "lt"
	Macedonian         Language = "mk"
	Norwegian          Language = "no"
	Dutch              Language = "nl"
	Polish             Language = "pl"
	Portuguese         Language = "pt"
	PortugueseBrazil   Language = "pt_br"
	Romanian           Language = "ro"
	Russian            Language = "ru"
	Swedish            Language = "sv"
	Slovak             Language = "sk"
	Slovenian          Language = "sl"
	Spanish            Language = "sp"
	Serbian            Language = "sr"
	Thai               Language = "th"
	Turkish            Language = "tr"
	Ukrainian          Language = "ua"
	Vietnamese         Language = "vi"
	ChineseSimplified  Language = "zh_cn"
	ChineseTraditional Language = "zh_tw"
	Zulu               Language = "zu"
)

// Settings carries the optional presentation preferences of a request.
type Settings struct {
	Unit Unit
	Lang Language
}

// Params returns units and lang, in that order, omitting unset values.
func (s Settings) Params() http.QueryParams {
	params := http.QueryParams{}
	if s.Unit != "" {
		params = params.Add("units", string(s.Unit))
	}
	if s.Lang != "" {
		params = params.Add("lang", string(s.Lang))
	}
	return params
}
