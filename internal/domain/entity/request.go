package entity

type Language string

const (
	LanguageNepali  Language = "ne"
	LanguageEnglish Language = "en"
)

type BrandRequest struct {
	Name     Text     `json:"name"`
	Industry Text     `json:"type"`
	Problem  Text     `json:"problem"`
	Tone     Text     `json:"tone"`
	Lang     Language `json:"lang"`
}

type ContentRequest struct {
	BrandData Text     `json:"brandData"`
	Platform  Text     `json:"platform"`
	Goal      Text     `json:"goal"`
	Lang      Language `json:"lang"`
}

type LogoRequest struct {
	Name     Text `json:"name"`
	Industry Text `json:"type"`
	Tone     Text `json:"tone"`
}
