package entity

import "fmt"

type Engine string

const (
	EngineBrand   Engine = "brand"
	EngineContent Engine = "content"
	EngineLogo    Engine = "logo"
)

type Prompt struct {
	Engine Engine
	Text   string
}

const (
	nepaliRule  = "Respond only in Nepali language."
	englishRule = "Respond only in English."
)

// LanguageRule returns the response-language directive. Only "ne" selects
// Nepali, every other value (including empty) falls back to English.
func LanguageRule(lang Language) string {
	if lang == LanguageNepali {
		return nepaliRule
	}
	return englishRule
}

const brandTemplate = `
You are a senior branding strategist.
%s

Company: %s
Industry: %s
Core Problem: %s
Brand Tone: %s

Deliver:
1. Brand Personality
2. Positioning Statement
3. Slogan
4. Logo Style
5. Content Direction
6. Do's & Don'ts
`

const contentTemplate = `
You are a content growth expert.
%s

Brand:
%s

Platform: %s
Goal: %s
`

const logoTemplate = "Minimal modern logo for %s, industry %s, tone %s"

func BrandPrompt(req BrandRequest) Prompt {
	return Prompt{
		Engine: EngineBrand,
		Text:   fmt.Sprintf(brandTemplate, LanguageRule(req.Lang), req.Name, req.Industry, req.Problem, req.Tone),
	}
}

func ContentPrompt(req ContentRequest) Prompt {
	return Prompt{
		Engine: EngineContent,
		Text:   fmt.Sprintf(contentTemplate, LanguageRule(req.Lang), req.BrandData, req.Platform, req.Goal),
	}
}

// LogoPrompt has no language directive: the image model receives a plain
// description.
func LogoPrompt(req LogoRequest) Prompt {
	return Prompt{
		Engine: EngineLogo,
		Text:   fmt.Sprintf(logoTemplate, req.Name, req.Industry, req.Tone),
	}
}
