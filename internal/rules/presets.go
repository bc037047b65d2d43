package rules

func strp(s string) *string   { return &s }
func fltp(f float64) *float64 { return &f }
func boolp(b bool) *bool      { return &b }

// Presets is the standard legal-brief formatting rule set, in application
// order: headings first, then lettered and numbered subheadings, then
// bullets, then narrative text. Exposed via `redline rules presets`.
var Presets = []Rule{
	{
		Name:    "Format Main Headings",
		Enabled: true,
		Trigger: Trigger{
			Scope:         ScopeParagraph,
			MatchType:     MatchRegex,
			Pattern:       `^(FACTUAL BACKGROUND|PROCEDURAL HISTORY|LEGAL ANALYSIS|INTRODUCTION|CONCLUSION|[A-Z][A-Z ]{3,})$`,
			CaseSensitive: true,
		},
		Action: Action{
			Type: ActionFormat,
			Formatting: &Formatting{
				FontName:   strp("Times New Roman"),
				FontSize:   fltp(12),
				FontBold:   boolp(true),
				Alignment:  strp("left"),
				SpaceAfter: fltp(0),
			},
		},
	},
	{
		Name:    "Format Subheading Level A",
		Enabled: true,
		Trigger: Trigger{
			Scope:         ScopeParagraph,
			MatchType:     MatchRegex,
			Pattern:       `^[A-Z]\.\s+`,
			CaseSensitive: true,
		},
		Action: Action{
			Type: ActionFormat,
			Formatting: &Formatting{
				FontName:        strp("Times New Roman"),
				FontSize:        fltp(12),
				FontBold:        boolp(true),
				FirstLineIndent: fltp(0),
				LeftIndent:      fltp(0.5),
			},
		},
	},
	{
		Name:    "Format Subheading Level 1",
		Enabled: true,
		Trigger: Trigger{
			Scope:         ScopeParagraph,
			MatchType:     MatchRegex,
			Pattern:       `^\d+\.\s+`,
			CaseSensitive: true,
		},
		Action: Action{
			Type: ActionFormat,
			Formatting: &Formatting{
				FontName:        strp("Times New Roman"),
				FontSize:        fltp(12),
				FontBold:        boolp(false),
				FontItalic:      boolp(true),
				FirstLineIndent: fltp(0),
				LeftIndent:      fltp(1.0),
			},
		},
	},
	{
		Name:    "Format Bullet Points",
		Enabled: true,
		Trigger: Trigger{
			Scope:     ScopeParagraph,
			MatchType: MatchRegex,
			Pattern:   `.*`,
			IsList:    boolp(true),
		},
		Action: Action{
			Type: ActionFormat,
			Formatting: &Formatting{
				LeftIndent:      fltp(1.0),
				FirstLineIndent: fltp(-0.5),
				SpaceAfter:      fltp(6),
			},
		},
	},
	{
		Name:    "Format Narrative Text",
		Enabled: true,
		Trigger: Trigger{
			Scope:         ScopeParagraph,
			MatchType:     MatchRegex,
			Pattern:       `^(?!FACTUAL|PROCEDURAL|LEGAL|INTRODUCTION|CONCLUSION|[A-Z]\.|\d+\.|[•\-o]).{10,}`,
			CaseSensitive: true,
		},
		Action: Action{
			Type: ActionFormat,
			Formatting: &Formatting{
				FontName:        strp("Times New Roman"),
				FontSize:        fltp(12),
				Alignment:       strp("left"),
				FirstLineIndent: fltp(0.5),
				SpaceAfter:      fltp(0),
			},
		},
	},
}
