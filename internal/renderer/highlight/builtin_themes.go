package highlight

import "github.com/dshills/duotone/internal/renderer/core"

// BuiltinThemes returns fresh copies of the built-in themes.
func BuiltinThemes() []*Theme {
	return []*Theme{
		DarkPlusTheme(),
		LightPlusTheme(),
		MonokaiTheme(),
		DraculaTheme(),
		SolarizedDarkTheme(),
		NordTheme(),
		OneDarkTheme(),
		GitHubLightTheme(),
	}
}

func hex(s string) core.Color { return core.MustParseColor(s) }

func fg(s string) core.Style { return core.NewStyle(hex(s)) }

// DarkPlusTheme returns a VS Code Dark+ inspired theme.
func DarkPlusTheme() *Theme {
	comment := core.ColorFromRGB(106, 153, 85)
	keyword := core.ColorFromRGB(86, 156, 214)
	control := core.ColorFromRGB(197, 134, 192)
	str := core.ColorFromRGB(206, 145, 120)
	number := core.ColorFromRGB(181, 206, 168)
	function := core.ColorFromRGB(220, 220, 170)
	typ := core.ColorFromRGB(78, 201, 176)
	variable := core.ColorFromRGB(156, 220, 254)
	operator := core.ColorFromRGB(212, 212, 212)
	invalid := core.ColorFromRGB(244, 71, 71)

	return &Theme{
		Name:        "dark-plus",
		DisplayName: "Dark+",
		Type:        ThemeDark,
		Background:  core.ColorFromRGB(30, 30, 30),
		Foreground:  core.ColorFromRGB(212, 212, 212),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:           core.NewStyle(comment).Italic(),
			TokenString:            core.NewStyle(str),
			TokenStringEscape:      core.NewStyle(core.ColorFromRGB(215, 186, 125)),
			TokenNumber:            core.NewStyle(number),
			TokenKeyword:           core.NewStyle(keyword),
			TokenKeywordControl:    core.NewStyle(control),
			TokenOperator:          core.NewStyle(operator),
			TokenPunctuation:       core.NewStyle(operator),
			TokenVariable:          core.NewStyle(variable),
			TokenConstant:          core.NewStyle(core.ColorFromRGB(79, 193, 255)),
			TokenConstantLanguage:  core.NewStyle(keyword),
			TokenFunction:          core.NewStyle(function),
			TokenFunctionBuiltin:   core.NewStyle(function),
			TokenTypeName:          core.NewStyle(typ),
			TokenTypeBuiltin:       core.NewStyle(typ),
			TokenStorage:           core.NewStyle(keyword),
			TokenInvalid:           core.NewStyle(invalid),
			TokenInvalidIllegal:    core.NewStyle(invalid).Bold(),
			TokenMarkupHeading:     core.NewStyle(keyword).Bold(),
			TokenMarkupBold:        core.DefaultStyle().Bold(),
			TokenMarkupItalic:      core.DefaultStyle().Italic(),
			TokenMarkupStrike:      core.DefaultStyle().Strikethrough(),
			TokenMarkupCode:        core.NewStyle(str),
			TokenMarkupLink:        core.NewStyle(typ).Underline(),
			TokenMeta:              core.NewStyle(control),
			TokenVariableParameter: core.NewStyle(variable).Italic(),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// LightPlusTheme returns a VS Code Light+ inspired theme.
func LightPlusTheme() *Theme {
	comment := core.ColorFromRGB(0, 128, 0)
	keyword := core.ColorFromRGB(0, 0, 255)
	control := core.ColorFromRGB(175, 0, 219)
	str := core.ColorFromRGB(163, 21, 21)
	number := core.ColorFromRGB(9, 134, 88)
	function := core.ColorFromRGB(121, 94, 38)
	typ := core.ColorFromRGB(38, 127, 153)
	variable := core.ColorFromRGB(0, 16, 128)
	invalid := core.ColorFromRGB(205, 49, 49)

	return &Theme{
		Name:        "light-plus",
		DisplayName: "Light+",
		Type:        ThemeLight,
		Background:  core.ColorFromRGB(255, 255, 255),
		Foreground:  core.ColorFromRGB(0, 0, 0),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:          core.NewStyle(comment).Italic(),
			TokenString:           core.NewStyle(str),
			TokenStringEscape:     core.NewStyle(core.ColorFromRGB(238, 0, 0)),
			TokenNumber:           core.NewStyle(number),
			TokenKeyword:          core.NewStyle(keyword),
			TokenKeywordControl:   core.NewStyle(control),
			TokenVariable:         core.NewStyle(variable),
			TokenConstant:         core.NewStyle(core.ColorFromRGB(0, 112, 193)),
			TokenConstantLanguage: core.NewStyle(keyword),
			TokenFunction:         core.NewStyle(function),
			TokenFunctionBuiltin:  core.NewStyle(function),
			TokenTypeName:         core.NewStyle(typ),
			TokenTypeBuiltin:      core.NewStyle(typ),
			TokenStorage:          core.NewStyle(keyword),
			TokenInvalid:          core.NewStyle(invalid),
			TokenInvalidIllegal:   core.NewStyle(invalid).Bold(),
			TokenMarkupHeading:    core.NewStyle(core.ColorFromRGB(128, 0, 0)).Bold(),
			TokenMarkupBold:       core.DefaultStyle().Bold(),
			TokenMarkupItalic:     core.DefaultStyle().Italic(),
			TokenMarkupCode:       core.NewStyle(str),
			TokenMarkupLink:       core.NewStyle(typ).Underline(),
			TokenMeta:             core.NewStyle(control),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	green := core.ColorFromRGB(166, 226, 46)
	orange := core.ColorFromRGB(253, 151, 31)
	yellow := core.ColorFromRGB(230, 219, 116)
	blue := core.ColorFromRGB(102, 217, 239)
	purple := core.ColorFromRGB(174, 129, 255)
	comment := core.ColorFromRGB(117, 113, 94)
	white := core.ColorFromRGB(248, 248, 242)

	return &Theme{
		Name:        "monokai",
		DisplayName: "Monokai",
		Type:        ThemeDark,
		Background:  core.ColorFromRGB(39, 40, 34),
		Foreground:  white,
		TokenStyles: map[TokenType]core.Style{
			TokenComment:            core.NewStyle(comment),
			TokenString:             core.NewStyle(yellow),
			TokenStringEscape:       core.NewStyle(purple),
			TokenNumber:             core.NewStyle(purple),
			TokenKeyword:            core.NewStyle(pink),
			TokenKeywordDeclaration: core.NewStyle(blue).Italic(),
			TokenOperator:           core.NewStyle(pink),
			TokenPunctuation:        core.NewStyle(white),
			TokenVariable:           core.NewStyle(white),
			TokenVariableParameter:  core.NewStyle(orange).Italic(),
			TokenConstant:           core.NewStyle(purple),
			TokenFunction:           core.NewStyle(green),
			TokenFunctionBuiltin:    core.NewStyle(blue),
			TokenTypeName:           core.NewStyle(blue).Italic(),
			TokenTypeBuiltin:        core.NewStyle(blue).Italic(),
			TokenStorage:            core.NewStyle(pink),
			TokenInvalid:            core.NewStyle(pink).WithBackground(core.ColorFromRGB(80, 20, 40)),
			TokenInvalidIllegal:     core.NewStyle(pink).Bold(),
			TokenMeta:               core.NewStyle(comment),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	pink := core.ColorFromRGB(255, 121, 198)
	green := core.ColorFromRGB(80, 250, 123)
	orange := core.ColorFromRGB(255, 184, 108)
	yellow := core.ColorFromRGB(241, 250, 140)
	purple := core.ColorFromRGB(189, 147, 249)
	cyan := core.ColorFromRGB(139, 233, 253)
	red := core.ColorFromRGB(255, 85, 85)
	comment := core.ColorFromRGB(98, 114, 164)
	white := core.ColorFromRGB(248, 248, 242)

	return &Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Type:        ThemeDark,
		Background:  core.ColorFromRGB(40, 42, 54),
		Foreground:  white,
		TokenStyles: map[TokenType]core.Style{
			TokenComment:           core.NewStyle(comment),
			TokenString:            core.NewStyle(yellow),
			TokenStringEscape:      core.NewStyle(pink),
			TokenNumber:            core.NewStyle(purple),
			TokenKeyword:           core.NewStyle(pink),
			TokenOperator:          core.NewStyle(pink),
			TokenPunctuation:       core.NewStyle(white),
			TokenVariable:          core.NewStyle(white),
			TokenVariableParameter: core.NewStyle(orange).Italic(),
			TokenConstant:          core.NewStyle(purple),
			TokenFunction:          core.NewStyle(green),
			TokenFunctionBuiltin:   core.NewStyle(cyan),
			TokenTypeName:          core.NewStyle(cyan).Italic(),
			TokenTypeBuiltin:       core.NewStyle(cyan).Italic(),
			TokenStorage:           core.NewStyle(pink),
			TokenInvalid:           core.NewStyle(red),
			TokenInvalidIllegal:    core.NewStyle(red).Bold(),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// SolarizedDarkTheme returns a Solarized Dark theme.
func SolarizedDarkTheme() *Theme {
	base01 := core.ColorFromRGB(88, 110, 117)
	yellow := core.ColorFromRGB(181, 137, 0)
	orange := core.ColorFromRGB(203, 75, 22)
	red := core.ColorFromRGB(220, 50, 47)
	magenta := core.ColorFromRGB(211, 54, 130)
	violet := core.ColorFromRGB(108, 113, 196)
	blue := core.ColorFromRGB(38, 139, 210)
	cyan := core.ColorFromRGB(42, 161, 152)
	green := core.ColorFromRGB(133, 153, 0)

	return &Theme{
		Name:        "solarized-dark",
		DisplayName: "Solarized Dark",
		Type:        ThemeDark,
		Background:  core.ColorFromRGB(0, 43, 54),
		Foreground:  core.ColorFromRGB(131, 148, 150),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:         core.NewStyle(base01).Italic(),
			TokenString:          core.NewStyle(cyan),
			TokenStringEscape:    core.NewStyle(orange),
			TokenNumber:          core.NewStyle(magenta),
			TokenKeyword:         core.NewStyle(green),
			TokenPunctuation:     core.NewStyle(base01),
			TokenVariable:        core.NewStyle(blue),
			TokenConstant:        core.NewStyle(violet),
			TokenFunction:        core.NewStyle(blue),
			TokenFunctionBuiltin: core.NewStyle(blue),
			TokenTypeName:        core.NewStyle(yellow),
			TokenTypeBuiltin:     core.NewStyle(yellow),
			TokenStorage:         core.NewStyle(green),
			TokenStorageModifier: core.NewStyle(orange),
			TokenInvalid:         core.NewStyle(red),
			TokenInvalidIllegal:  core.NewStyle(red).Bold(),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// NordTheme returns a Nord-inspired theme.
func NordTheme() *Theme {
	return &Theme{
		Name:        "nord",
		DisplayName: "Nord",
		Type:        ThemeDark,
		Background:  hex("#2E3440"),
		Foreground:  hex("#D8DEE9"),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:         fg("#616E88").Italic(),
			TokenString:          fg("#A3BE8C"),
			TokenStringEscape:    fg("#EBCB8B"),
			TokenNumber:          fg("#B48EAD"),
			TokenKeyword:         fg("#81A1C1"),
			TokenOperator:        fg("#81A1C1"),
			TokenPunctuation:     fg("#ECEFF4"),
			TokenConstant:        fg("#81A1C1"),
			TokenFunction:        fg("#88C0D0"),
			TokenFunctionBuiltin: fg("#88C0D0"),
			TokenTypeName:        fg("#8FBCBB"),
			TokenTypeBuiltin:     fg("#81A1C1"),
			TokenStorage:         fg("#81A1C1"),
			TokenMeta:            fg("#D08770"),
			TokenInvalid:         fg("#BF616A"),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// OneDarkTheme returns an Atom One Dark inspired theme.
func OneDarkTheme() *Theme {
	return &Theme{
		Name:        "one-dark",
		DisplayName: "One Dark",
		Type:        ThemeDark,
		Background:  hex("#282C34"),
		Foreground:  hex("#ABB2BF"),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:          fg("#7F848E").Italic(),
			TokenString:           fg("#98C379"),
			TokenStringEscape:     fg("#56B6C2"),
			TokenNumber:           fg("#D19A66"),
			TokenKeyword:          fg("#C678DD"),
			TokenOperator:         fg("#56B6C2"),
			TokenVariable:         fg("#E06C75"),
			TokenConstant:         fg("#D19A66"),
			TokenFunction:         fg("#61AFEF"),
			TokenFunctionBuiltin:  fg("#56B6C2"),
			TokenTypeName:         fg("#E5C07B"),
			TokenTypeBuiltin:      fg("#E5C07B"),
			TokenStorage:          fg("#C678DD"),
			TokenMeta:             fg("#61AFEF"),
			TokenInvalid:          fg("#FFFFFF").WithBackground(hex("#E05252")),
			TokenConstantLanguage: fg("#D19A66"),
		},
		ScopeStyles: map[string]core.Style{},
	}
}

// GitHubLightTheme returns a GitHub Light inspired theme.
func GitHubLightTheme() *Theme {
	return &Theme{
		Name:        "github-light",
		DisplayName: "GitHub Light",
		Type:        ThemeLight,
		Background:  hex("#FFFFFF"),
		Foreground:  hex("#24292E"),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:         fg("#6A737D"),
			TokenString:          fg("#032F62"),
			TokenNumber:          fg("#005CC5"),
			TokenKeyword:         fg("#D73A49"),
			TokenOperator:        fg("#D73A49"),
			TokenConstant:        fg("#005CC5"),
			TokenFunction:        fg("#6F42C1"),
			TokenFunctionBuiltin: fg("#005CC5"),
			TokenTypeName:        fg("#6F42C1"),
			TokenTypeBuiltin:     fg("#005CC5"),
			TokenStorage:         fg("#D73A49"),
			TokenMarkupHeading:   fg("#005CC5").Bold(),
			TokenMarkupBold:      core.DefaultStyle().Bold(),
			TokenMarkupItalic:    core.DefaultStyle().Italic(),
			TokenInvalid:         fg("#B31D28").Italic(),
		},
		ScopeStyles: map[string]core.Style{},
	}
}
