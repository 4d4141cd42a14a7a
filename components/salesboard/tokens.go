package salesboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ettle/strcase"
)

// FontSize pairs a font size with its line height.
type FontSize struct {
	Size       string `json:"size" yaml:"size"`
	LineHeight string `json:"lineHeight" yaml:"lineHeight"`
}

// Tokens is the design token set shared by the templates and the generated
// stylesheet. Keys mirror the utility names used in the markup (primary-500,
// shadow-card, h-button).
type Tokens struct {
	Colors                   map[string]map[string]string `json:"colors" yaml:"colors"`
	Spacing                  map[string]string            `json:"spacing" yaml:"spacing"`
	FontFamily               map[string][]string          `json:"fontFamily" yaml:"fontFamily"`
	FontSize                 map[string]FontSize          `json:"fontSize" yaml:"fontSize"`
	FontWeight               map[string]string            `json:"fontWeight" yaml:"fontWeight"`
	LineHeight               map[string]string            `json:"lineHeight" yaml:"lineHeight"`
	BorderRadius             map[string]string            `json:"borderRadius" yaml:"borderRadius"`
	BoxShadow                map[string]string            `json:"boxShadow" yaml:"boxShadow"`
	ZIndex                   map[string]string            `json:"zIndex" yaml:"zIndex"`
	TransitionDuration       map[string]string            `json:"transitionDuration" yaml:"transitionDuration"`
	TransitionTimingFunction map[string]string            `json:"transitionTimingFunction" yaml:"transitionTimingFunction"`
	Screens                  map[string]string            `json:"screens" yaml:"screens"`
	Height                   map[string]string            `json:"height" yaml:"height"`
	MinHeight                map[string]string            `json:"minHeight" yaml:"minHeight"`
	MaxWidth                 map[string]string            `json:"maxWidth" yaml:"maxWidth"`
	GridTemplateColumns      map[string]string            `json:"gridTemplateColumns" yaml:"gridTemplateColumns"`
}

// TokenEntry is a flattened token path and value.
type TokenEntry struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

const defaultTokenKey = "DEFAULT"

var (
	sansStack = []string{"Inter", "-apple-system", "BlinkMacSystemFont", "Segoe UI", "Roboto", "Helvetica Neue", "Arial", "sans-serif"}
	monoStack = []string{"SF Mono", "Monaco", "Inconsolata", "Roboto Mono", "Source Code Pro", "monospace"}
)

func colorScale(values ...string) map[string]string {
	steps := []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}
	out := make(map[string]string, len(steps))
	for i, step := range steps {
		out[step] = values[i]
	}
	return out
}

// DefaultTokens returns a fresh copy of the built-in token set.
func DefaultTokens() Tokens {
	return Tokens{
		Colors: map[string]map[string]string{
			"primary": colorScale("#EBF4FF", "#DBEAFE", "#BFDBFE", "#93C5FD", "#60A5FA", "#0B5FFF", "#0A56E6", "#1D4ED8", "#1E40AF", "#1E3A8A"),
			"accent":  colorScale("#ECFDF5", "#D1FAE5", "#A7F3D0", "#6EE7B7", "#34D399", "#00C49A", "#059669", "#047857", "#065F46", "#064E3B"),
			"success": colorScale("#F0FDF4", "#DCFCE7", "#BBF7D0", "#86EFAC", "#4ADE80", "#10B981", "#059669", "#047857", "#065F46", "#064E3B"),
			"warning": colorScale("#FFFBEB", "#FEF3C7", "#FDE68A", "#FCD34D", "#FBBF24", "#F59E0B", "#D97706", "#B45309", "#92400E", "#78350F"),
			"error":   colorScale("#FEF2F2", "#FEE2E2", "#FECACA", "#FCA5A5", "#F87171", "#EF4444", "#DC2626", "#B91C1C", "#991B1B", "#7F1D1D"),
			"info":    colorScale("#EFF6FF", "#DBEAFE", "#BFDBFE", "#93C5FD", "#60A5FA", "#3B82F6", "#2563EB", "#1D4ED8", "#1E40AF", "#1E3A8A"),
			"gray":    colorScale("#F8FAFC", "#F1F5F9", "#E2E8F0", "#CBD5E1", "#94A3B8", "#64748B", "#475569", "#334155", "#1E293B", "#0F172A"),
		},
		Spacing: map[string]string{
			"0": "0px", "1": "4px", "2": "8px", "3": "12px", "4": "16px", "5": "20px",
			"6": "24px", "7": "28px", "8": "32px", "9": "36px", "10": "40px", "11": "44px",
			"12": "48px", "14": "56px", "16": "64px", "20": "80px", "24": "96px", "28": "112px",
			"32": "128px", "36": "144px", "40": "160px", "44": "176px", "48": "192px", "52": "208px",
			"56": "224px", "60": "240px", "64": "256px", "72": "288px", "80": "320px", "96": "384px",
			"xs": "4px", "sm": "8px", "md": "16px", "lg": "24px", "xl": "32px", "2xl": "48px", "3xl": "64px",
		},
		FontFamily: map[string][]string{
			"primary": append([]string(nil), sansStack...),
			"mono":    append([]string(nil), monoStack...),
			"sans":    append([]string(nil), sansStack...),
		},
		FontSize: map[string]FontSize{
			"xs":   {Size: "0.75rem", LineHeight: "1.25"},
			"sm":   {Size: "0.875rem", LineHeight: "1.375"},
			"base": {Size: "1rem", LineHeight: "1.5"},
			"lg":   {Size: "1.125rem", LineHeight: "1.5"},
			"xl":   {Size: "1.25rem", LineHeight: "1.5"},
			"2xl":  {Size: "1.5rem", LineHeight: "1.25"},
			"3xl":  {Size: "1.875rem", LineHeight: "1.25"},
			"4xl":  {Size: "2.25rem", LineHeight: "1.25"},
			"5xl":  {Size: "3rem", LineHeight: "1"},
			"6xl":  {Size: "3.75rem", LineHeight: "1"},
		},
		FontWeight: map[string]string{
			"light": "300", "normal": "400", "medium": "500",
			"semibold": "600", "bold": "700", "extrabold": "800",
		},
		LineHeight: map[string]string{
			"none": "1", "tight": "1.25", "snug": "1.375",
			"normal": "1.5", "relaxed": "1.625", "loose": "2",
		},
		BorderRadius: map[string]string{
			"none": "0px", "sm": "4px", defaultTokenKey: "6px", "md": "8px", "lg": "12px",
			"xl": "16px", "2xl": "20px", "3xl": "24px", "full": "9999px",
		},
		BoxShadow: map[string]string{
			"xs":         "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
			"sm":         "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06)",
			"DEFAULT":    "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)",
			"md":         "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)",
			"lg":         "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)",
			"xl":         "0 25px 50px -12px rgba(0, 0, 0, 0.25)",
			"2xl":        "0 25px 50px -12px rgba(0, 0, 0, 0.4)",
			"inner":      "inset 0 2px 4px 0 rgba(0, 0, 0, 0.06)",
			"inner-lg":   "inset 0 4px 6px 0 rgba(0, 0, 0, 0.1)",
			"none":       "none",
			"card":       "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06)",
			"card-hover": "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)",
			"modal":      "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)",
			"dropdown":   "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)",
		},
		ZIndex: map[string]string{
			"hide": "-1", "auto": "auto", "base": "0", "docked": "10", "dropdown": "1000",
			"sticky": "1100", "banner": "1200", "overlay": "1300", "modal": "1400",
			"popover": "1500", "skiplink": "1600", "toast": "1700", "tooltip": "1800",
		},
		TransitionDuration: map[string]string{
			"instant": "0ms", "fast": "150ms", "normal": "300ms", "slow": "500ms", "slower": "1000ms",
		},
		TransitionTimingFunction: map[string]string{
			"ease-linear": "linear",
			"ease-in":     "cubic-bezier(0.4, 0, 1, 1)",
			"ease-out":    "cubic-bezier(0, 0, 0.2, 1)",
			"ease-in-out": "cubic-bezier(0.4, 0, 0.2, 1)",
			"ease-bounce": "cubic-bezier(0.68, -0.55, 0.265, 1.55)",
		},
		Screens: map[string]string{
			"xs": "320px", "sm": "640px", "md": "768px", "lg": "1024px", "xl": "1280px", "2xl": "1536px",
		},
		Height: map[string]string{
			"button-sm": "36px", "button": "44px", "button-lg": "52px",
			"input": "44px", "input-sm": "36px", "input-lg": "52px",
		},
		MinHeight: map[string]string{
			"card-sm": "80px", "card": "120px", "card-lg": "160px", "touch": "44px",
		},
		MaxWidth: map[string]string{
			"container": "1200px", "prose": "65ch", "form": "480px",
		},
		GridTemplateColumns: map[string]string{
			"dashboard":        "280px 1fr",
			"dashboard-mobile": "1fr",
			"metrics":          "repeat(auto-fit, minmax(280px, 1fr))",
			"kpi-desktop":      "repeat(7, 1fr)",
			"kpi-tablet":       "repeat(4, 1fr)",
			"kpi-mobile":       "repeat(2, 1fr)",
		},
	}
}

// Entries flattens the token set into dotted paths sorted by path, e.g.
// "colors.primary.500" or "fontSize.xs.lineHeight".
func (t Tokens) Entries() []TokenEntry {
	var out []TokenEntry
	add := func(path, value string) {
		out = append(out, TokenEntry{Path: path, Value: value})
	}
	for scale, steps := range t.Colors {
		for step, value := range steps {
			add("colors."+scale+"."+step, value)
		}
	}
	for name, stack := range t.FontFamily {
		add("fontFamily."+name, fontStack(stack))
	}
	for name, size := range t.FontSize {
		add("fontSize."+name, size.Size)
		if size.LineHeight != "" {
			add("fontSize."+name+".lineHeight", size.LineHeight)
		}
	}
	flat := map[string]map[string]string{
		"spacing":                  t.Spacing,
		"fontWeight":               t.FontWeight,
		"lineHeight":               t.LineHeight,
		"borderRadius":             t.BorderRadius,
		"boxShadow":                t.BoxShadow,
		"zIndex":                   t.ZIndex,
		"transitionDuration":       t.TransitionDuration,
		"transitionTimingFunction": t.TransitionTimingFunction,
		"screens":                  t.Screens,
		"height":                   t.Height,
		"minHeight":                t.MinHeight,
		"maxWidth":                 t.MaxWidth,
		"gridTemplateColumns":      t.GridTemplateColumns,
	}
	for group, values := range flat {
		for key, value := range values {
			add(group+"."+key, value)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Lookup resolves a dotted token path. "borderRadius" alone resolves the
// DEFAULT entry.
func (t Tokens) Lookup(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	for _, entry := range t.Entries() {
		if entry.Path == path {
			return entry.Value, true
		}
	}
	if !strings.HasSuffix(path, "."+defaultTokenKey) {
		return t.Lookup(path + "." + defaultTokenKey)
	}
	return "", false
}

// CSSVariables returns the token set as CSS custom properties. Group names
// are kebab cased; DEFAULT entries drop their suffix.
func (t Tokens) CSSVariables() map[string]string {
	entries := t.Entries()
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		vars[cssVariableName(entry.Path)] = entry.Value
	}
	return vars
}

// CSSVariablesInline renders the variables as a style attribute value.
func (t Tokens) CSSVariablesInline() string {
	vars := t.CSSVariables()
	names := sortedKeys(vars)
	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(vars[name])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

// Stylesheet renders a :root block with every token variable.
func (t Tokens) Stylesheet() string {
	vars := t.CSSVariables()
	var builder strings.Builder
	builder.WriteString(":root {\n")
	for _, name := range sortedKeys(vars) {
		fmt.Fprintf(&builder, "  %s: %s;\n", name, vars[name])
	}
	builder.WriteString("}\n")
	return builder.String()
}

func cssVariableName(path string) string {
	parts := strings.Split(path, ".")
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		switch {
		case part == defaultTokenKey:
			continue
		case i == 0 || part == "lineHeight":
			out = append(out, strcase.ToKebab(part))
		default:
			out = append(out, strings.ToLower(part))
		}
	}
	return "--" + strings.Join(out, "-")
}

func fontStack(families []string) string {
	quoted := make([]string, len(families))
	for i, family := range families {
		if strings.ContainsRune(family, ' ') {
			family = "'" + family + "'"
		}
		quoted[i] = family
	}
	return strings.Join(quoted, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
