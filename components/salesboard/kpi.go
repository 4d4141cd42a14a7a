package salesboard

import "fmt"

// TrendStyle is the glyph/color pair rendered next to a trend delta.
type TrendStyle struct {
	Glyph     string `json:"glyph"`
	Color     string `json:"color"`
	AriaLabel string `json:"aria_label"`
}

// KPICardView is a render-ready KPI card.
type KPICardView struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	Direction  string     `json:"direction"`
	TrendValue string     `json:"trend_value"`
	Period     string     `json:"period"`
	Status     string     `json:"status"`
	StatusCSS  string     `json:"status_css"`
	Trend      TrendStyle `json:"trend"`
	AriaLabel  string     `json:"aria_label"`
}

// KPIGridView is the render-ready KPI grid.
type KPIGridView struct {
	Loading bool          `json:"loading"`
	Cards   []KPICardView `json:"cards"`
}

var defaultKPICards = []KPICard{
	{ID: "quota-attainment", Title: "Team Quota Attainment", Value: "94.2%", Trend: Trend{Direction: TrendUp, Value: "+2.1%", Period: "vs Last Week"}, Status: KPIStatusPositive},
	{ID: "conversion-rate", Title: "Conversion Rate", Value: "15.3%", Trend: Trend{Direction: TrendUp, Value: "+1.8%", Period: "vs Last Week"}, Status: KPIStatusPositive},
	{ID: "pipeline-value", Title: "Pipeline Value", Value: "$2.4M", Trend: Trend{Direction: TrendDown, Value: "-5.2%", Period: "vs Last Week"}, Status: KPIStatusNegative},
	{ID: "new-leads", Title: "New Leads", Value: "147", Trend: Trend{Direction: TrendUp, Value: "+12", Period: "vs Last Week"}, Status: KPIStatusPositive},
	{ID: "at-risk-deals", Title: "At Risk Deals", Value: "23", Trend: Trend{Direction: TrendUp, Value: "+7", Period: "vs Last Week"}, Status: KPIStatusWarning},
	{ID: "closed-won", Title: "Closed Won", Value: "$425K", Trend: Trend{Direction: TrendUp, Value: "+15%", Period: "vs Last Week"}, Status: KPIStatusPositive},
	{ID: "target-achievement", Title: "Target Achievement", Value: "112%", Trend: Trend{Direction: TrendUp, Value: "+12%", Period: "vs Target"}, Status: KPIStatusPositive},
}

// DefaultKPICards returns a copy of the demo KPI set.
func DefaultKPICards() []KPICard {
	return append([]KPICard(nil), defaultKPICards...)
}

// KPIStatusStyle maps a status to its border/background classes. Unknown
// values get the neutral style.
func KPIStatusStyle(status KPIStatus) string {
	switch status {
	case KPIStatusPositive:
		return "border-green-200 bg-green-50"
	case KPIStatusNegative:
		return "border-red-200 bg-red-50"
	case KPIStatusWarning:
		return "border-yellow-200 bg-yellow-50"
	default:
		return "border-gray-200 bg-white"
	}
}

// TrendStyleFor maps a direction to its glyph and color. Anything that is not
// up or down renders the warning glyph.
func TrendStyleFor(direction TrendDirection) TrendStyle {
	switch direction {
	case TrendUp:
		return TrendStyle{Glyph: "▲", Color: "text-green-600", AriaLabel: "Increasing"}
	case TrendDown:
		return TrendStyle{Glyph: "▼", Color: "text-red-600", AriaLabel: "Decreasing"}
	default:
		return TrendStyle{Glyph: "⚠", Color: "text-yellow-600", AriaLabel: "Warning"}
	}
}

func trendVerb(direction TrendDirection) string {
	switch direction {
	case TrendUp:
		return "increased"
	case TrendDown:
		return "decreased"
	default:
		return "changed"
	}
}

// BuildKPIGrid converts KPI records into card views. A nil slice selects the
// default cards; an empty non-nil slice renders nothing.
func BuildKPIGrid(cards []KPICard, loading bool) KPIGridView {
	if cards == nil {
		cards = defaultKPICards
	}
	view := KPIGridView{
		Loading: loading,
		Cards:   make([]KPICardView, 0, len(cards)),
	}
	for _, card := range cards {
		view.Cards = append(view.Cards, buildKPICard(card))
	}
	return view
}

func buildKPICard(card KPICard) KPICardView {
	return KPICardView{
		ID:         card.ID,
		Title:      card.Title,
		Value:      card.Value.String(),
		Direction:  string(card.Trend.Direction),
		TrendValue: card.Trend.Value,
		Period:     card.Trend.Period,
		Status:     string(card.Status),
		StatusCSS:  KPIStatusStyle(card.Status),
		Trend:      TrendStyleFor(card.Trend.Direction),
		AriaLabel: fmt.Sprintf("%s: %s, %s by %s %s",
			card.Title, card.Value, trendVerb(card.Trend.Direction), card.Trend.Value, card.Trend.Period),
	}
}

// FindKPI looks up a card by id.
func FindKPI(cards []KPICard, id string) (KPICard, bool) {
	for _, card := range cards {
		if card.ID == id {
			return card, true
		}
	}
	return KPICard{}, false
}
