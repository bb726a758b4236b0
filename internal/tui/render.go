package tui

import (
	"fmt"
	"strings"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

const barWidth = 20

// RenderDiagnosis formats a diagnosis for the terminal
func RenderDiagnosis(d domain.Diagnosis, shareURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render("Sunlight:"), levelStyle(d.Level).Render(d.Level.Label()))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(d.Level.Description()))
	fmt.Fprintf(&b, "%s %3d/100\n\n", scoreBar(d.Score), d.Score)

	for _, paragraph := range strings.Split(d.Advice, "\n\n") {
		b.WriteString(paragraph)
		b.WriteString("\n\n")
	}

	b.WriteString(headingStyle.Render("Recommended plants"))
	b.WriteString("\n")
	if len(d.Plants) == 0 {
		b.WriteString(mutedStyle.Render("  No plant matches this spot closely. Try somewhere nearer the window."))
		b.WriteString("\n")
	}
	for i, p := range d.Plants {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, titleStyle.Render(p.Name), mutedStyle.Render("("+domain.SunlightLabel(p.Sunlight)+", "+p.CareLevel.Label()+")"))
	}

	if shareURL != "" {
		fmt.Fprintf(&b, "\n%s %s\n", headingStyle.Render("Share:"), shareURL)
	}
	return b.String()
}

// RenderPlants formats a plant list, optionally with care details
func RenderPlants(plants []domain.Plant, withCare bool) string {
	var b strings.Builder
	for _, p := range plants {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(p.Name), mutedStyle.Render(p.Slug))
		if withCare {
			fmt.Fprintf(&b, "  %s · %s · Water: %s\n", domain.SunlightLabel(p.Sunlight), p.CareLevel.Label(), p.Watering)
		}
	}
	return b.String()
}

// RenderProfile formats a room profile as one line per answer
func RenderProfile(p domain.RoomProfile) string {
	obstructed := "No"
	if p.HasObstruction {
		obstructed = "Yes"
	}
	return fmt.Sprintf("Window faces:   %s\nWindow size:    %s\nDistance:       %s\nObstructed:     %s\n",
		p.Orientation.Label(), p.WindowSize.Label(), p.Distance.Label(), obstructed)
}

func renderProducts(result domain.PlantProducts, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(result.Plant.Name))
	switch {
	case result.Err != nil:
		b.WriteString(errorStyle.Render("  Shop search failed"))
		b.WriteString("\n")
	case len(result.Products) == 0:
		b.WriteString(mutedStyle.Render("  No listings found"))
		b.WriteString("\n")
	}
	for i, p := range result.Products {
		if i == limit {
			break
		}
		fmt.Fprintf(&b, "  ¥%-7d %s %s\n", p.Price, truncate(p.Name, 40), mutedStyle.Render(p.ShopName))
	}
	return b.String()
}

func scoreBar(score int) string {
	filled := score * barWidth / domain.MaxScore
	return barFullStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
