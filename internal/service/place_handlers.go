package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"skyguide/internal/maps"
	"skyguide/internal/modules/intent"
	"skyguide/internal/prompts"
)

const maxRecommendations = 5

// listMarker strips bullets and numbering such as "- ", "* ", "1. ", "2) ".
var listMarker = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])\s*`)

// recommendationNames turns the model's one-place-per-line answer into at most five unique names.
func recommendationNames(raw string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		name := listMarker.ReplaceAllString(line, "")
		name = strings.Trim(strings.TrimSpace(name), "*\"'“”")
		if i := strings.IndexAny(name, ":–"); i > 0 {
			name = strings.TrimSpace(name[:i])
		}
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
		if len(names) == maxRecommendations {
			break
		}
	}
	return names
}

func (a *Assistant) recommendPlaces(ctx context.Context, req Request, an intent.Analysis) string {
	if an.City == "" {
		return msgNeedCityForTour
	}
	raw, err := a.complete(ctx, prompts.RecommendPlaces, map[string]any{
		"City":     an.City,
		"Question": req.Question,
	})
	if err != nil {
		a.logger.Warn("place recommendation failed", "city", an.City, "error", err)
		return msgRecommendFailed
	}
	names := recommendationNames(raw)
	if len(names) == 0 {
		return msgRecommendFailed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Một số địa điểm bạn có thể ghé thăm ở %s:</p><ul>", html.EscapeString(an.City))
	for _, name := range names {
		link, address, distance := maps.SearchURL(name, an.City), "", ""
		if a.places != nil {
			if p, err := a.places.Lookup(ctx, name, an.City); err == nil {
				link, address = maps.PlaceURL(p), p.Address
				if req.Origin != nil && p.Location != nil {
					distance = fmt.Sprintf(" (cách bạn khoảng %.1f km)", req.Origin.DistanceKm(*p.Location))
				}
			} else {
				a.logger.Debug("place lookup failed", "place", name, "error", err)
			}
		}
		fmt.Fprintf(&b, `<li><a href="%s" target="_blank">%s</a>`, html.EscapeString(link), html.EscapeString(name))
		if address != "" {
			fmt.Fprintf(&b, " – %s", html.EscapeString(address))
		}
		b.WriteString(distance)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func (a *Assistant) navigate(ctx context.Context, req Request, an intent.Analysis) string {
	place := html.EscapeString(an.PlaceName)
	if req.Origin == nil {
		link := maps.SearchURL(an.PlaceName, an.City)
		return fmt.Sprintf(`Đây là vị trí của <b>%s</b> trên bản đồ: <a href="%s" target="_blank">Mở Google Maps</a><br>%s`,
			place, html.EscapeString(link), msgShareLocation)
	}

	link := maps.DirectionsURL(*req.Origin, an.PlaceName, an.City)
	msg := fmt.Sprintf(`Đây là chỉ đường từ vị trí của bạn đến <b>%s</b>: <a href="%s" target="_blank">Mở Google Maps</a>`,
		place, html.EscapeString(link))
	if a.routes != nil {
		est, err := a.routes.Estimate(ctx, *req.Origin, maps.Destination(an.PlaceName, an.City))
		if err != nil {
			a.logger.Debug("route estimate failed", "place", an.PlaceName, "error", err)
		} else {
			msg += fmt.Sprintf("<br>Quãng đường khoảng %s, lái xe mất khoảng %d phút.", html.EscapeString(est.Distance), int(est.Duration.Minutes()+0.5))
		}
	}
	return msg
}

func (a *Assistant) clarify(ctx context.Context, req Request, an intent.Analysis) string {
	if an.City == "" && an.PlaceName == "" {
		return msgVague
	}
	var weatherContext string
	if an.City != "" && an.PlaceName == "" {
		if s, err := a.fetchCurrent(ctx, an.City); err == nil {
			weatherContext = currentFact(s)
		} else {
			a.logger.Debug("context prefetch failed", "city", an.City, "error", err)
		}
	}
	out, err := a.complete(ctx, prompts.Clarify, map[string]any{
		"Question": req.Question,
		"City":     an.City,
		"Place":    an.PlaceName,
		"Context":  weatherContext,
	})
	if err != nil || out == "" {
		a.logger.Warn("clarification failed", "question", req.Question, "error", err)
		return msgClarifyFailed
	}
	return out
}
