// Package export renders recorded flights as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/mstram-flight/Huginn/internal/recorder"
)

type point struct{ x, y float64 }

// ProfileSVG renders the altitude profile of a flight, altitude in
// meters against time in seconds.
func ProfileSVG(samples []recorder.Sample, width, height int) string {
	pts := make([]point, len(samples))
	for i, s := range samples {
		pts[i] = point{s.Time, s.Altitude}
	}
	return pathSVG(pts, width, height, "#00ff00")
}

// GroundTrackSVG renders the flown ground track, longitude against
// latitude.
func GroundTrackSVG(samples []recorder.Sample, width, height int) string {
	pts := make([]point, len(samples))
	for i, s := range samples {
		pts[i] = point{s.Longitude, s.Latitude}
	}
	return pathSVG(pts, width, height, "#00bfff")
}

// pathSVG maps the points into the drawing area with 10% padding and
// draws them as one stroked path on a dark background. Fewer than two
// points make no path, the empty string comes back.
func pathSVG(points []point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].x, points[0].x
	minY, maxY := points[0].y, points[0].y
	for _, p := range points {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.x - minX) / rangeX * float64(width)
		y := float64(height) - (p.y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
