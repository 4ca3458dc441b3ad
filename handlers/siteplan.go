// handlers/siteplan.go
package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"mjengo.ke/estimator/config"
)

// KML geometry types, the subset a site plan needs.
type LinearRing struct {
	Coordinates string `xml:"coordinates"`
}

type Polygon struct {
	OuterBoundary struct {
		LinearRing LinearRing `xml:"LinearRing"`
	} `xml:"outerBoundaryIs"`
}

type Placemark struct {
	XMLName xml.Name `xml:"Placemark"`
	Name    string   `xml:"name"`
	Polygon *Polygon `xml:"Polygon"`
}

type Folder struct {
	XMLName    xml.Name    `xml:"Folder"`
	Name       string      `xml:"name"`
	Placemarks []Placemark `xml:"Placemark"`
	Folders    []Folder    `xml:"Folder"`
}

type Document struct {
	XMLName    xml.Name    `xml:"Document"`
	Name       string      `xml:"name"`
	Placemarks []Placemark `xml:"Placemark"`
	Folders    []Folder    `xml:"Folder"`
}

type KML struct {
	XMLName  xml.Name `xml:"kml"`
	Document Document `xml:"Document"`
}

// extractKML unwraps a KMZ (zip) to its KML document; plain KML passes
// through unchanged.
func extractKML(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, []byte("PK")) {
		return data, nil
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid KMZ archive: %w", err)
	}
	for _, file := range zr.File {
		if strings.HasSuffix(strings.ToLower(file.Name), ".kml") {
			rc, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("no KML document found in KMZ archive")
}

// parseCoordinates splits a KML coordinate string ("lon,lat[,elev] ...")
// into points.
func parseCoordinates(raw string) []orb.Point {
	var points []orb.Point
	for _, token := range strings.Fields(strings.TrimSpace(raw)) {
		parts := strings.Split(token, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(parts[0], 64)
		lat, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, orb.Point{lon, lat})
	}
	return points
}

func collectPolygons(placemarks []Placemark, folders []Folder) []Placemark {
	var out []Placemark
	for _, pm := range placemarks {
		if pm.Polygon != nil {
			out = append(out, pm)
		}
	}
	for _, folder := range folders {
		out = append(out, collectPolygons(folder.Placemarks, folder.Folders)...)
	}
	return out
}

type footprint struct {
	Name       string  `json:"name"`
	AreaM2     float64 `json:"areaM2"`
	PerimeterM float64 `json:"perimeterM"`
}

// ImportSitePlan accepts a KML/KMZ site plan, measures every polygon on
// it, and stores the largest one as the quote's building footprint.
// Geodesic measures come straight off the WGS84 coordinates; site plans
// are small enough that spherical math is exact for estimating purposes.
func ImportSitePlan(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 20<<20))
	if err != nil || len(body) == 0 {
		http.Error(w, "empty or unreadable upload", http.StatusBadRequest)
		return
	}

	kmlData, err := extractKML(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc KML
	if err := xml.Unmarshal(kmlData, &doc); err != nil {
		http.Error(w, "invalid KML: "+err.Error(), http.StatusBadRequest)
		return
	}

	placemarks := collectPolygons(doc.Document.Placemarks, doc.Document.Folders)
	if len(placemarks) == 0 {
		http.Error(w, "site plan contains no polygons", http.StatusUnprocessableEntity)
		return
	}

	fc := geojson.NewFeatureCollection()
	var footprints []footprint
	var largest footprint

	for _, pm := range placemarks {
		points := parseCoordinates(pm.Polygon.OuterBoundary.LinearRing.Coordinates)
		if len(points) < 3 {
			continue
		}
		ring := orb.Ring(points)
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		polygon := orb.Polygon{ring}

		fp := footprint{
			Name:       pm.Name,
			AreaM2:     geo.Area(polygon),
			PerimeterM: geo.Length(orb.LineString(ring)),
		}
		footprints = append(footprints, fp)
		if fp.AreaM2 > largest.AreaM2 {
			largest = fp
		}

		feature := geojson.NewFeature(polygon)
		feature.Properties = geojson.Properties{
			"name":       pm.Name,
			"areaM2":     fp.AreaM2,
			"perimeterM": fp.PerimeterM,
		}
		fc.Append(feature)
	}

	if largest.AreaM2 <= 0 {
		http.Error(w, "no measurable polygon in site plan", http.StatusUnprocessableEntity)
		return
	}

	quote.FootprintAreaM2 = largest.AreaM2
	quote.PerimeterM = largest.PerimeterM
	if err := config.DB.Model(quote).Updates(map[string]interface{}{
		"footprint_area_m2": quote.FootprintAreaM2,
		"perimeter_m":       quote.PerimeterM,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"footprint":  largest,
		"footprints": footprints,
		"features":   fc,
	})
}
