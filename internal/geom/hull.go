package geom

import "sort"

// ConvexHull returns the counter-clockwise convex hull of pts without
// collinear vertices (Andrew's monotone chain).
func ConvexHull(pts []Point) Polygon {
	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	uniq := sorted[:0]
	for _, p := range sorted {
		if len(uniq) > 0 && uniq[len(uniq)-1].Equal(p) {
			continue
		}
		uniq = append(uniq, p)
	}
	if len(uniq) < 3 {
		return Polygon(append([]Point(nil), uniq...))
	}

	hull := make(Polygon, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && Orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && Orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
