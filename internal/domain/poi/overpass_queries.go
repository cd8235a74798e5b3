package poi

import "fmt"

// The Overpass interpreter struggles with one big query against a dense
// city, so the fetch is split into two smaller category queries. Each caps
// output at 300 elements and asks for center points on ways/relations.

func attractionsQuery(radiusMeters int, lat, lon float64) string {
	return fmt.Sprintf(`
[out:json][timeout:60];
(
  node["tourism"~"attraction|museum|gallery|viewpoint"]["name"](around:%[1]d,%[2]f,%[3]f);
  way["tourism"~"attraction|museum|gallery|viewpoint"]["name"](around:%[1]d,%[2]f,%[3]f);
  relation["tourism"~"attraction|museum|gallery|viewpoint"]["name"](around:%[1]d,%[2]f,%[3]f);

  node["historic"]["name"](around:%[1]d,%[2]f,%[3]f);
  way["historic"]["name"](around:%[1]d,%[2]f,%[3]f);
  relation["historic"]["name"](around:%[1]d,%[2]f,%[3]f);

  node["leisure"~"park|garden"]["name"](around:%[1]d,%[2]f,%[3]f);
  way["leisure"~"park|garden"]["name"](around:%[1]d,%[2]f,%[3]f);
  relation["leisure"~"park|garden"]["name"](around:%[1]d,%[2]f,%[3]f);
);
out center 300;
`, radiusMeters, lat, lon)
}

func foodNightlifeQuery(radiusMeters int, lat, lon float64) string {
	return fmt.Sprintf(`
[out:json][timeout:60];
(
  node["amenity"~"restaurant|cafe|fast_food|food_court|bar|pub|nightclub"]["name"](around:%[1]d,%[2]f,%[3]f);
  way["amenity"~"restaurant|cafe|fast_food|food_court|bar|pub|nightclub"]["name"](around:%[1]d,%[2]f,%[3]f);
  relation["amenity"~"restaurant|cafe|fast_food|food_court|bar|pub|nightclub"]["name"](around:%[1]d,%[2]f,%[3]f);

  node["shop"="marketplace"]["name"](around:%[1]d,%[2]f,%[3]f);
  way["shop"="marketplace"]["name"](around:%[1]d,%[2]f,%[3]f);
  relation["shop"="marketplace"]["name"](around:%[1]d,%[2]f,%[3]f);
);
out center 300;
`, radiusMeters, lat, lon)
}
